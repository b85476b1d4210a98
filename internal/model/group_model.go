package model

import (
	"time"

	"github.com/google/uuid"
)

type Group struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_groups_owner_name"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_groups_owner_name"`
	Description string    `gorm:"type:text"`
	Color       string    `gorm:"type:varchar(7);default:'#3b82f6'"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Group) TableName() string {
	return "groups"
}
