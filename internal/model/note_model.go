package model

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	GroupId     *uuid.UUID `gorm:"type:uuid;index"`
	Group       *Group     `gorm:"foreignKey:GroupId;constraint:OnDelete:CASCADE"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	Status      string     `gorm:"type:varchar(20);not null;default:'todo';index"`
	Priority    string     `gorm:"type:varchar(10);not null;default:'medium'"`
	CompletedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
