package mapper

import (
	"testing"
	"time"

	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteMapperZeroUpdatedAtBecomesNil(t *testing.T) {
	m := NewNoteMapper()

	e := m.ToEntity(&model.Note{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		Title:     "Task",
		Status:    "todo",
		Priority:  "medium",
		CreatedAt: time.Now(),
	})

	assert.Nil(t, e.UpdatedAt, "a never-updated row must map to a nil UpdatedAt")
}

func TestNoteMapperRoundTripKeepsStatusAndCompletion(t *testing.T) {
	m := NewNoteMapper()
	completed := time.Now().Add(-time.Hour)
	updated := time.Now()
	groupId := uuid.New()

	src := &entity.Note{
		Id:          uuid.New(),
		UserId:      uuid.New(),
		GroupId:     &groupId,
		Title:       "Ship it",
		Description: "Final release checks",
		Status:      entity.NoteStatusDone,
		Priority:    entity.NotePriorityHigh,
		CompletedAt: &completed,
		CreatedAt:   time.Now().Add(-2 * time.Hour),
		UpdatedAt:   &updated,
	}

	got := m.ToEntity(m.ToModel(src))

	assert.Equal(t, src.Status, got.Status)
	assert.Equal(t, src.Priority, got.Priority)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completed))
	require.NotNil(t, got.GroupId)
	assert.Equal(t, groupId, *got.GroupId)
}

func TestNoteMapperNilSafety(t *testing.T) {
	m := NewNoteMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
	assert.Empty(t, m.ToEntities(nil))
}
