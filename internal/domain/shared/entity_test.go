package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEntity(t *testing.T) {
	e := NewBaseEntity()
	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
}

func TestBaseEntity_Touch(t *testing.T) {
	e := NewBaseEntity()
	e.UpdatedAt = e.UpdatedAt.Add(-time.Minute)

	e.Touch()

	assert.True(t, e.UpdatedAt.After(e.CreatedAt))
}

func TestBaseAggregateRoot_DomainEvents(t *testing.T) {
	a := NewBaseAggregateRoot()
	assert.Equal(t, 1, a.Version)
	assert.Empty(t, a.GetDomainEvents())

	changed := NewBaseDomainEvent("thing.changed", "Thing", a.ID)
	archived := NewBaseDomainEvent("thing.archived", "Thing", a.ID)
	a.AddDomainEvent(&changed)
	a.AddDomainEvent(&archived)

	events := a.GetDomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "thing.changed", events[0].EventType())

	a.ClearDomainEvents()
	assert.Empty(t, a.GetDomainEvents())
}
