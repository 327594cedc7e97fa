package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is anything with an identity and audit timestamps
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// AggregateRoot is an Entity that carries a version for optimistic locking
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseEntity carries the identity and audit fields shared by every
// domain entity
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *BaseEntity) GetID() uuid.UUID { return e.ID }

func (e *BaseEntity) GetCreatedAt() time.Time { return e.CreatedAt }

func (e *BaseEntity) GetUpdatedAt() time.Time { return e.UpdatedAt }

// NewBaseEntity returns a BaseEntity with a fresh id and timestamps
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BaseAggregateRoot extends BaseEntity with the optimistic-lock version
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion bumps the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot returns an aggregate root at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}
