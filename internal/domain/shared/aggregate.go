package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// OwnedAggregateRoot extends BaseAggregateRoot with owner/outlet scoping support.
// OwnerID partitions data per tenant, OutletID narrows it to a branch, and
// CreatedBy records the creating user for creator-level scoping. All three are
// immutable after creation; the persistence layer reverts update attempts.
type OwnedAggregateRoot struct {
	BaseAggregateRoot
	OwnerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	OutletID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// NewOwnedAggregateRoot creates a new owner-scoped aggregate root
func NewOwnedAggregateRoot(ownerID uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		OwnerID:           ownerID,
	}
}

// NewOwnedAggregateRootWithCreator creates a new owner-scoped aggregate root with creator info
func NewOwnedAggregateRootWithCreator(ownerID, createdBy uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		CreatedBy:         &createdBy,
	}
}

// SetOutlet sets the outlet the aggregate belongs to
func (o *OwnedAggregateRoot) SetOutlet(outletID uuid.UUID) {
	o.OutletID = &outletID
}

// SetCreatedBy sets the creator user ID
func (o *OwnedAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	o.CreatedBy = &userID
}

// GetOwnerID returns the owning tenant ID
func (o *OwnedAggregateRoot) GetOwnerID() uuid.UUID {
	return o.OwnerID
}
