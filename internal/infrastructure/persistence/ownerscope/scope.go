// Package ownerscope restricts queries and stamps rows according to the
// actor carried in the request context. Repositories compose these scopes
// into every query instead of relying on model lifecycle hooks, so the
// scoping rules stay visible at the call site.
package ownerscope

import (
	"context"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForActor returns a scope restricting rows to the actor's owner. The scope
// silently no-ops when the context carries no actor (background jobs) and
// when the actor is a super administrator.
func ForActor(ctx context.Context) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		actor, ok := identity.ActorFromContext(ctx)
		if !ok || actor.SuperAdmin {
			return db
		}
		return db.Where("owner_id = ?", actor.OwnerID)
	}
}

// ForOutlet returns a second, independent scope that additionally restricts
// rows to the actor's current outlet when one is selected.
func ForOutlet(ctx context.Context) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		actor, ok := identity.ActorFromContext(ctx)
		if !ok || actor.SuperAdmin || actor.OutletID == nil {
			return db
		}
		return db.Where("outlet_id = ?", *actor.OutletID)
	}
}

// ForCreator returns a scope restricting rows to those created by the actor.
// Used for entities that carry no owner column.
func ForCreator(ctx context.Context) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		actor, ok := identity.ActorFromContext(ctx)
		if !ok || actor.SuperAdmin {
			return db
		}
		return db.Where("created_by = ?", actor.UserID)
	}
}

// Apply composes the owner and outlet scopes onto a query
func Apply(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.Scopes(ForActor(ctx), ForOutlet(ctx))
}

// Stamp fills the owner, outlet and creator columns of a new aggregate from
// the actor in ctx. It is a silent no-op when the context carries no actor,
// and it never overwrites an owner that is already set.
func Stamp(ctx context.Context, o *shared.OwnedAggregateRoot) {
	actor, ok := identity.ActorFromContext(ctx)
	if !ok {
		return
	}
	if o.OwnerID == uuid.Nil {
		o.OwnerID = actor.OwnerID
	}
	if o.OutletID == nil && actor.OutletID != nil {
		outletID := *actor.OutletID
		o.OutletID = &outletID
	}
	if o.CreatedBy == nil {
		userID := actor.UserID
		o.CreatedBy = &userID
	}
}
