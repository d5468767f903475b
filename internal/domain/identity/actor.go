// Package identity defines the authenticated actor descriptor used for
// owner/outlet data scoping.
//
// Every data-access call that must be scoped receives the actor explicitly
// through the request context rather than reading ambient global state.
// Background jobs run without an actor and use the repositories' system
// variants, which bypass scoping.
package identity

import (
	"context"

	"github.com/google/uuid"
)

// Actor describes the authenticated principal on whose behalf an operation runs.
type Actor struct {
	UserID     uuid.UUID
	OwnerID    uuid.UUID
	OutletID   *uuid.UUID // currently selected outlet, nil if none
	SuperAdmin bool
}

// NewActor creates an actor for a regular user under an owner
func NewActor(userID, ownerID uuid.UUID) Actor {
	return Actor{UserID: userID, OwnerID: ownerID}
}

// WithOutlet returns a copy of the actor with the given outlet selected
func (a Actor) WithOutlet(outletID uuid.UUID) Actor {
	a.OutletID = &outletID
	return a
}

// IsZero reports whether the actor is unauthenticated
func (a Actor) IsZero() bool {
	return a.UserID == uuid.Nil
}

// HasOutlet reports whether the actor has a current outlet selected
func (a Actor) HasOutlet() bool {
	return a.OutletID != nil && *a.OutletID != uuid.Nil
}

type contextKey string

const actorKey contextKey = "actor"

// WithActor attaches the actor to the context
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext retrieves the actor from context.
// The second return value is false when no actor is attached, which is the
// normal case for background jobs and system operations.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey).(Actor)
	if !ok || actor.IsZero() {
		return Actor{}, false
	}
	return actor, true
}
