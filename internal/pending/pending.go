// Package pending is the device-local durable queue of mutations issued
// while the remote store was unreachable. Records are keyed by transaction
// identifier and replayed in insertion order on reconnect.
package pending

import (
	"context"
	"time"
)

// Kind is the queued operation kind. Updates queue as add records because
// remote puts are wholesale upserts.
type Kind string

const (
	KindAdd    Kind = "add"
	KindDelete Kind = "delete"
)

// Mutation is one queued record. Payload holds the JSON wire document for
// add records and is empty for deletes. Queuing a new record under an
// already-queued identifier replaces the old record and moves it to the end
// of the queue, so a delete following a queued add supersedes it.
type Mutation struct {
	ID         string
	Kind       Kind
	Payload    []byte
	EnqueuedAt time.Time
}

// Store is the durable queue contract: put, get-all, delete-by-key,
// clear-all, mirroring the browser-local key-value store it stands in for.
type Store interface {
	Put(ctx context.Context, m Mutation) error

	// All returns every queued mutation in insertion order.
	All(ctx context.Context) ([]Mutation, error)

	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}
