package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/wallet-ledger/internal/operator"
	"github.com/carson-networks/wallet-ledger/internal/operator/actions"
	"github.com/carson-networks/wallet-ledger/internal/pending"
	"github.com/carson-networks/wallet-ledger/internal/service"
	"github.com/carson-networks/wallet-ledger/internal/store"
)

// EventSyncComplete announces that a queue replay finished and the queue is
// empty again.
const EventSyncComplete = "SYNC_COMPLETE"

type SyncEvent struct {
	Type     string
	Replayed int
	At       time.Time
}

// stateFlags is the slice of the state container the coordinator needs.
type stateFlags interface {
	SetUnsynced(unsynced bool)
}

// Coordinator replays queued offline mutations through the write pipeline.
// Replays are serialized: a transition arriving while one is running is
// ignored, the running replay already drains the whole queue.
type Coordinator struct {
	userID    string
	queue     pending.Store
	delegator *operator.OperatorDelegator
	flags     stateFlags
	notifier  service.Notifier
	log       *logrus.Logger

	inFlight atomic.Bool

	mu          sync.Mutex
	subscribers map[int]chan SyncEvent
	nextSub     int
}

func NewCoordinator(
	userID string,
	queue pending.Store,
	delegator *operator.OperatorDelegator,
	flags stateFlags,
	notifier service.Notifier,
	log *logrus.Logger,
) *Coordinator {
	return &Coordinator{
		userID:      userID,
		queue:       queue,
		delegator:   delegator,
		flags:       flags,
		notifier:    notifier,
		log:         log,
		subscribers: make(map[int]chan SyncEvent),
	}
}

// HandleTransition is wired to the connectivity monitor. Going online kicks
// off a background replay; going offline needs no action here.
func (c *Coordinator) HandleTransition(online bool) {
	if !online {
		return
	}
	go func() {
		if err := c.Replay(context.Background()); err != nil {
			c.log.WithError(err).Error("Coordinator.replay failed")
		}
	}()
}

// Replay drains the queue in insertion order through the same write pipeline
// live mutations use. The queue is cleared only after every record succeeds;
// on failure it is retained intact for the next attempt. Replaying an
// already-applied record is harmless, puts are upserts and deletes are
// no-ops for absent documents.
func (c *Coordinator) Replay(ctx context.Context) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.log.Debug("Coordinator.replay already running, skipping")
		return nil
	}
	defer c.inFlight.Store(false)

	records, err := c.queue.All(ctx)
	if err != nil {
		return fmt.Errorf("read offline queue: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	c.log.WithField("count", len(records)).Info("Coordinator.replay starting")
	if c.log.IsLevelEnabled(logrus.DebugLevel) {
		c.log.Debug(spew.Sdump(records))
	}

	replayed := 0
	for _, record := range records {
		action, err := c.buildAction(record)
		if err != nil {
			// A record we cannot decode will never replay. Drop it so the
			// queue does not wedge.
			c.log.WithError(err).WithField("id", record.ID).Warn("Coordinator.replay dropping malformed record")
			if delErr := c.queue.Delete(ctx, record.ID); delErr != nil {
				return fmt.Errorf("drop malformed record: %w", delErr)
			}
			continue
		}

		if err := c.delegator.Process(ctx, action); err != nil {
			c.flags.SetUnsynced(true)
			c.notify(service.NotifyError, "sync failed part way; remaining changes stay queued")
			return fmt.Errorf("replay record %s: %w", record.ID, err)
		}
		replayed++
	}

	if err := c.queue.Clear(ctx); err != nil {
		return fmt.Errorf("clear offline queue: %w", err)
	}
	c.flags.SetUnsynced(false)

	event := SyncEvent{Type: EventSyncComplete, Replayed: replayed, At: time.Now()}
	c.broadcast(event)
	c.notify(service.NotifyInfo, "offline changes synced")
	c.log.WithField("replayed", replayed).Info("Coordinator.replay complete")
	return nil
}

func (c *Coordinator) buildAction(record pending.Mutation) (actions.IAction, error) {
	switch record.Kind {
	case pending.KindAdd:
		var doc store.TransactionDoc
		if err := json.Unmarshal(record.Payload, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal queued payload: %w", err)
		}
		tx, err := doc.Decode()
		if err != nil {
			return nil, fmt.Errorf("decode queued transaction: %w", err)
		}
		return &actions.PutTransaction{UserID: c.userID, Transaction: tx}, nil
	case pending.KindDelete:
		id, err := uuid.FromString(record.ID)
		if err != nil {
			return nil, fmt.Errorf("parse queued identifier: %w", err)
		}
		return &actions.DeleteTransaction{UserID: c.userID, ID: id}, nil
	default:
		return nil, fmt.Errorf("unknown queued mutation kind %q", record.Kind)
	}
}

// Subscribe returns a channel of sync lifecycle events and a stop function.
func (c *Coordinator) Subscribe() (<-chan SyncEvent, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan SyncEvent, 4)
	c.subscribers[id] = ch

	stop := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subscribers[id]; ok {
			delete(c.subscribers, id)
			close(ch)
		}
	}
	return ch, stop
}

func (c *Coordinator) broadcast(event SyncEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subscribers {
		select {
		case ch <- event:
		default:
			c.log.Warn("Coordinator.broadcast.subscriber buffer full, event dropped")
		}
	}
}

func (c *Coordinator) notify(level service.NotificationLevel, message string) {
	if c.notifier == nil {
		return
	}
	c.notifier.Notify(service.Notification{Level: level, Message: message, At: time.Now()})
}
