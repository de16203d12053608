package dashboard

import (
	"context"
	"sync"

	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/resources"
)

// GateState is the state of a DeleteGate.
type GateState int

const (
	// GateIdle: nothing pending, no confirmation shown.
	GateIdle GateState = iota
	// GatePendingConfirmation: a target awaits confirm or cancel.
	GatePendingConfirmation
)

// Pending is the deletion awaiting confirmation.
type Pending struct {
	ItemID   int64
	Resource resources.Info
}

// DeleteGate holds at most one deletion awaiting confirmation.
type DeleteGate struct {
	mu      sync.Mutex
	pending *Pending
}

// State reports whether a deletion is pending.
func (g *DeleteGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return GateIdle
	}
	return GatePendingConfirmation
}

// Pending returns the pending target.
func (g *DeleteGate) Pending() (Pending, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return Pending{}, false
	}
	return *g.pending, true
}

// Request makes id of res the pending target, replacing any other.
func (g *DeleteGate) Request(id int64, res resources.Info) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = &Pending{ItemID: id, Resource: res}
}

// Cancel discards the pending target.
func (g *DeleteGate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = nil
}

// Confirm clears the gate and then runs del on the target. The gate is Idle
// again before del starts, whatever del returns.
func (g *DeleteGate) Confirm(ctx context.Context, del func(context.Context, Pending) error) error {
	g.mu.Lock()
	p := g.pending
	g.pending = nil
	g.mu.Unlock()

	if p == nil {
		return errors.NewNoPendingDeletion()
	}
	return del(ctx, *p)
}
