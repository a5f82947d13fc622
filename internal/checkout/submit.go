package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yashdharmal/shopline/internal/orders"
)

// State of one in-flight order submission.
type State string

const (
	StateIdle         State = "idle"
	StateSubmitting   State = "submitting"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
	StateAcknowledged State = "acknowledged"
)

// ErrSubmissionInFlight rejects a second submit while one is running. The
// state variable is the enforcement; a disabled button is only its shadow.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// Placer submits an order request. *Client implements it against the HTTP
// API; tests plug in fakes.
type Placer interface {
	PlaceOrder(ctx context.Context, customer orders.CustomerDetails, items []orders.ItemInput) (*orders.PlacedOrder, error)
}

// Effects are the side effects gated on a successful, acknowledged
// submission. They run once, after the confirmation delay, and never after
// the submission's context is canceled.
type Effects struct {
	Navigate func()
}

// Submission drives idle → submitting → succeeded|failed, then succeeded →
// acknowledged → idle after the confirmation delay. At most one submission
// runs at a time.
type Submission struct {
	mu           sync.Mutex
	state        State
	err          error
	order        *orders.PlacedOrder
	placer       Placer
	confirmDelay time.Duration
}

func NewSubmission(p Placer, confirmDelay time.Duration) *Submission {
	return &Submission{state: StateIdle, placer: p, confirmDelay: confirmDelay}
}

func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err is the failure of the last attempt, if any.
func (s *Submission) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Order is the placed order of a succeeded attempt, until acknowledged.
func (s *Submission) Order() *orders.PlacedOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order
}

// Submit starts an asynchronous attempt for the given selection. The
// returned channel closes when the attempt reaches rest (failed, or
// acknowledged and reset, or abandoned on cancellation). A failed attempt
// leaves the machine ready for a user-initiated retry; no retry happens by
// itself. Canceling ctx tears the attempt down: the eventual result is
// dropped and no effect runs.
func (s *Submission) Submit(ctx context.Context, customer orders.CustomerDetails, sel *Selection, fx Effects) (<-chan struct{}, error) {
	s.mu.Lock()
	if s.state != StateIdle && s.state != StateFailed {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	s.state = StateSubmitting
	s.err = nil
	s.order = nil
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		placed, err := s.placer.PlaceOrder(ctx, customer, sel.Items)

		if ctx.Err() != nil {
			// View is gone; drop the result without side effects.
			s.reset()
			return
		}
		if err != nil {
			s.mu.Lock()
			s.state = StateFailed
			s.err = err
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.state = StateSucceeded
		s.order = placed
		s.mu.Unlock()

		// Keep the confirmation visible before cleanup and navigation.
		timer := time.NewTimer(s.confirmDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			s.reset()
			return
		case <-timer.C:
		}

		s.setState(StateAcknowledged)
		sel.ClearOnSuccess()
		if fx.Navigate != nil {
			fx.Navigate()
		}

		s.mu.Lock()
		s.state = StateIdle
		s.order = nil
		s.mu.Unlock()
	}()
	return done, nil
}

func (s *Submission) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// reset returns the machine to rest with nothing to report.
func (s *Submission) reset() {
	s.mu.Lock()
	s.state = StateIdle
	s.err = nil
	s.order = nil
	s.mu.Unlock()
}
