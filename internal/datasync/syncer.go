package datasync

import (
	"context"
	"net/http"
	"time"

	"github.com/voltrak-labs/showroom/internal/backend"
	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/observability"
	"github.com/voltrak-labs/showroom/internal/resources"
)

// Operation names used in log entries.
const (
	OpFetch  = "fetch"
	OpSave   = "save"
	OpDelete = "delete"
)

// Form is an edit buffer the protocol can submit and reset.
type Form[T any] interface {
	// Value returns the record to submit, or an error when the buffer
	// cannot be submitted as is.
	Value() (T, error)

	// Reset restores the empty template.
	Reset()
}

// Syncer runs the protocol for one resource.
type Syncer[T any] struct {
	res    resources.Resource[T]
	client *backend.Client
	store  *Store
	logger observability.SyncLogger
	now    func() time.Time
}

// New creates a Syncer. A nil logger discards log entries.
func New[T any](res resources.Resource[T], client *backend.Client, store *Store, logger observability.SyncLogger) *Syncer[T] {
	if logger == nil {
		logger = observability.NewNoopLogger()
	}
	return &Syncer[T]{
		res:    res,
		client: client,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Info describes the resource.
func (s *Syncer[T]) Info() resources.Info {
	return s.res.Info()
}

// Resource returns the descriptor.
func (s *Syncer[T]) Resource() resources.Resource[T] {
	return s.res
}

// State returns the current list state.
func (s *Syncer[T]) State() State {
	return s.store.Get(s.res.Key)
}

// Items returns the last successfully fetched list.
func (s *Syncer[T]) Items() []T {
	return ItemsOf[T](s.store, s.res.Key)
}

// Find returns the fetched item with the given id.
func (s *Syncer[T]) Find(id int64) (T, bool) {
	for _, item := range s.Items() {
		if p := s.res.ID(item); p != nil && *p == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Fetch replaces the list with GET {endpoint}. On failure the previous list
// is kept and the error message is recorded.
func (s *Syncer[T]) Fetch(ctx context.Context) error {
	s.store.begin(s.res.Key)

	var items []T
	err := s.call(ctx, OpFetch, http.MethodGet, s.res.Endpoint, func() (int, error) {
		return s.client.Get(ctx, s.res.Endpoint, &items)
	})
	if err != nil {
		s.store.fail(s.res.Key, errors.UserMessage(err))
		return err
	}
	if items == nil {
		items = []T{}
	}
	s.store.replace(s.res.Key, items, s.now())
	return nil
}

// Save submits form: POST {endpoint} when the record has no id, PUT
// {endpoint}/{id} otherwise. On success the form is reset and the list is
// fetched once; the returned error is then the fetch error, if any. On
// failure the form is left as is.
func (s *Syncer[T]) Save(ctx context.Context, form Form[T]) error {
	if s.res.ReadOnly {
		return errors.NewReadOnlyResource(s.res.Key)
	}

	value, err := form.Value()
	if err != nil {
		s.store.fail(s.res.Key, errors.UserMessage(err))
		return err
	}
	payload, err := s.res.Encode(value)
	if err != nil {
		s.store.fail(s.res.Key, errors.UserMessage(err))
		return err
	}

	method, endpoint := http.MethodPost, s.res.Endpoint
	if id := s.res.ID(value); id != nil {
		method, endpoint = http.MethodPut, backend.ItemPath(s.res.Endpoint, *id)
	}

	s.store.begin(s.res.Key)
	err = s.call(ctx, OpSave, method, endpoint, func() (int, error) {
		if method == http.MethodPut {
			return s.client.Put(ctx, endpoint, payload, nil)
		}
		return s.client.Post(ctx, endpoint, payload, nil)
	})
	if err != nil {
		s.store.fail(s.res.Key, errors.UserMessage(err))
		return err
	}

	form.Reset()
	return s.Fetch(ctx)
}

// SaveValue submits v without an edit buffer.
func (s *Syncer[T]) SaveValue(ctx context.Context, v T) error {
	return s.Save(ctx, &valueForm[T]{v: v})
}

// Delete issues DELETE {endpoint}/{id} and then fetches the list once.
func (s *Syncer[T]) Delete(ctx context.Context, id int64) error {
	endpoint := backend.ItemPath(s.res.Endpoint, id)

	s.store.begin(s.res.Key)
	err := s.call(ctx, OpDelete, http.MethodDelete, endpoint, func() (int, error) {
		return s.client.Delete(ctx, endpoint)
	})
	if err != nil {
		s.store.fail(s.res.Key, errors.UserMessage(err))
		return err
	}
	return s.Fetch(ctx)
}

// call runs do and logs the outcome.
func (s *Syncer[T]) call(ctx context.Context, op, method, endpoint string, do func() (int, error)) error {
	start := s.now()
	status, err := do()

	entry := observability.SyncLogEntry{
		OperationID: observability.NewOperationID(),
		Resource:    s.res.Key,
		Operation:   op,
		Method:      method,
		URL:         s.client.URL(endpoint),
		Status:      status,
		Duration:    s.now().Sub(start),
		Outcome:     observability.OutcomeSuccess,
	}
	if entry.Duration < 0 {
		entry.Duration = 0
	}
	if err != nil {
		entry.Outcome = observability.OutcomeError
		entry.Error = errors.UserMessage(err)
	}
	// Logging never fails the call.
	_ = s.logger.LogSync(context.WithoutCancel(ctx), entry)
	return err
}

type valueForm[T any] struct{ v T }

func (f *valueForm[T]) Value() (T, error) { return f.v, nil }
func (f *valueForm[T]) Reset()            {}

// Resource is the type-independent view of a Syncer.
type Resource interface {
	Info() resources.Info
	State() State
	Fetch(ctx context.Context) error
	Delete(ctx context.Context, id int64) error
}

var _ Resource = (*Syncer[struct{}])(nil)
