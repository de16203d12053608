package dashboard

import (
	"context"

	"github.com/voltrak-labs/showroom/internal/backend"
	"github.com/voltrak-labs/showroom/internal/datasync"
	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/forms"
	"github.com/voltrak-labs/showroom/internal/observability"
	"github.com/voltrak-labs/showroom/internal/resources"
	"github.com/voltrak-labs/showroom/pkg/models"
)

// Dashboard wires one Syncer per resource to the tab controller, the edit
// buffers and the delete gate.
type Dashboard struct {
	Products     *datasync.Syncer[models.Product]
	QnA          *datasync.Syncer[models.QnA]
	Awards       *datasync.Syncer[models.Award]
	Media        *datasync.Syncer[models.MediaItem]
	Requests     *datasync.Syncer[models.Request]
	Applications *datasync.Syncer[models.Application]

	ProductForm *forms.ProductForm
	QnAForm     *forms.Buffer[models.QnA]
	AwardForm   *forms.Buffer[models.Award]
	MediaForm   *forms.Buffer[models.MediaItem]

	Gate *DeleteGate

	store  *datasync.Store
	active Tab
}

// New creates a dashboard on the products tab. Nothing is fetched until a
// tab is activated.
func New(client *backend.Client, store *datasync.Store, logger observability.SyncLogger) *Dashboard {
	if store == nil {
		store = datasync.NewStore()
	}
	return &Dashboard{
		Products:     datasync.New(resources.Products, client, store, logger),
		QnA:          datasync.New(resources.QnA, client, store, logger),
		Awards:       datasync.New(resources.Awards, client, store, logger),
		Media:        datasync.New(resources.Media, client, store, logger),
		Requests:     datasync.New(resources.Requests, client, store, logger),
		Applications: datasync.New(resources.Applications, client, store, logger),

		ProductForm: forms.NewProductForm(),
		QnAForm:     forms.NewBuffer(resources.QnA),
		AwardForm:   forms.NewBuffer(resources.Awards),
		MediaForm:   forms.NewBuffer(resources.Media),

		Gate:   &DeleteGate{},
		store:  store,
		active: InitialTab,
	}
}

// Store returns the shared list state.
func (d *Dashboard) Store() *datasync.Store {
	return d.store
}

// Active returns the active tab.
func (d *Dashboard) Active() Tab {
	return d.active
}

// Activate switches to tab and fetches its list, even if it was already
// loaded.
func (d *Dashboard) Activate(ctx context.Context, tab Tab) error {
	r, err := d.Resource(tab)
	if err != nil {
		return err
	}
	d.active = tab
	return r.Fetch(ctx)
}

// Refresh fetches the active tab's list.
func (d *Dashboard) Refresh(ctx context.Context) error {
	return d.Activate(ctx, d.active)
}

// Resource returns the syncer behind tab.
func (d *Dashboard) Resource(tab Tab) (datasync.Resource, error) {
	switch tab {
	case TabProducts:
		return d.Products, nil
	case TabQnA:
		return d.QnA, nil
	case TabAwards:
		return d.Awards, nil
	case TabMedia:
		return d.Media, nil
	case TabRequests:
		return d.Requests, nil
	case TabApplications:
		return d.Applications, nil
	}
	_, err := ParseTab(string(tab))
	return nil, err
}

// State returns the list state of the active tab.
func (d *Dashboard) State() datasync.State {
	r, _ := d.Resource(d.active)
	return r.State()
}

// SetField assigns text input to the active tab's edit buffer.
func (d *Dashboard) SetField(name, value string) error {
	switch d.active {
	case TabProducts:
		return d.ProductForm.SetField(name, value)
	case TabQnA:
		return d.QnAForm.SetField(name, value)
	case TabAwards:
		return d.AwardForm.SetField(name, value)
	case TabMedia:
		return d.MediaForm.SetField(name, value)
	}
	return errors.NewReadOnlyResource(string(d.active))
}

// Edit seeds the active tab's buffer from the listed row with id.
func (d *Dashboard) Edit(id int64) error {
	key := string(d.active)
	switch d.active {
	case TabProducts:
		p, ok := d.Products.Find(id)
		if !ok {
			return errors.NewItemNotFound(key, id)
		}
		d.ProductForm.Edit(p)
	case TabQnA:
		return editRow(d.QnA, d.QnAForm, id)
	case TabAwards:
		return editRow(d.Awards, d.AwardForm, id)
	case TabMedia:
		return editRow(d.Media, d.MediaForm, id)
	default:
		return errors.NewReadOnlyResource(key)
	}
	return nil
}

func editRow[T any](s *datasync.Syncer[T], b *forms.Buffer[T], id int64) error {
	row, ok := s.Find(id)
	if !ok {
		return errors.NewItemNotFound(s.Info().Key, id)
	}
	b.Edit(row)
	return nil
}

// Cancel resets the active tab's buffer.
func (d *Dashboard) Cancel() {
	switch d.active {
	case TabProducts:
		d.ProductForm.Reset()
	case TabQnA:
		d.QnAForm.Reset()
	case TabAwards:
		d.AwardForm.Reset()
	case TabMedia:
		d.MediaForm.Reset()
	}
}

// Save submits the active tab's buffer.
func (d *Dashboard) Save(ctx context.Context) error {
	switch d.active {
	case TabProducts:
		return d.Products.Save(ctx, d.ProductForm)
	case TabQnA:
		return d.QnA.Save(ctx, d.QnAForm)
	case TabAwards:
		return d.Awards.Save(ctx, d.AwardForm)
	case TabMedia:
		return d.Media.Save(ctx, d.MediaForm)
	}
	return errors.NewReadOnlyResource(string(d.active))
}

// RequestDelete puts id of the active tab's resource behind the gate.
func (d *Dashboard) RequestDelete(id int64) {
	r, _ := d.Resource(d.active)
	d.Gate.Request(id, r.Info())
}

// CancelDelete discards the pending deletion.
func (d *Dashboard) CancelDelete() {
	d.Gate.Cancel()
}

// ConfirmDelete closes the gate and deletes the pending target.
func (d *Dashboard) ConfirmDelete(ctx context.Context) error {
	return d.Gate.Confirm(ctx, func(ctx context.Context, p Pending) error {
		r, err := d.Resource(Tab(p.Resource.Key))
		if err != nil {
			return err
		}
		return r.Delete(ctx, p.ItemID)
	})
}
