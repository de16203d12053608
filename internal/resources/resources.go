// Package resources describes the admin-managed resource kinds: where each
// lives on the backend, what an empty record looks like, and how a record is
// encoded for transmission.
package resources

import (
	"encoding/json"
	"fmt"

	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/pkg/api"
	"github.com/voltrak-labs/showroom/pkg/models"
)

// Resource keys, in dashboard tab order.
const (
	KeyProducts     = "products"
	KeyQnA          = "qna"
	KeyAwards       = "awards"
	KeyMedia        = "media"
	KeyRequests     = "requests"
	KeyApplications = "applications"
)

// Resource describes one resource kind with record type T.
type Resource[T any] struct {
	// Key names the resource in state and logs.
	Key string

	// Endpoint is the path under /api.
	Endpoint string

	// ReadOnly resources can be listed and deleted but not saved.
	ReadOnly bool

	// Blank returns the empty form template.
	Blank func() T

	// ID returns the record id, nil for a record not yet created.
	ID func(T) *int64

	// Encode converts a record to its wire form.
	Encode func(T) (interface{}, error)
}

// Info is the type-independent part of a descriptor.
type Info struct {
	Key      string
	Endpoint string
	ReadOnly bool
}

// Info returns the type-independent part of r.
func (r Resource[T]) Info() Info {
	return Info{Key: r.Key, Endpoint: r.Endpoint, ReadOnly: r.ReadOnly}
}

func verbatim[T any](v T) (interface{}, error) { return v, nil }

// Products is the product catalog.
var Products = Resource[models.Product]{
	Key:      KeyProducts,
	Endpoint: api.EndpointProducts,
	Blank:    func() models.Product { return models.Product{} },
	ID:       func(p models.Product) *int64 { return p.ID },
	Encode: func(p models.Product) (interface{}, error) {
		return EncodeProduct(p)
	},
}

// QnA is the FAQ list.
var QnA = Resource[models.QnA]{
	Key:      KeyQnA,
	Endpoint: api.EndpointQnA,
	Blank:    func() models.QnA { return models.QnA{} },
	ID:       func(q models.QnA) *int64 { return q.ID },
	Encode:   verbatim[models.QnA],
}

// Awards is the awards gallery.
var Awards = Resource[models.Award]{
	Key:      KeyAwards,
	Endpoint: api.EndpointAwards,
	Blank:    func() models.Award { return models.Award{} },
	ID:       func(a models.Award) *int64 { return a.ID },
	Encode:   verbatim[models.Award],
}

// Media is the media-coverage gallery.
var Media = Resource[models.MediaItem]{
	Key:      KeyMedia,
	Endpoint: api.EndpointMedia,
	Blank:    func() models.MediaItem { return models.MediaItem{} },
	ID:       func(m models.MediaItem) *int64 { return m.ID },
	Encode:   verbatim[models.MediaItem],
}

// Requests holds order and demo requests from the public site.
var Requests = Resource[models.Request]{
	Key:      KeyRequests,
	Endpoint: api.EndpointRequests,
	ReadOnly: true,
	Blank:    func() models.Request { return models.Request{} },
	ID:       func(r models.Request) *int64 { return r.ID },
	Encode:   verbatim[models.Request],
}

// Applications holds job applications. The backend serves them under "apply".
var Applications = Resource[models.Application]{
	Key:      KeyApplications,
	Endpoint: api.EndpointApply,
	ReadOnly: true,
	Blank:    func() models.Application { return models.Application{} },
	ID:       func(a models.Application) *int64 { return a.ID },
	Encode:   verbatim[models.Application],
}

// All lists every descriptor in tab order.
func All() []Info {
	return []Info{
		Products.Info(),
		QnA.Info(),
		Awards.Info(),
		Media.Info(),
		Requests.Info(),
		Applications.Info(),
	}
}

// Keys lists every resource key in tab order.
func Keys() []string {
	all := All()
	keys := make([]string, len(all))
	for i, info := range all {
		keys[i] = info.Key
	}
	return keys
}

// Lookup finds a descriptor by key.
func Lookup(key string) (Info, error) {
	for _, info := range All() {
		if info.Key == key {
			return info, nil
		}
	}
	return Info{}, errors.NewUnknownResource(key, Keys())
}

// EncodeProduct converts p to its wire form. The list and mapping fields are
// sent as JSON strings, "[]" and "{}" when empty.
func EncodeProduct(p models.Product) (models.ProductPayload, error) {
	images := "[]"
	if p.ImageURLs != nil {
		data, err := json.Marshal(p.ImageURLs)
		if err != nil {
			return models.ProductPayload{}, fmt.Errorf("encode image_urls: %w", err)
		}
		images = string(data)
	}

	related := "[]"
	if p.RelatedProductIDs != nil {
		data, err := json.Marshal(p.RelatedProductIDs)
		if err != nil {
			return models.ProductPayload{}, fmt.Errorf("encode related_products_ids: %w", err)
		}
		related = string(data)
	}

	specs := "{}"
	if p.Specifications != nil {
		data, err := json.Marshal(p.Specifications)
		if err != nil {
			return models.ProductPayload{}, fmt.Errorf("encode specifications: %w", err)
		}
		specs = string(data)
	}

	return models.ProductPayload{
		ID:                 p.ID,
		Name:               p.Name,
		Tagline:            p.Tagline,
		Description:        p.Description,
		Price:              p.Price,
		Category:           p.Category,
		MainImageURL:       p.MainImageURL,
		ImageURLs:          images,
		VideoURL:           p.VideoURL,
		FeaturesText:       p.FeaturesText,
		TCOSavingsText:     p.TCOSavingsText,
		TCOSavingsImageURL: p.TCOSavingsImageURL,
		Specifications:     specs,
		RelatedProductIDs:  related,
	}, nil
}
