// Package models provides the records exchanged with the showroom REST
// backend. Field names follow the backend's snake_case JSON.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Product is a catalog entry as held client-side: composite fields are native
// slices and mappings. See ProductPayload for the wire form used on save.
type Product struct {
	ID                 *int64         `json:"id" yaml:"id,omitempty"`
	Name               string         `json:"name" yaml:"name" validate:"required"`
	Tagline            string         `json:"tagline" yaml:"tagline,omitempty"`
	Description        string         `json:"description" yaml:"description,omitempty"`
	Price              Price          `json:"price" yaml:"price,omitempty"`
	Category           string         `json:"category" yaml:"category,omitempty"`
	MainImageURL       string         `json:"main_image_url" yaml:"main_image_url,omitempty" validate:"omitempty,url"`
	ImageURLs          []string       `json:"image_urls" yaml:"image_urls,omitempty"`
	VideoURL           string         `json:"video_url" yaml:"video_url,omitempty" validate:"omitempty,url"`
	FeaturesText       string         `json:"features_text" yaml:"features_text,omitempty"`
	TCOSavingsText     string         `json:"tco_savings_text" yaml:"tco_savings_text,omitempty"`
	TCOSavingsImageURL string         `json:"tco_savings_image_url" yaml:"tco_savings_image_url,omitempty" validate:"omitempty,url"`
	Specifications     Specifications `json:"specifications" yaml:"specifications,omitempty"`
	RelatedProductIDs  []int64        `json:"related_products_ids" yaml:"related_products_ids,omitempty"`
}

// ProductPayload is the product as transmitted on create/update: the three
// composite fields travel as JSON-encoded strings.
type ProductPayload struct {
	ID                 *int64 `json:"id"`
	Name               string `json:"name"`
	Tagline            string `json:"tagline"`
	Description        string `json:"description"`
	Price              Price  `json:"price"`
	Category           string `json:"category"`
	MainImageURL       string `json:"main_image_url"`
	ImageURLs          string `json:"image_urls"`
	VideoURL           string `json:"video_url"`
	FeaturesText       string `json:"features_text"`
	TCOSavingsText     string `json:"tco_savings_text"`
	TCOSavingsImageURL string `json:"tco_savings_image_url"`
	Specifications     string `json:"specifications"`
	RelatedProductIDs  string `json:"related_products_ids"`
}

// UnmarshalJSON accepts the composite fields either as native JSON or as
// JSON-encoded strings. Values of any other shape decode as empty.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	var aux struct {
		plain
		ImageURLs         json.RawMessage `json:"image_urls"`
		Specifications    json.RawMessage `json:"specifications"`
		RelatedProductIDs json.RawMessage `json:"related_products_ids"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Product(aux.plain)
	p.ImageURLs = nil
	p.RelatedProductIDs = nil
	p.Specifications = nil

	var urls []string
	if decodeComposite(aux.ImageURLs, &urls) {
		p.ImageURLs = urls
	}
	var ids []int64
	if decodeComposite(aux.RelatedProductIDs, &ids) {
		p.RelatedProductIDs = ids
	}
	var specs Specifications
	if decodeComposite(aux.Specifications, &specs) {
		p.Specifications = specs
	}
	return nil
}

// decodeComposite decodes raw into out, unwrapping one level of JSON string
// encoding. It reports whether out was filled.
func decodeComposite(raw json.RawMessage, out interface{}) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false
		}
		raw = json.RawMessage(strings.TrimSpace(s))
		if len(raw) == 0 {
			return false
		}
	}
	return json.Unmarshal(raw, out) == nil
}

// Price is a product price kept as entered. It is read from either a JSON
// number or a string and written as a number only when the text is a JSON
// number literal; anything else ("05", "+5", "NaN") goes out as a string.
type Price string

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return []byte("null"), nil
	}
	if isJSONNumber(s) {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func isJSONNumber(s string) bool {
	if s[0] != '-' && (s[0] < '0' || s[0] > '9') {
		return false
	}
	return json.Valid([]byte(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("price: %w", err)
		}
		*p = Price(n.String())
	}
	return nil
}

// QnA is a question/answer pair shown in the FAQ accordion.
type QnA struct {
	ID       *int64 `json:"id" yaml:"id,omitempty"`
	Question string `json:"question" yaml:"question" validate:"required"`
	Answer   string `json:"answer" yaml:"answer" validate:"required"`
}

// Award is an award image in the gallery.
type Award struct {
	ID       *int64 `json:"id" yaml:"id,omitempty"`
	ImageURL string `json:"image_url" yaml:"image_url" validate:"required,url"`
}

// MediaItem is a media-coverage image in the gallery.
type MediaItem struct {
	ID  *int64 `json:"id" yaml:"id,omitempty"`
	URL string `json:"url" yaml:"url" validate:"required,url"`
}

// Request types carried in Request.RequestType.
const (
	RequestTypeOrder = "order"
	RequestTypeDemo  = "demo"
)

// Request is an order or demo request submitted from the public site.
type Request struct {
	ID           *int64  `json:"id"`
	RequestType  string  `json:"request_type"`
	ProductName  string  `json:"product_name"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phone_number"`
	Address      string  `json:"address"`
	Country      string  `json:"country,omitempty"`
	State        string  `json:"state,omitempty"`
	City         string  `json:"city,omitempty"`
	Pincode      string  `json:"pincode,omitempty"`
	Message      string  `json:"message,omitempty"`
	CompanyName  *string `json:"company_name"`
	Status       string  `json:"status,omitempty"`
	Quantity     int     `json:"quantity"`
	AadharNumber *string `json:"aadhar_number"`
	PanNumber    *string `json:"pan_number"`
	CreatedAt    string  `json:"created_at,omitempty"`
}

// Application is a job application submitted from the careers page.
type Application struct {
	ID        *int64 `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Position  string `json:"position"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Blog is a blog post. Content is stored as HTML paragraphs.
type Blog struct {
	ID              *int64   `json:"id"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug,omitempty"`
	Author          string   `json:"author,omitempty"`
	Description     string   `json:"description,omitempty"`
	Content         string   `json:"content,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	VideoURL        string   `json:"video_url,omitempty"`
	PublicationDate string   `json:"publication_date,omitempty"`
	ReadingTime     string   `json:"reading_time,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// Subscription is a newsletter sign-up.
type Subscription struct {
	Email string `json:"email"`
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}

// String returns a pointer to s, or nil when s is empty.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
