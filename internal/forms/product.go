package forms

import (
	"encoding/json"
	"strings"

	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/pkg/models"
)

// FieldSpecifications is the product field that takes JSON text.
const FieldSpecifications = "specifications"

// ProductForm is the product edit buffer. Lists and specifications are held
// as native values; specifications text that does not parse is kept as typed
// and rejected only when the form is submitted.
type ProductForm struct {
	product  models.Product
	specsRaw string
	specsErr error
}

// NewProductForm creates an empty product form.
func NewProductForm() *ProductForm {
	f := &ProductForm{}
	f.Reset()
	return f
}

// FromProduct creates a form seeded from p.
func FromProduct(p models.Product) *ProductForm {
	f := &ProductForm{}
	f.Edit(p)
	return f
}

// Reset restores the empty template.
func (f *ProductForm) Reset() {
	f.product = models.Product{
		ImageURLs:         []string{},
		RelatedProductIDs: []int64{},
		Specifications:    models.Specifications{},
	}
	f.specsRaw = ""
	f.specsErr = nil
}

// Edit seeds the form from p. The form owns copies of p's lists.
func (f *ProductForm) Edit(p models.Product) {
	f.Reset()
	if p.ID != nil {
		p.ID = models.Int64(*p.ID)
	}
	p.ImageURLs = append([]string{}, p.ImageURLs...)
	p.RelatedProductIDs = append([]int64{}, p.RelatedProductIDs...)
	specs := models.Specifications{}
	for _, sec := range p.Specifications {
		specs = append(specs, models.SpecSection{Key: sec.Key, Rows: append([]models.SpecRow{}, sec.Rows...)})
	}
	p.Specifications = specs
	f.product = p
}

// Editing reports whether the form holds an existing product.
func (f *ProductForm) Editing() bool {
	return f.product.ID != nil
}

// Current returns the product as held, without validation.
func (f *ProductForm) Current() models.Product {
	return f.product
}

// SpecificationsRaw returns unparsed specifications text, if any is pending.
func (f *ProductForm) SpecificationsRaw() (string, bool) {
	return f.specsRaw, f.specsErr != nil
}

// SpecificationsText renders the specifications for editing: the pending raw
// text, else indented JSON.
func (f *ProductForm) SpecificationsText() string {
	if f.specsErr != nil {
		return f.specsRaw
	}
	data, err := json.MarshalIndent(f.product.Specifications, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// SetField assigns text input to one product field by JSON name.
func (f *ProductForm) SetField(name, value string) error {
	if name != FieldSpecifications {
		return SetField(&f.product, name, value)
	}

	if strings.TrimSpace(value) == "" {
		f.product.Specifications = models.Specifications{}
		f.specsRaw, f.specsErr = "", nil
		return nil
	}
	var specs models.Specifications
	if err := json.Unmarshal([]byte(value), &specs); err != nil {
		f.specsRaw, f.specsErr = value, err
		return nil
	}
	f.product.Specifications = specs
	f.specsRaw, f.specsErr = "", nil
	return nil
}

// Value returns the product to submit. Pending specifications text fails
// here with InvalidSpecifications.
func (f *ProductForm) Value() (models.Product, error) {
	if f.specsErr != nil {
		return models.Product{}, errors.NewInvalidSpecifications(f.specsRaw, f.specsErr)
	}
	if err := Validate(f.product); err != nil {
		return models.Product{}, err
	}
	return f.product, nil
}
