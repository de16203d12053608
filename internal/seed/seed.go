// Package seed loads catalog content from a YAML file and applies it to the
// backend through the sync protocol.
//
// A seed file has four optional top-level lists: products, qna, awards and
// media. Unknown keys fail. Entries with an id update that record; entries
// without one are created.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/voltrak-labs/showroom/internal/backend"
	"github.com/voltrak-labs/showroom/internal/datasync"
	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/forms"
	"github.com/voltrak-labs/showroom/internal/observability"
	"github.com/voltrak-labs/showroom/internal/resources"
	"github.com/voltrak-labs/showroom/pkg/models"
)

// Catalog is the content of a seed file.
type Catalog struct {
	Products []models.Product   `yaml:"products,omitempty"`
	QnA      []models.QnA       `yaml:"qna,omitempty"`
	Awards   []models.Award     `yaml:"awards,omitempty"`
	Media    []models.MediaItem `yaml:"media,omitempty"`

	validated bool
	path      string
}

var knownKeys = map[string]bool{
	"products": true,
	"qna":      true,
	"awards":   true,
	"media":    true,
}

// Load reads a seed file. Unknown top-level keys fail.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes seed content; path is used in error messages.
func Parse(path string, data []byte) (*Catalog, error) {
	// First pass: check top-level keys.
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.NewSeedInvalid(path, fmt.Sprintf("failed to parse YAML: %v", err))
	}
	for key := range raw {
		if !knownKeys[key] {
			return nil, errors.NewSeedInvalid(path, fmt.Sprintf("unknown key: %s", key))
		}
	}

	// Second pass: typed decode.
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.NewSeedInvalid(path, err.Error())
	}
	c.path = path
	return &c, nil
}

// Validate checks every entry's required fields.
func (c *Catalog) Validate() error {
	check := func(kind string, i int, v interface{}) error {
		if err := forms.Validate(v); err != nil {
			return errors.NewSeedInvalid(c.path, fmt.Sprintf("%s[%d]: %s", kind, i, errors.UserMessage(err)))
		}
		return nil
	}
	for i, p := range c.Products {
		if err := check(resources.KeyProducts, i, p); err != nil {
			return err
		}
	}
	for i, q := range c.QnA {
		if err := check(resources.KeyQnA, i, q); err != nil {
			return err
		}
	}
	for i, a := range c.Awards {
		if err := check(resources.KeyAwards, i, a); err != nil {
			return err
		}
	}
	for i, m := range c.Media {
		if err := check(resources.KeyMedia, i, m); err != nil {
			return err
		}
	}
	c.validated = true
	return nil
}

// IsValidated reports whether Validate succeeded.
func (c *Catalog) IsValidated() bool {
	return c.validated
}

// Count is the number of entries per resource.
func (c *Catalog) Count() map[string]int {
	return map[string]int{
		resources.KeyProducts: len(c.Products),
		resources.KeyQnA:      len(c.QnA),
		resources.KeyAwards:   len(c.Awards),
		resources.KeyMedia:    len(c.Media),
	}
}

// Report counts what Apply did per resource.
type Report struct {
	Created map[string]int `json:"created"`
	Updated map[string]int `json:"updated"`
}

func newReport() *Report {
	return &Report{Created: map[string]int{}, Updated: map[string]int{}}
}

// Apply saves every entry. It stops at the first failure and returns the
// report so far.
func (c *Catalog) Apply(ctx context.Context, client *backend.Client, logger observability.SyncLogger) (*Report, error) {
	if !c.validated {
		return nil, fmt.Errorf("seed must be validated before apply")
	}
	store := datasync.NewStore()
	report := newReport()

	if err := applyAll(ctx, datasync.New(resources.Products, client, store, logger), c.Products, report); err != nil {
		return report, err
	}
	if err := applyAll(ctx, datasync.New(resources.QnA, client, store, logger), c.QnA, report); err != nil {
		return report, err
	}
	if err := applyAll(ctx, datasync.New(resources.Awards, client, store, logger), c.Awards, report); err != nil {
		return report, err
	}
	if err := applyAll(ctx, datasync.New(resources.Media, client, store, logger), c.Media, report); err != nil {
		return report, err
	}
	return report, nil
}

func applyAll[T any](ctx context.Context, s *datasync.Syncer[T], items []T, report *Report) error {
	res := s.Resource()
	for i, item := range items {
		if err := s.SaveValue(ctx, item); err != nil {
			return fmt.Errorf("%s[%d]: %w", res.Key, i, err)
		}
		if res.ID(item) != nil {
			report.Updated[res.Key]++
		} else {
			report.Created[res.Key]++
		}
	}
	return nil
}

// Export fetches the current catalog content from the backend.
func Export(ctx context.Context, client *backend.Client) (*Catalog, error) {
	store := datasync.NewStore()
	c := &Catalog{}
	var err error
	if c.Products, err = fetchAll(ctx, datasync.New(resources.Products, client, store, nil)); err != nil {
		return nil, err
	}
	if c.QnA, err = fetchAll(ctx, datasync.New(resources.QnA, client, store, nil)); err != nil {
		return nil, err
	}
	if c.Awards, err = fetchAll(ctx, datasync.New(resources.Awards, client, store, nil)); err != nil {
		return nil, err
	}
	if c.Media, err = fetchAll(ctx, datasync.New(resources.Media, client, store, nil)); err != nil {
		return nil, err
	}
	return c, nil
}

func fetchAll[T any](ctx context.Context, s *datasync.Syncer[T]) ([]T, error) {
	if err := s.Fetch(ctx); err != nil {
		return nil, err
	}
	return s.Items(), nil
}

// Save writes the catalog as YAML.
func (c *Catalog) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal seed: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write seed file: %w", err)
	}
	return nil
}

// Init writes an example seed file into dir and returns its path.
func Init(dir string) (string, error) {
	path := filepath.Join(dir, "catalog.yaml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(exampleSeed), 0o644); err != nil {
		return "", fmt.Errorf("failed to write seed file: %w", err)
	}
	return path, nil
}

// Example returns the catalog written by Init.
func Example() *Catalog {
	c, err := Parse("catalog.yaml", []byte(exampleSeed))
	if err != nil {
		panic(err)
	}
	return c
}

const exampleSeed = `# Showroom catalog seed
# Apply with 'showroom seed apply catalog.yaml'.
# Entries with an id update that record; entries without one are created.

products:
  - name: E-Tractor 40
    tagline: Quiet power for every field
    price: 1250000
    category: tractor
    main_image_url: https://cdn.example.com/e-tractor-40/main.jpg
    image_urls:
      - https://cdn.example.com/e-tractor-40/side.jpg
    features_text: Regenerative braking, 8 h runtime
    specifications:
      motor:
        - parameter: Power
          value: 30 kW
      battery_pack:
        - parameter: Capacity
          value: 40 kWh
    related_products_ids: []

qna:
  - question: How long does a full charge take?
    answer: About four hours on a standard three-phase supply.

awards:
  - image_url: https://cdn.example.com/awards/innovation-2024.png

media:
  - url: https://cdn.example.com/media/launch-coverage.jpg
`
