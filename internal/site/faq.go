package site

import (
	"context"
	"sync"

	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/pkg/api"
	"github.com/voltrak-labs/showroom/pkg/models"
)

// QnA lists the FAQ.
func (s *Site) QnA(ctx context.Context) ([]models.QnA, error) {
	var out []models.QnA
	if _, err := s.client.Get(ctx, api.EndpointQnA, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Accordion tracks which FAQ entries are expanded. Entries toggle
// independently.
type Accordion struct {
	mu   sync.Mutex
	open map[int64]bool
}

// Toggle flips entry id and reports whether it is now expanded.
func (a *Accordion) Toggle(id int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.open == nil {
		a.open = make(map[int64]bool)
	}
	a.open[id] = !a.open[id]
	return a.open[id]
}

// Expanded reports whether entry id is expanded.
func (a *Accordion) Expanded(id int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open[id]
}

// Gallery holds the awards and media sections. Each section carries its own
// error message; one failing does not hide the other.
type Gallery struct {
	Awards      []models.Award     `json:"awards"`
	AwardsError string             `json:"awards_error,omitempty"`
	Media       []models.MediaItem `json:"media"`
	MediaError  string             `json:"media_error,omitempty"`
}

// Gallery fetches awards and media concurrently.
func (s *Site) Gallery(ctx context.Context) *Gallery {
	g := &Gallery{}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := s.client.Get(ctx, api.EndpointAwards, &g.Awards); err != nil {
			g.AwardsError = errors.UserMessage(err)
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := s.client.Get(ctx, api.EndpointMedia, &g.Media); err != nil {
			g.MediaError = errors.UserMessage(err)
		}
	}()
	wg.Wait()
	return g
}
