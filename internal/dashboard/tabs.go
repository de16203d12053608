// Package dashboard is the admin dashboard: a tab per resource, an edit
// buffer for each editable resource, and a confirmation gate in front of
// every deletion.
package dashboard

import (
	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/resources"
)

// Tab selects the resource on screen.
type Tab string

const (
	TabProducts     Tab = resources.KeyProducts
	TabQnA          Tab = resources.KeyQnA
	TabAwards       Tab = resources.KeyAwards
	TabMedia        Tab = resources.KeyMedia
	TabRequests     Tab = resources.KeyRequests
	TabApplications Tab = resources.KeyApplications
)

// InitialTab is active when the dashboard opens.
const InitialTab = TabProducts

// Tabs lists every tab in display order.
func Tabs() []Tab {
	return []Tab{TabProducts, TabQnA, TabAwards, TabMedia, TabRequests, TabApplications}
}

// ParseTab resolves a tab name.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs() {
		if string(t) == s {
			return t, nil
		}
	}
	names := make([]string, 0, len(Tabs()))
	for _, t := range Tabs() {
		names = append(names, string(t))
	}
	return "", errors.NewUnknownTab(s, names)
}
