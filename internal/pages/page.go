package pages

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"gchart/internal/charts"
)

// DefaultTitle is used for pages without a title.
const DefaultTitle = "Dashboard"

// ChartSpec places one chart on a page.
type ChartSpec struct {
	ID         string              `json:"id" yaml:"id"`
	Attributes map[string]string   `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Request    charts.ChartRequest `json:"request" yaml:"request"`
	Fallback   bool                `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// Page describes a dashboard: a title, markdown notes and charts in order.
type Page struct {
	Title  string      `json:"title" yaml:"title"`
	Notes  string      `json:"notes,omitempty" yaml:"notes,omitempty"`
	Charts []ChartSpec `json:"charts" yaml:"charts"`
}

// ErrDuplicateChartID is returned when two charts on a page share an id.
var ErrDuplicateChartID = errors.New("duplicate chart id")

// Parse decodes a page description. YAML is a superset of JSON, so both
// formats are accepted.
func Parse(data []byte) (*Page, error) {
	var p Page
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate rejects pages whose chart ids are empty or repeated.
func (p *Page) Validate() error {
	seen := make(map[string]bool, len(p.Charts))
	for i, c := range p.Charts {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("chart %d: %w", i, charts.ErrEmptyElementID)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w %q", ErrDuplicateChartID, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// DisplayTitle returns the title or DefaultTitle.
func (p *Page) DisplayTitle() string {
	if strings.TrimSpace(p.Title) == "" {
		return DefaultTitle
	}
	return p.Title
}
