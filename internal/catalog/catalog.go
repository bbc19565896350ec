// Package catalog loads the static layout and time-slot tables.  The tables
// are read once at startup, from the embedded default or from a YAML file
// named by configuration, and handed to the seat map as immutable values.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/room-seatmap/internal/seatmap"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog wraps every decoding or validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the decoded static data.
type Catalog struct {
	Layouts   seatmap.Layouts
	TimeSlots seatmap.TimeSlots
}

// file mirrors the YAML document.
type file struct {
	TimeSlots []seatmap.TimeSlot       `yaml:"time_slots"`
	Layouts   map[string][][]cellEntry `yaml:"layouts"`
}

// cellEntry is the wire shape of a cell: {type, number, text, span}.
type cellEntry struct {
	Type   string `yaml:"type"`
	Number int    `yaml:"number"`
	Text   string `yaml:"text"`
	Span   int    `yaml:"span"`
}

// Default decodes the embedded catalogue.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads path, or the embedded catalogue when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML catalogue.
func Parse(b []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]bool, len(f.TimeSlots))
	for i, s := range f.TimeSlots {
		if s.ID == "" || s.Label == "" {
			return nil, fmt.Errorf("%w: time slot %d needs id and label", ErrInvalidCatalog, i)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("%w: duplicate time slot id %q", ErrInvalidCatalog, s.ID)
		}
		seen[s.ID] = true
	}

	layouts := make(map[string]seatmap.Layout, len(f.Layouts))
	for name, rows := range f.Layouts {
		layout := make(seatmap.Layout, 0, len(rows))
		for ri, row := range rows {
			cells := make(seatmap.Row, 0, len(row))
			for ci, e := range row {
				c, err := e.cell()
				if err != nil {
					return nil, fmt.Errorf("%w: %s row %d cell %d: %v", ErrInvalidCatalog, name, ri, ci, err)
				}
				cells = append(cells, c)
			}
			layout = append(layout, cells)
		}
		if err := layout.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, name, err)
		}
		layouts[name] = layout
	}

	return &Catalog{
		Layouts:   seatmap.NewLayouts(layouts),
		TimeSlots: seatmap.NewTimeSlots(f.TimeSlots),
	}, nil
}

func (e cellEntry) cell() (seatmap.Cell, error) {
	if e.Span < 0 {
		return nil, fmt.Errorf("span must be >= 1, got %d", e.Span)
	}
	// fields that do not belong to the cell type are usually typos
	switch seatmap.CellKind(e.Type) {
	case seatmap.KindSeat:
		if e.Text != "" {
			return nil, fmt.Errorf("seat cell does not take text %q", e.Text)
		}
		return seatmap.SeatCell{Number: e.Number, Width: e.Span}, nil
	case seatmap.KindLabel:
		if e.Number != 0 {
			return nil, fmt.Errorf("label cell does not take number %d", e.Number)
		}
		return seatmap.LabelCell{Text: e.Text, Width: e.Span}, nil
	case seatmap.KindSpace:
		if e.Number != 0 || e.Text != "" {
			return nil, errors.New("space cell takes only span")
		}
		return seatmap.SpaceCell{Width: e.Span}, nil
	default:
		return nil, fmt.Errorf("unknown cell type %q", e.Type)
	}
}
