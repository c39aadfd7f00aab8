package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/piwi3910/BinStack/internal/geometry"
)

// Input validation errors surfaced to the UI and CLI layers. The packing
// engine itself assumes validated input.
var (
	ErrNoItems           = errors.New("no items to pack")
	ErrInvalidCarton     = errors.New("carton dimensions must be positive")
	ErrItemExceedsCarton = errors.New("item does not fit in the carton in any orientation")
)

// Item represents a rectangular box that must be packed.
type Item struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Width    int    `json:"width"`  // mm, x-axis extent
	Depth    int    `json:"depth"`  // mm, z-axis extent
	Height   int    `json:"height"` // mm, y-axis extent
	Quantity int    `json:"quantity"`
}

// NewItem creates an Item with a generated ID.
func NewItem(label string, w, d, h, qty int) Item {
	return Item{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Depth:    d,
		Height:   h,
		Quantity: qty,
	}
}

// Cuboid returns the item's dimensions as a geometry cuboid.
func (it Item) Cuboid() geometry.Cuboid {
	return geometry.NewCuboid(it.Width, it.Depth, it.Height)
}

// Volume returns the volume of a single unit of this item.
func (it Item) Volume() int {
	return it.Width * it.Depth * it.Height
}

// Carton represents the carton specification: one size, unbounded supply.
type Carton struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Width  int    `json:"width"`  // mm
	Depth  int    `json:"depth"`  // mm
	Height int    `json:"height"` // mm
}

// NewCarton creates a Carton with a generated ID.
func NewCarton(label string, w, d, h int) Carton {
	return Carton{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Depth:  d,
		Height: h,
	}
}

// Cuboid returns the carton's interior as a geometry cuboid.
func (c Carton) Cuboid() geometry.Cuboid {
	return geometry.NewCuboid(c.Width, c.Depth, c.Height)
}

// Volume returns the interior volume of one carton.
func (c Carton) Volume() int {
	return c.Width * c.Depth * c.Height
}

// PackSettings holds the tunables of the packing engine.
type PackSettings struct {
	PopulationFactor            int     `json:"population_factor"`              // population = factor * item count
	ElitesPercentage            float64 `json:"elites_percentage"`              // fraction of population kept as elites
	MutantsPercentage           float64 `json:"mutants_percentage"`             // fraction of population replaced by mutants
	InheritEliteProbability     float64 `json:"inherit_elite_probability"`      // per-gene bias toward the elite parent
	MaxGenerations              int     `json:"max_generations"`                // hard generation cap
	MaxGenerationsNoImprovement int     `json:"max_generations_no_improvement"` // stagnation cap

	// BoxRotation selects 3D (all orientations) or 2D (upright only) rotation.
	BoxRotation geometry.RotationMode `json:"box_rotation"`

	// RandomSeed seeds the optimizer; 0 derives a seed from the clock.
	RandomSeed int64 `json:"random_seed"`

	// Workers sets the evaluation worker count; 0 runs single-threaded.
	Workers int `json:"workers"`
}

// DefaultSettings returns the stock engine configuration.
func DefaultSettings() PackSettings {
	return PackSettings{
		PopulationFactor:            30,
		ElitesPercentage:            0.10,
		MutantsPercentage:           0.15,
		InheritEliteProbability:     0.70,
		MaxGenerations:              200,
		MaxGenerationsNoImprovement: 5,
		BoxRotation:                 geometry.ThreeDimension,
		RandomSeed:                  0,
		Workers:                     0,
	}
}

// ValidateInput checks a carton and item list before handing them to the
// engine. Fit is checked under the given rotation mode, because an item that
// only fits lying down is unplaceable when rotation is restricted to 2D.
// It reports the first problem found.
func ValidateInput(carton Carton, items []Item, mode geometry.RotationMode) error {
	if carton.Width <= 0 || carton.Depth <= 0 || carton.Height <= 0 {
		return ErrInvalidCarton
	}

	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	if total == 0 {
		return ErrNoItems
	}

	interior := geometry.SpaceAt(geometry.Point{}, carton.Cuboid())
	for _, it := range items {
		if it.Quantity <= 0 {
			continue
		}
		if it.Width <= 0 || it.Depth <= 0 || it.Height <= 0 {
			return fmt.Errorf("item %q: dimensions must be positive", it.Label)
		}
		fits := false
		for _, o := range mode.Orientations(it.Cuboid()) {
			if o.FitsIn(interior) {
				fits = true
				break
			}
		}
		if !fits {
			return fmt.Errorf("item %q (%dx%dx%d): %w", it.Label, it.Width, it.Depth, it.Height, ErrItemExceedsCarton)
		}
	}
	return nil
}

// Placement represents one item placed inside a carton. Space carries both
// the position (bottom-left corner) and the placed orientation (extents).
type Placement struct {
	Item  Item           `json:"item"`
	Space geometry.Space `json:"space"`
}

// PlacedWidth returns the x extent of the placement, after rotation.
func (p Placement) PlacedWidth() int {
	return p.Space.Width()
}

// PlacedDepth returns the z extent of the placement, after rotation.
func (p Placement) PlacedDepth() int {
	return p.Space.Depth()
}

// PlacedHeight returns the y extent of the placement, after rotation.
func (p Placement) PlacedHeight() int {
	return p.Space.Height()
}

// Rotated reports whether the item was placed in a non-canonical orientation.
func (p Placement) Rotated() bool {
	return p.Space.Size() != p.Item.Cuboid()
}

// BinResult represents one packed carton.
type BinResult struct {
	Carton     Carton      `json:"carton"`
	Placements []Placement `json:"placements"`
}

// UsedVolume returns the total volume of the items in this carton.
func (br BinResult) UsedVolume() int {
	var total int
	for _, p := range br.Placements {
		total += p.Space.Volume()
	}
	return total
}

// TotalVolume returns the carton's interior volume.
func (br BinResult) TotalVolume() int {
	return br.Carton.Volume()
}

// Utilization returns the fill percentage of this carton.
func (br BinResult) Utilization() float64 {
	tv := br.TotalVolume()
	if tv == 0 {
		return 0
	}
	return float64(br.UsedVolume()) / float64(tv) * 100.0
}

// PackResult holds the full solution: one entry per opened carton, in the
// order the cartons were opened; placements within a carton are in placement
// order.
type PackResult struct {
	Bins []BinResult `json:"bins"`
}

// NumBins returns the number of cartons used.
func (pr PackResult) NumBins() int {
	return len(pr.Bins)
}

// TotalItems returns the number of placed items across all cartons.
func (pr PackResult) TotalItems() int {
	var total int
	for _, b := range pr.Bins {
		total += len(b.Placements)
	}
	return total
}

// LeastLoad returns the smallest used volume over all cartons, or 0 when no
// carton was opened.
func (pr PackResult) LeastLoad() int {
	if len(pr.Bins) == 0 {
		return 0
	}
	least := pr.Bins[0].UsedVolume()
	for _, b := range pr.Bins[1:] {
		if v := b.UsedVolume(); v < least {
			least = v
		}
	}
	return least
}

// TotalUtilization returns the overall fill percentage across all cartons.
func (pr PackResult) TotalUtilization() float64 {
	var used, total int
	for _, b := range pr.Bins {
		used += b.UsedVolume()
		total += b.TotalVolume()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// Project ties everything together for save/load.
type Project struct {
	Name     string       `json:"name"`
	Items    []Item       `json:"items"`
	Carton   Carton       `json:"carton"`
	Settings PackSettings `json:"settings"`
	Result   *PackResult  `json:"result,omitempty"`
}

// NewProject creates an empty project with default settings and a common
// default carton.
func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Items:    []Item{},
		Carton:   NewCarton("Standard 600x400x400", 600, 400, 400),
		Settings: DefaultSettings(),
	}
}
