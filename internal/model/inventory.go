package model

// CartonPreset represents a reusable carton size definition.
type CartonPreset struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Depth    int    `json:"depth"`
	Height   int    `json:"height"`
	Material string `json:"material"`
}

// NewCartonPreset creates a new CartonPreset with a generated ID.
func NewCartonPreset(name string, width, depth, height int, material string) CartonPreset {
	c := NewCarton(name, width, depth, height)
	return CartonPreset{
		ID:       c.ID,
		Name:     name,
		Width:    width,
		Depth:    depth,
		Height:   height,
		Material: material,
	}
}

// ToCarton converts a CartonPreset into a Carton.
func (cp CartonPreset) ToCarton() Carton {
	return NewCarton(cp.Name, cp.Width, cp.Depth, cp.Height)
}

// Inventory holds the user's saved carton presets.
type Inventory struct {
	Cartons []CartonPreset `json:"cartons"`
}

// DefaultInventory returns an inventory populated with common carton sizes.
func DefaultInventory() Inventory {
	return Inventory{
		Cartons: []CartonPreset{
			NewCartonPreset("EUR Quarter 600x400x300", 600, 400, 300, "Cardboard"),
			NewCartonPreset("EUR Half 600x400x400", 600, 400, 400, "Cardboard"),
			NewCartonPreset("Moving Box 600x300x300", 600, 300, 300, "Cardboard"),
			NewCartonPreset("Book Box 400x300x300", 400, 300, 300, "Cardboard"),
			NewCartonPreset("Archive Box 390x290x250", 390, 290, 250, "Cardboard"),
			NewCartonPreset("Euro Crate 600x400x320", 600, 400, 320, "Plastic"),
			NewCartonPreset("Half Crate 400x300x220", 400, 300, 220, "Plastic"),
		},
	}
}

// FindCartonByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindCartonByID(id string) *CartonPreset {
	for i := range inv.Cartons {
		if inv.Cartons[i].ID == id {
			return &inv.Cartons[i]
		}
	}
	return nil
}

// FindCartonByName returns a pointer to the first preset with the given name, or nil.
func (inv *Inventory) FindCartonByName(name string) *CartonPreset {
	for i := range inv.Cartons {
		if inv.Cartons[i].Name == name {
			return &inv.Cartons[i]
		}
	}
	return nil
}

// CartonNames returns a list of preset names for UI dropdowns.
func (inv *Inventory) CartonNames() []string {
	names := make([]string, len(inv.Cartons))
	for i, c := range inv.Cartons {
		names[i] = c.Name
	}
	return names
}
