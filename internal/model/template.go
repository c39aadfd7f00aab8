package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate represents a reusable project configuration that captures
// items, carton, and settings but not packing results.
type ProjectTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Items       []Item       `json:"items"`
	Carton      Carton       `json:"carton"`
	Settings    PackSettings `json:"settings"`
}

// NewProjectTemplate creates a new template from the given project data.
// It copies items, carton, and settings but intentionally excludes results.
func NewProjectTemplate(name, description string, items []Item, carton Carton, settings PackSettings) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       copyItems(items),
		Carton:      carton,
		Settings:    settings,
	}
}

// ToProject creates a new Project from this template.
// Items get fresh IDs so they are independent of the template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	items := make([]Item, len(t.Items))
	for i, it := range t.Items {
		items[i] = NewItem(it.Label, it.Width, it.Depth, it.Height, it.Quantity)
	}

	return Project{
		Name:     projectName,
		Items:    items,
		Carton:   t.Carton,
		Settings: t.Settings,
	}
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// DefaultTemplateStore returns a store seeded with starter templates so the
// template picker has something to offer on first launch.
func DefaultTemplateStore() TemplateStore {
	store := NewTemplateStore()
	store.Add(NewProjectTemplate(
		"Apartment Move",
		"Typical one-bedroom move into half-EUR cartons",
		[]Item{
			NewItem("Book bundle", 300, 210, 260, 10),
			NewItem("Kitchen box", 350, 250, 300, 6),
			NewItem("Shoe box", 330, 210, 120, 8),
			NewItem("Bedding bag", 500, 350, 250, 3),
		},
		NewCarton("EUR Half 600x400x400", 600, 400, 400),
		DefaultSettings(),
	))
	store.Add(NewProjectTemplate(
		"Web-shop Orders",
		"Daily parcel batch into courier cartons",
		[]Item{
			NewItem("Small parcel", 200, 150, 100, 20),
			NewItem("Medium parcel", 300, 200, 150, 10),
			NewItem("Large parcel", 400, 300, 200, 5),
		},
		NewCarton("Courier 600x400x300", 600, 400, 300),
		DefaultSettings(),
	))
	return store
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// copyItems creates a deep copy of an items slice.
func copyItems(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	cp := make([]Item, len(items))
	copy(cp, items)
	return cp
}
