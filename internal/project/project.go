package project

import (
	"fmt"

	"github.com/piwi3910/BinStack/internal/model"
)

// Save writes a project to the given path as indented JSON, creating parent
// directories as needed.
func Save(path string, proj model.Project) error {
	if err := writeJSON(path, proj); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// Load reads a project from the given path.
func Load(path string) (model.Project, error) {
	var proj model.Project
	if err := readJSON(path, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to load project: %w", err)
	}
	if proj.Items == nil {
		proj.Items = []model.Item{}
	}
	return proj, nil
}
