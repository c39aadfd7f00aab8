package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/BinStack/internal/model"
)

// DefaultTemplatePath returns the default file path for the templates store,
// ~/.binstack/templates.json.
func DefaultTemplatePath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "templates.json"), nil
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store)
}

// LoadTemplates reads a template store from a JSON file. On first run, when
// no file exists yet, the starter templates are seeded and written back so
// the template picker is never empty.
func LoadTemplates(path string) (model.TemplateStore, error) {
	var store model.TemplateStore
	if err := readJSON(path, &store); err != nil {
		if os.IsNotExist(err) {
			store = model.DefaultTemplateStore()
			if saveErr := SaveTemplates(path, store); saveErr != nil {
				return store, saveErr
			}
			return store, nil
		}
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.ProjectTemplate{}
	}
	return store, nil
}

// LoadDefaultTemplates loads templates from the default path.
func LoadDefaultTemplates() (model.TemplateStore, error) {
	path, err := DefaultTemplatePath()
	if err != nil {
		return model.NewTemplateStore(), err
	}
	return LoadTemplates(path)
}

// SaveDefaultTemplates saves templates to the default path.
func SaveDefaultTemplates(store model.TemplateStore) error {
	path, err := DefaultTemplatePath()
	if err != nil {
		return err
	}
	return SaveTemplates(path, store)
}
