package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/BinStack/internal/model"
)

// DefaultInventoryPath returns the default file path for the inventory file,
// ~/.binstack/inventory.json.
func DefaultInventoryPath() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "inventory.json"), nil
}

// SaveInventory writes the inventory to the specified JSON file.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	if err := readJSON(path, &inv); err != nil {
		if os.IsNotExist(err) {
			inv = model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory from the default path.
// If the file does not exist, it creates one with default entries.
func LoadOrCreateInventory() (model.Inventory, string, error) {
	path, err := DefaultInventoryPath()
	if err != nil {
		return model.DefaultInventory(), "", err
	}
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ExportInventory exports the inventory to a user-specified JSON file.
func ExportInventory(path string, inv model.Inventory) error {
	return SaveInventory(path, inv)
}

// ImportInventory imports an inventory from a user-specified JSON file,
// merging it with the existing inventory. Duplicate IDs are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	var imported model.Inventory
	if err := readJSON(path, &imported); err != nil {
		return existing, err
	}

	cartonIDs := make(map[string]bool, len(existing.Cartons))
	for _, c := range existing.Cartons {
		cartonIDs[c.ID] = true
	}

	for _, c := range imported.Cartons {
		if !cartonIDs[c.ID] {
			existing.Cartons = append(existing.Cartons, c)
			cartonIDs[c.ID] = true
		}
	}

	return existing, nil
}
