package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"

	"github.com/driftline/castaway/internal/engine"
	"github.com/driftline/castaway/internal/game"
	"github.com/driftline/castaway/internal/persist"
	"github.com/driftline/castaway/internal/storage"
)

type StorageConfig struct {
	Rooms    AssetConfig[*game.Room]      `json:"rooms"`
	Items    AssetConfig[*game.Item]      `json:"items"`
	Chapters AssetConfig[*engine.Chapter] `json:"chapters"`
	Saves    SaveConfig                   `json:"saves"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()
	el.Add(c.Rooms.Validate("rooms"))
	el.Add(c.Items.Validate("items"))
	el.Add(c.Chapters.Validate("chapters"))
	el.Add(c.Saves.Validate())
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

// SaveConfig points at the save directory. Unlike the asset directories it
// is created on first run rather than required to exist.
type SaveConfig struct {
	Path string `json:"path"`
}

func (c *SaveConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("saves: path is required")
	}
	return nil
}

func (c *SaveConfig) BuildSlotManager() (*persist.SlotManager, error) {
	// Slot files live in a subdirectory so the index never gets loaded as
	// a snapshot.
	slotDir := filepath.Join(c.Path, "slots")
	if err := os.MkdirAll(slotDir, 0755); err != nil {
		return nil, fmt.Errorf("creating save directory: %w", err)
	}

	saves, err := storage.NewFileStore[*persist.GameState](slotDir)
	if err != nil {
		return nil, fmt.Errorf("creating save store: %w", err)
	}

	return persist.NewSlotManager(saves, filepath.Join(c.Path, "index.json"))
}
