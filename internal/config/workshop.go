package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/vvka-141/wsup/pkg/wsup"
)

// WorkshopItemConfig is the metadata file kept at the root of an item's
// content directory. Tags are stored because the platform drops them when an
// update does not resend them.
type WorkshopItemConfig struct {
	AppID  wsup.AppID           `toml:"app_id" yaml:"app_id" json:"app_id"`
	ItemID wsup.PublishedFileID `toml:"item_id" yaml:"item_id" json:"item_id"`
	Tags   []string             `toml:"tags" yaml:"tags" json:"tags"`
}

// WorkshopItemPath returns the metadata file location for a content root.
func WorkshopItemPath(contentRoot string) string {
	return filepath.Join(contentRoot, wsup.MetadataFileName)
}

// LoadWorkshopItem reads the metadata file of contentRoot.
// Returns (nil, nil) when the content root has none.
func LoadWorkshopItem(contentRoot string) (*WorkshopItemConfig, error) {
	path := WorkshopItemPath(contentRoot)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a file", wsup.ErrInvalidConfig, path)
	}

	var item WorkshopItemConfig
	if _, err := toml.DecodeFile(path, &item); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", wsup.ErrInvalidConfig, path, err)
	}
	return &item, nil
}

// StoreWorkshopItem writes item into contentRoot, replacing any existing file.
func StoreWorkshopItem(contentRoot string, item WorkshopItemConfig) error {
	f, err := os.OpenFile(WorkshopItemPath(contentRoot), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write item metadata: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(item); err != nil {
		return fmt.Errorf("failed to encode item metadata: %w", err)
	}
	return f.Close()
}
