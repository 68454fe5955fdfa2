package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/wsup/pkg/wsup"
)

func TestLoadWorkshopItem(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "workshop.toml"), []byte(`
app_id = 4000
item_id = 3141592653
tags = ["Map", "Multiplayer"]
`), 0o644))

	item, err := LoadWorkshopItem(root)
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.Equal(t, wsup.AppID(4000), item.AppID)
	assert.Equal(t, wsup.PublishedFileID(3141592653), item.ItemID)
	assert.Equal(t, []string{"Map", "Multiplayer"}, item.Tags)
}

func TestLoadWorkshopItem_Missing(t *testing.T) {
	item, err := LoadWorkshopItem(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestLoadWorkshopItem_NotAFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "workshop.toml"), 0o755))

	_, err := LoadWorkshopItem(root)
	assert.ErrorIs(t, err, wsup.ErrInvalidConfig)
}

func TestLoadWorkshopItem_Malformed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "workshop.toml"), []byte("app_id = \"x\""), 0o644))

	_, err := LoadWorkshopItem(root)
	assert.ErrorIs(t, err, wsup.ErrInvalidConfig)
}

func TestStoreWorkshopItem_RoundTrip(t *testing.T) {
	root := t.TempDir()
	want := WorkshopItemConfig{AppID: 4000, ItemID: 77, Tags: []string{"Weapon"}}

	require.NoError(t, StoreWorkshopItem(root, want))

	got, err := LoadWorkshopItem(root)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}
