package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Dark = true
	cfg.Quality = 80
	cfg.FileNameTemplate = "crops/{image.stem}_{index:2}.jpg"
	cfg.AdvanceOnAccept = false
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: 70\nforget_metadata: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 70, cfg.Quality)
	assert.True(t, cfg.ForgetMetadata)
	assert.True(t, cfg.AdvanceOnAccept)
	assert.Equal(t, "catmullrom", cfg.Interpolation)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: [1, 2"), 0o644))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidateClamps(t *testing.T) {
	cfg := &Config{
		Quality:        300,
		Interpolation:  " BiLinear ",
		PrefetchRadius: 20,
		CacheSize:      1,
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 95, cfg.Quality)
	assert.Equal(t, "bilinear", cfg.Interpolation)
	assert.Equal(t, 8, cfg.PrefetchRadius)
	assert.Equal(t, 17, cfg.CacheSize)
	assert.Equal(t, DefaultConfig().FileNameTemplate, cfg.FileNameTemplate)
	assert.Equal(t, 4.0, cfg.MinSelectionPx)
	assert.Equal(t, 400, cfg.WindowWidth)
	assert.Equal(t, 600, cfg.WindowHeight)

	cfg.Interpolation = "sinc"
	_ = cfg.Validate()
	assert.Equal(t, "catmullrom", cfg.Interpolation)
}

func TestDefaultPath(t *testing.T) {
	p := DefaultPath()
	assert.Equal(t, "config.yaml", filepath.Base(p))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(p)))
}
