package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	conf := Default()
	assert.Equal(t, 1024, conf.Window.Width)
	assert.Equal(t, 768, conf.Window.Height)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1024, conf.Window.Width)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 640
  height: 480
fonts:
  - family: Inter
    path: /tmp/inter.ttf
stylesheets:
  - user.css
`), 0o644))

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, conf.Window.Width)
	assert.Equal(t, 480, conf.Window.Height)
	require.Len(t, conf.Fonts, 1)
	assert.Equal(t, "Inter", conf.Fonts[0].Family)
	assert.Equal(t, []string{"user.css"}, conf.Stylesheets)
}

func TestLoadInvalidSizesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: { width: -5, height: 0 }\n"), 0o644))

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, conf.Window.Width)
	assert.Equal(t, 768, conf.Window.Height)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/goview.yaml")
	assert.Error(t, err)
}
