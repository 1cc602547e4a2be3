package site

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltInBrandsAreValid(t *testing.T) {
	for _, brand := range []*Brand{EducationBrand(), MaternalCareBrand()} {
		assert.NoError(t, brand.Validate(), brand.Key)
		assert.NotEmpty(t, brand.Features, brand.Key)
		assert.NotEmpty(t, brand.HelpTopics, brand.Key)
	}
}

func TestLoadBrandFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand.yml")
	yaml := `
name: MAA
tagline: Care for every mother
accent_color: "#db2777"
nav:
  - label: Home
    href: /
features:
  - icon: heart
    title: Health Monitoring
    description: Track vitals in one place.
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	brand, err := LoadBrand(path)
	require.NoError(t, err)
	assert.Equal(t, "MAA", brand.Name)
	assert.Equal(t, "Care for every mother", brand.Tagline)
	require.Len(t, brand.Features, 1)
	assert.Equal(t, "Health Monitoring", brand.Features[0].Title)
}

func TestLoadBrandEnvOverride(t *testing.T) {
	t.Setenv("SITE_NAME", "Renamed")

	brand, err := LoadBrand("")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", brand.Name)
}

func TestLoadBrandPresetKey(t *testing.T) {
	brand, err := LoadBrand("maa")
	require.NoError(t, err)
	assert.Equal(t, "MAA", brand.Name)

	brand, err = LoadBrand("education")
	require.NoError(t, err)
	assert.Equal(t, "ShikshaMitra", brand.Name)
}

func TestSaveRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brand.yml")
	require.NoError(t, MaternalCareBrand().Save(path))

	brand, err := LoadBrand(path)
	require.NoError(t, err)
	assert.Equal(t, "MAA", brand.Name)
	assert.Equal(t, "#db2777", brand.AccentColor)
	assert.Equal(t, len(MaternalCareBrand().Features), len(brand.Features))
}

func TestLoadBrandMissingFile(t *testing.T) {
	_, err := LoadBrand(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestRendererCoversAllPages(t *testing.T) {
	renderer, err := NewRenderer(EducationBrand())
	require.NoError(t, err)

	for _, page := range Pages {
		var buf bytes.Buffer
		err := renderer.Render(&buf, page, PageData{Email: "a@b.com"})
		require.NoError(t, err, page)
		assert.True(t, strings.Contains(buf.String(), "ShikshaMitra"), "%s missing brand name", page)
	}
}

func TestRendererUnknownPage(t *testing.T) {
	renderer, err := NewRenderer(EducationBrand())
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.Error(t, renderer.Render(&buf, "nonexistent", PageData{}))
}
