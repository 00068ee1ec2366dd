package chipper_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tstromberg/chipper/pkg/chipper"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePNG(t, dir, "b.png", 8, 4)
	writePNG(t, dir, "a.png", 3, 5)
	writeFile(t, dir, "notes.txt", "hello")
	writeFile(t, dir, "empty.png", "")
	writeFile(t, dir, ".hidden.png", "")
	writePNG(t, dir, ".dot.png", 2, 6)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))
	writePNG(t, filepath.Join(dir, "sub.png"), "nested.png", 2, 2)

	b, err := chipper.Load(dir)
	require.NoError(t, err)

	got := []string{}
	for _, i := range b.Images {
		got = append(got, i.Name)
	}
	assert.Equal(t, []string{".dot.png", "a.png", "b.png"}, got)
	assert.ElementsMatch(t, []string{".hidden.png", "empty.png", "notes.txt"}, b.Skipped)

	a := b.Get("a.png")
	require.NotNil(t, a)
	assert.Equal(t, ".png", a.Ext)
	assert.Equal(t, "a", a.Base())
	assert.Equal(t, filepath.Join(dir, "a.png"), a.Path)
	assert.Equal(t, 3, a.Img.Bounds().Dx())
	assert.Equal(t, 5, a.Img.Bounds().Dy())
	assert.Nil(t, b.Get("notes.txt"))
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "readme.md", "# nothing here")

	b, err := chipper.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
}

func TestLoadMissingDir(t *testing.T) {
	t.Parallel()

	_, err := chipper.Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
