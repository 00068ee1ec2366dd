package chipper_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writePNG writes a w x h gradient PNG to dir/name.
func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 13), B: uint8((x + y) * 3), A: 255})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// writeFile writes raw bytes to dir/name.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// size decodes the image at path and returns its dimensions.
func size(t *testing.T, path string) (int, int) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	ic, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	return ic.Width, ic.Height
}

// names lists the file names in dir.
func names(t *testing.T, dir string) []string {
	t.Helper()

	des, err := os.ReadDir(dir)
	require.NoError(t, err)
	ns := []string{}
	for _, de := range des {
		ns = append(ns, de.Name())
	}
	return ns
}

// dirs creates a temporary directory for each role name.
func dirs(t *testing.T, roles ...string) map[string]string {
	t.Helper()

	root := t.TempDir()
	m := map[string]string{}
	for _, r := range roles {
		p := filepath.Join(root, r)
		require.NoError(t, os.Mkdir(p, 0o755))
		m[r] = p
	}
	return m
}
