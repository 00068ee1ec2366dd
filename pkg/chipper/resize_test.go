package chipper_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tstromberg/chipper/pkg/chipper"
)

func TestResizerRunIgnoresAspectRatio(t *testing.T) {
	t.Parallel()

	sizes := map[string][2]int{
		"wide.png":   {300, 20},
		"tall.png":   {10, 90},
		"square.png": {64, 64},
		"tiny.png":   {1, 1},
	}

	for _, target := range [][2]int{{256, 256}, {100, 37}, {1, 400}} {
		d := dirs(t, "src", "dst")
		for name, s := range sizes {
			writePNG(t, d["src"], name, s[0], s[1])
		}

		r := &chipper.Resizer{Width: target[0], Height: target[1], OnDecodeFailure: chipper.Skip, Workers: 2}
		res, err := r.Run(context.Background(), d["src"], d["dst"])
		require.NoError(t, err)
		assert.Equal(t, len(sizes), res.Processed)

		for name := range sizes {
			w, h := size(t, filepath.Join(d["dst"], name))
			assert.Equal(t, target, [2]int{w, h}, name)
		}
	}
}

func TestResizerRunInvalidSize(t *testing.T) {
	t.Parallel()

	d := dirs(t, "src", "dst")
	r := &chipper.Resizer{Width: 0, Height: 10}
	_, err := r.Run(context.Background(), d["src"], d["dst"])
	assert.ErrorIs(t, err, chipper.ErrInvalidSize)
}

func TestNewResizerDefaults(t *testing.T) {
	t.Parallel()

	r := chipper.NewResizer(chipper.NewConfig())
	assert.Equal(t, 512, r.Width)
	assert.Equal(t, 512, r.Height)
	assert.Equal(t, chipper.Skip, r.OnDecodeFailure)
}

func TestAntiAlias(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePNG(t, dir, "big.png", 1024, 512)
	writePNG(t, dir, "small.png", 64, 100)
	writePNG(t, dir, "done.png", 256, 10)
	writePNG(t, dir, "upper.PNG", 512, 512)

	n, err := chipper.AntiAlias(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	w, h := size(t, filepath.Join(dir, "big.png"))
	assert.Equal(t, [2]int{256, 128}, [2]int{w, h})
	w, h = size(t, filepath.Join(dir, "small.png"))
	assert.Equal(t, [2]int{256, 400}, [2]int{w, h})
	w, h = size(t, filepath.Join(dir, "done.png"))
	assert.Equal(t, [2]int{256, 10}, [2]int{w, h})
	w, h = size(t, filepath.Join(dir, "upper.PNG"))
	assert.Equal(t, [2]int{512, 512}, [2]int{w, h})

	n, err = chipper.AntiAlias(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
