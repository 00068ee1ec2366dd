package chipper_test

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tstromberg/chipper/pkg/chipper"
)

func TestModeModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "RealESRGAN_x4plus", chipper.ModeBase.Model())
	assert.Equal(t, "RealESRGAN_x4plus_anime_6B", chipper.ModeAnime.Model())
}

func TestCommandInvokerArgs(t *testing.T) {
	t.Parallel()

	ci := chipper.NewCommandInvoker(nil)
	got := ci.Args("/data/in", "/data/out", chipper.ModeAnime.Model())
	assert.Equal(t, []string{
		"python", "inference_realesrgan.py",
		"-n", "RealESRGAN_x4plus_anime_6B",
		"-i", "/data/in",
		"-o", "/data/out",
	}, got)

	// The template itself is untouched.
	assert.Equal(t, "{input}", ci.Command[5])
}

func TestCommandInvokerRun(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	d := dirs(t, "in", "out")
	writePNG(t, d["in"], "chip.png", 4, 4)

	var stderr bytes.Buffer
	ci := &chipper.CommandInvoker{
		Command: []string{"sh", "-c", "cp {input}/chip.png {output}/chip.png"},
		Stderr:  &stderr,
	}
	require.NoError(t, ci.Run(context.Background(), d["in"], d["out"], "RealESRGAN_x4plus"))
	assert.Equal(t, []string{"chip.png"}, names(t, d["out"]))
}

func TestCommandInvokerRunFailure(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var stderr bytes.Buffer
	ci := &chipper.CommandInvoker{
		Command: []string{"sh", "-c", "echo model {model} exploded >&2; exit 3"},
		Stderr:  &stderr,
	}
	err := ci.Run(context.Background(), "/in", "/out", "RealESRGAN_x4plus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model RealESRGAN_x4plus exploded")
	assert.Contains(t, stderr.String(), "exploded")
}

func TestCopyInvoker(t *testing.T) {
	t.Parallel()

	d := dirs(t, "in", "out")
	writePNG(t, d["in"], "a.png", 3, 3)
	writePNG(t, d["in"], "b.png", 3, 3)

	require.NoError(t, chipper.CopyInvoker{}.Run(context.Background(), d["in"], d["out"], "RealESRGAN_x4plus"))
	assert.ElementsMatch(t, []string{"a.png", "b.png"}, names(t, d["out"]))
}
