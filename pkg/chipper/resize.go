package chipper

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"k8s.io/klog/v2"
)

// AntiAliasWidth is the width input chips are brought to before inference.
var AntiAliasWidth = 256

// Resizer stretches every image to a fixed size.
type Resizer struct {
	Width           int
	Height          int
	OnDecodeFailure DecodePolicy
	Workers         int
}

// NewResizer returns a Resizer for the configured size.
func NewResizer(c *Config) *Resizer {
	return &Resizer{
		Width:           c.Width,
		Height:          c.Height,
		OnDecodeFailure: c.ResizeOnDecodeFailure,
		Workers:         c.Workers,
	}
}

func (r *Resizer) Kind() Kind { return KindResize }

// Resize returns img scaled to exactly Width x Height, ignoring aspect ratio.
func (r *Resizer) Resize(img image.Image) image.Image {
	return transform.Resize(img, r.Width, r.Height, transform.Linear)
}

// Run resizes every image in src into dst.
func (r *Resizer) Run(ctx context.Context, src, dst string) (Result, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return Result{Kind: KindResize, Source: src, Dest: dst}, fmt.Errorf("resize: %dx%d: %w", r.Width, r.Height, ErrInvalidSize)
	}

	klog.Infof("rescaling is started: %s -> %s (%dx%d)", src, dst, r.Width, r.Height)
	res, err := transformDir(ctx, KindResize, src, dst, r.Workers, r.OnDecodeFailure, r.Resize)
	if err != nil {
		return res, fmt.Errorf("resize: %w", err)
	}
	klog.Infof("rescaling is done: %d images, %d skipped", res.Processed, res.Skipped)
	return res, nil
}

// scaleToWidth returns the size img would have at width x, keeping its proportions.
func scaleToWidth(b image.Rectangle, x int) (int, int, error) {
	if b.Dx() == 0 {
		return 0, 0, fmt.Errorf("no X for %v", b)
	}

	scale := float64(x) / float64(b.Dx())
	y := int(float64(b.Dy()) * scale)
	if y < 1 {
		y = 1
	}
	return x, y, nil
}

// AntiAlias rewrites every PNG in dir in place at AntiAliasWidth pixels wide,
// using Lanczos resampling. Images that are already that wide are left alone.
func AntiAlias(ctx context.Context, dir string) (int, error) {
	names, err := Scan(dir)
	if err != nil {
		return 0, fmt.Errorf("scan: %w", err)
	}

	n := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if !strings.HasSuffix(name, convertFrom) {
			continue
		}

		path := filepath.Join(dir, name)
		img, err := decode(path)
		if err != nil {
			return n, err
		}

		if img.Bounds().Dx() == AntiAliasWidth {
			klog.V(1).Infof("%s is already %d wide", path, AntiAliasWidth)
			continue
		}

		x, y, err := scaleToWidth(img.Bounds(), AntiAliasWidth)
		if err != nil {
			return n, fmt.Errorf("%s: %w", path, err)
		}

		klog.V(1).Infof("anti-aliasing %s: %v -> %dx%d", path, img.Bounds(), x, y)
		if err := save(path, transform.Resize(img, x, y, transform.Lanczos), filepath.Ext(name)); err != nil {
			return n, err
		}
		n++
	}

	return n, nil
}
