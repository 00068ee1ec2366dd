package chipper

import (
	"context"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/transform"
	"k8s.io/klog/v2"
)

// Kernel is a 3x3 convolution kernel, indexed [row][column].
type Kernel [3][3]float64

// UnsharpMask returns the kernel used to sharpen chips.
func UnsharpMask() Kernel {
	return Kernel{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	}
}

func (k Kernel) matrix() *convolution.Kernel {
	m := convolution.NewKernel(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			m.Matrix[y*m.Width+x] = k[y][x]
		}
	}
	return m
}

// BorderPolicy decides which pixels the kernel sees past the image edge.
type BorderPolicy string

const (
	// BorderExtend repeats the nearest edge pixel.
	BorderExtend BorderPolicy = "extend"
	// BorderWrap reads from the opposite edge.
	BorderWrap BorderPolicy = "wrap"
	// BorderZero treats outside pixels as transparent black.
	BorderZero BorderPolicy = "zero"
)

// ParseBorderPolicy parses a command-line value.
func ParseBorderPolicy(s string) (BorderPolicy, error) {
	switch b := BorderPolicy(s); b {
	case BorderExtend, BorderWrap, BorderZero:
		return b, nil
	}
	return "", fmt.Errorf("unknown border policy %q (want extend, wrap or zero)", s)
}

// Sharpener convolves every image with a fixed kernel.
type Sharpener struct {
	Kernel          Kernel
	Border          BorderPolicy
	OnDecodeFailure DecodePolicy
	Workers         int
}

// NewSharpener returns a Sharpener using the unsharp mask.
func NewSharpener(c *Config) *Sharpener {
	return &Sharpener{
		Kernel:          UnsharpMask(),
		Border:          c.Border,
		OnDecodeFailure: c.SharpenOnDecodeFailure,
		Workers:         c.Workers,
	}
}

func (s *Sharpener) Kind() Kind { return KindSharpen }

// Sharpen returns img convolved with the kernel. Alpha is left alone and the
// dimensions never change.
func (s *Sharpener) Sharpen(img image.Image) image.Image {
	k := s.Kernel.matrix()

	switch s.Border {
	case BorderWrap:
		return convolution.Convolve(img, k, &convolution.Options{Wrap: true, KeepAlpha: true})
	case BorderZero:
		b := img.Bounds()
		padded := clone.Pad(img, 1, 1, clone.NoFill)
		out := convolution.Convolve(padded, k, &convolution.Options{KeepAlpha: true})
		return transform.Crop(out, image.Rect(1, 1, b.Dx()+1, b.Dy()+1))
	default:
		// bild extends edge pixels when Wrap is off.
		return convolution.Convolve(img, k, &convolution.Options{KeepAlpha: true})
	}
}

// Run sharpens every image in src into dst.
func (s *Sharpener) Run(ctx context.Context, src, dst string) (Result, error) {
	klog.Infof("sharpening is started: %s -> %s", src, dst)
	r, err := transformDir(ctx, KindSharpen, src, dst, s.Workers, s.OnDecodeFailure, s.Sharpen)
	if err != nil {
		return r, fmt.Errorf("sharpen: %w", err)
	}
	klog.Infof("sharpening is done: %d images, %d skipped", r.Processed, r.Skipped)
	return r, nil
}
