package chipper

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"k8s.io/klog/v2"
)

const (
	// convertFrom is matched case-sensitively against file names.
	convertFrom = ".png"
	convertTo   = ".tif"
)

// Converter re-encodes PNG chips as TIFF.
type Converter struct {
	OnDecodeFailure DecodePolicy
	Workers         int
}

// NewConverter returns a Converter for c.
func NewConverter(c *Config) *Converter {
	return &Converter{
		OnDecodeFailure: c.ConvertOnDecodeFailure,
		Workers:         c.Workers,
	}
}

func (cv *Converter) Kind() Kind { return KindConvert }

// ConvertedName returns the file name a chip is written under.
func ConvertedName(name string) string {
	return strings.TrimSuffix(name, convertFrom) + convertTo
}

// Run converts every .png file in src into a .tif file in dst. Other files
// are ignored, even when they are valid images.
func (cv *Converter) Run(ctx context.Context, src, dst string) (Result, error) {
	klog.Infof("converting is started: %s -> %s", src, dst)
	c := &counter{res: Result{Kind: KindConvert, Source: src, Dest: dst}}

	all, err := Scan(src)
	if err != nil {
		return c.res, fmt.Errorf("convert: scan: %w", err)
	}

	names := []string{}
	for _, name := range all {
		if !strings.HasSuffix(name, convertFrom) {
			klog.V(1).Infof("convert: ignoring %s", name)
			c.skipped()
			continue
		}
		names = append(names, name)
	}

	err = eachFile(ctx, names, cv.Workers, func(_ context.Context, name string) error {
		img, err := decode(filepath.Join(src, name))
		if err != nil {
			if cv.OnDecodeFailure == Skip {
				klog.Warningf("convert: skipping %s: %v", name, err)
				c.skipped()
				return nil
			}
			return err
		}

		out := filepath.Join(dst, ConvertedName(name))
		if err := save(out, img, convertTo); err != nil {
			return err
		}
		klog.V(1).Infof("convert: wrote %s", out)
		c.processed()
		return nil
	})
	if err != nil {
		return c.res, fmt.Errorf("convert: %w", err)
	}

	klog.Infof("converting is done: %d images, %d ignored", c.res.Processed, c.res.Skipped)
	return c.res, nil
}
