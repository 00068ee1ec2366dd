package chipper

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Kind names a stage.
type Kind string

const (
	KindSharpen Kind = "sharpen"
	KindResize  Kind = "resize"
	KindConvert Kind = "convert"
)

// Stage transforms the images of one directory into another.
type Stage interface {
	Kind() Kind
	Run(ctx context.Context, src, dst string) (Result, error)
}

// Result is what a stage did.
type Result struct {
	Kind      Kind
	Source    string
	Dest      string
	Processed int
	Skipped   int
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %s -> %s (%d processed, %d skipped)", r.Kind, r.Source, r.Dest, r.Processed, r.Skipped)
}

// counter tracks per-file outcomes across workers.
type counter struct {
	mu  sync.Mutex
	res Result
}

func (c *counter) processed() {
	c.mu.Lock()
	c.res.Processed++
	c.mu.Unlock()
}

func (c *counter) skipped() {
	c.mu.Lock()
	c.res.Skipped++
	c.mu.Unlock()
}

// eachFile calls fn for every name, at most workers at a time.
// The first error stops new files from being started.
func eachFile(ctx context.Context, names []string, workers int, fn func(ctx context.Context, name string) error) error {
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, name := range names {
		name := name
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, name)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// transformDir streams every image in src through fn and writes the result
// to dst under the same file name.
func transformDir(ctx context.Context, kind Kind, src, dst string, workers int, policy DecodePolicy, fn func(image.Image) image.Image) (Result, error) {
	c := &counter{res: Result{Kind: kind, Source: src, Dest: dst}}

	names, err := Scan(src)
	if err != nil {
		return c.res, fmt.Errorf("scan: %w", err)
	}

	err = eachFile(ctx, names, workers, func(_ context.Context, name string) error {
		ext := filepath.Ext(name)
		img, err := decodeWithEncoder(filepath.Join(src, name), ext)
		if err != nil {
			if policy == Fail {
				return err
			}
			klog.V(1).Infof("%s: skipping %s: %v", kind, name, err)
			c.skipped()
			return nil
		}

		out := newImage(dst, name, fn(img))
		if err := save(out.Path, out.Img, out.Ext); err != nil {
			return err
		}

		klog.V(1).Infof("%s: wrote %s", kind, out.Path)
		c.processed()
		return nil
	})

	return c.res, err
}

// decodeWithEncoder decodes path, failing early when its extension could
// not be written back.
func decodeWithEncoder(path string, ext string) (image.Image, error) {
	if _, err := encoderFor(ext); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decode(path)
}
