// chipper runs Real-ESRGAN over a directory of chips, then sharpens,
// resizes and converts the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/tstromberg/chipper/pkg/chipper"
)

var (
	mode         = flag.String("mode", "base", "model variant: base or anime")
	antiAlias    = flag.Bool("anti-alias", false, "shrink input PNGs to 256px wide before inference (in place)")
	inDir        = flag.String("in", "", "Location of input images")
	enhancedDir  = flag.String("enhanced", "", "Location of Real-ESRGAN enhanced images")
	sharpenedDir = flag.String("sharpened", "", "Location of sharpened images (optional)")
	resizedDir   = flag.String("resized", "", "Location of resized images (optional)")
	convertedDir = flag.String("converted", "", "Location of converted images (optional)")
	width        = flag.Int("width", chipper.DefaultWidth, "resize width")
	height       = flag.Int("height", chipper.DefaultHeight, "resize height")
	border       = flag.String("border", string(chipper.BorderExtend), "sharpening border policy: extend, wrap or zero")
	convertOnly  = flag.String("convert-only-source", string(chipper.SourceEnhanced), "where convert reads when it is the only stage: enhanced or resized")
	convertFail  = flag.String("convert-on-decode-failure", string(chipper.Fail), "what convert does with undecodable .png files: fail or skip")
	workers      = flag.Int("workers", 1, "files processed at once within a stage")
	model        = flag.String("model", "realesrgan", "inference backend: realesrgan, or none to copy input to enhanced")
	command      = flag.String("command", strings.Join(chipper.DefaultCommand, " "), "inference command template")
	dryRun       = flag.Bool("n", false, "dry-run mode, print the plan and exit")
	watchFlag    = flag.Bool("watch", false, "watch the input directory and re-run on changes")
)

func config() (*chipper.Config, error) {
	c := chipper.NewConfig()
	c.Mode = chipper.Mode(*mode)
	c.AntiAlias = *antiAlias
	c.InputDir = *inDir
	c.EnhancedDir = *enhancedDir
	c.SharpenedDir = *sharpenedDir
	c.ResizedDir = *resizedDir
	c.ConvertedDir = *convertedDir
	c.Width = *width
	c.Height = *height
	c.Workers = *workers

	var err error
	if c.Border, err = chipper.ParseBorderPolicy(*border); err != nil {
		return nil, err
	}
	if c.ConvertOnlySource, err = chipper.ParseConvertSource(*convertOnly); err != nil {
		return nil, err
	}
	if c.ConvertOnDecodeFailure, err = chipper.ParseDecodePolicy(*convertFail); err != nil {
		return nil, err
	}
	return c, nil
}

func invoker() (chipper.Invoker, error) {
	switch *model {
	case "realesrgan":
		return chipper.NewCommandInvoker(strings.Fields(*command)), nil
	case "none":
		return chipper.CopyInvoker{}, nil
	}
	return nil, fmt.Errorf("unknown model backend %q", *model)
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	c, err := config()
	if err != nil {
		klog.Exitf("config: %v", err)
	}

	if *dryRun {
		if err := plan(c); err != nil {
			klog.Exitf("plan failed: %v", err)
		}
		return
	}

	inv, err := invoker()
	if err != nil {
		klog.Exitf("invoker: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, c, inv); err != nil {
		klog.Exitf("run failed: %v", err)
	}

	if *watchFlag {
		if err := watch(ctx, c, inv); err != nil {
			klog.Exitf("watch failed: %v", err)
		}
	}
}

func run(ctx context.Context, c *chipper.Config, inv chipper.Invoker) error {
	r, err := chipper.Run(ctx, c, inv)
	if err != nil {
		return err
	}

	for _, res := range r.Results {
		klog.Infof("%s", res)
	}

	fmt.Println("Given paths:")
	for _, p := range c.Paths() {
		fmt.Printf("  %-10s %s\n", p[0], p[1])
	}
	return nil
}

// plan prints the stages that would run and how many images each source holds.
func plan(c *chipper.Config) error {
	if err := chipper.Validate(c); err != nil {
		return err
	}

	steps, err := chipper.Plan(c)
	if err != nil {
		return err
	}

	b, err := chipper.Load(c.InputDir)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	fmt.Printf("inference (%s): %s -> %s (%d images, %d skipped)\n", c.Mode.Model(), c.InputDir, c.EnhancedDir, b.Len(), len(b.Skipped))

	if len(steps) == 0 {
		fmt.Println("no stages: enhanced images are the final output")
	}
	for _, s := range steps {
		fmt.Println(s)
	}
	return nil
}

// watch re-runs the pipeline whenever the input directory changes.
func watch(ctx context.Context, c *chipper.Config, inv chipper.Invoker) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(c.InputDir); err != nil {
		return fmt.Errorf("watch %s: %w", c.InputDir, err)
	}
	klog.Infof("watching %s ...", c.InputDir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			klog.V(1).Infof("event: %s", event)
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				if err := run(ctx, c, inv); err != nil {
					klog.Errorf("run failed: %v", err)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}
