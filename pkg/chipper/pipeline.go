package chipper

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"
)

// Report describes a finished run.
type Report struct {
	AntiAliased int
	Steps       []Step
	Results     []Result
}

// Processed returns the number of images written across all stages.
func (r *Report) Processed() int {
	n := 0
	for _, res := range r.Results {
		n += res.Processed
	}
	return n
}

// Skipped returns the number of files skipped across all stages.
func (r *Report) Skipped() int {
	n := 0
	for _, res := range r.Results {
		n += res.Skipped
	}
	return n
}

// NewStage returns the stage implementing k for c.
func NewStage(k Kind, c *Config) (Stage, error) {
	switch k {
	case KindSharpen:
		return NewSharpener(c), nil
	case KindResize:
		return NewResizer(c), nil
	case KindConvert:
		return NewConverter(c), nil
	}
	return nil, fmt.Errorf("unknown stage %q", k)
}

// Run validates c, runs the model over the input directory, then runs the
// planned stages in order. The first failure stops the run; directories
// already written are left as they are.
func Run(ctx context.Context, c *Config, inv Invoker) (*Report, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}

	steps, err := Plan(c)
	if err != nil {
		return nil, err
	}

	r := &Report{Steps: steps}
	klog.Infof("initializing: %d stages planned", len(steps))

	if c.AntiAlias {
		n, err := AntiAlias(ctx, c.InputDir)
		if err != nil {
			return r, fmt.Errorf("anti-alias: %w", err)
		}
		r.AntiAliased = n
	}

	if err := inv.Run(ctx, c.InputDir, c.EnhancedDir, c.Mode.Model()); err != nil {
		return r, fmt.Errorf("inference: %w", err)
	}

	for _, s := range steps {
		st, err := NewStage(s.Kind, c)
		if err != nil {
			return r, err
		}

		res, err := st.Run(ctx, s.Source, s.Dest)
		if err != nil {
			return r, err
		}
		r.Results = append(r.Results, res)
	}

	return r, nil
}

// Paths returns each configured directory role and its path, in role order.
func (c *Config) Paths() [][2]string {
	ps := [][2]string{}
	for _, r := range c.roles() {
		if r.path != "" {
			ps = append(ps, [2]string{r.name, r.path})
		}
	}
	return ps
}
