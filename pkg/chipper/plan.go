package chipper

import "fmt"

// Step is one stage of a plan and the directories it reads and writes.
type Step struct {
	Kind   Kind
	Source string
	Dest   string
}

func (s Step) String() string {
	return fmt.Sprintf("%s: %s -> %s", s.Kind, s.Source, s.Dest)
}

// dirRef names a directory of a Config without resolving it.
type dirRef int

const (
	fromEnhanced dirRef = iota
	fromSharpened
	fromResized
	fromConvertOnly
)

type planRow struct {
	kinds   []Kind
	sources []dirRef
}

// planKey is (hasSharp, hasResize, hasConvert).
type planKey [3]bool

// planTable lists the stages for every combination of optional directories.
// Mode is deliberately absent.
var planTable = map[planKey]planRow{
	{false, false, false}: {},
	{true, false, false}:  {kinds: []Kind{KindSharpen}, sources: []dirRef{fromEnhanced}},
	{false, true, false}:  {kinds: []Kind{KindResize}, sources: []dirRef{fromEnhanced}},
	{false, false, true}:  {kinds: []Kind{KindConvert}, sources: []dirRef{fromConvertOnly}},
	{true, true, false}:   {kinds: []Kind{KindSharpen, KindResize}, sources: []dirRef{fromEnhanced, fromSharpened}},
	{false, true, true}:   {kinds: []Kind{KindResize, KindConvert}, sources: []dirRef{fromEnhanced, fromResized}},
	{true, false, true}:   {kinds: []Kind{KindSharpen, KindConvert}, sources: []dirRef{fromEnhanced, fromSharpened}},
	{true, true, true}:    {kinds: []Kind{KindSharpen, KindResize, KindConvert}, sources: []dirRef{fromEnhanced, fromSharpened, fromResized}},
}

func (c *Config) resolve(r dirRef) (string, string) {
	switch r {
	case fromSharpened:
		return "sharpened", c.SharpenedDir
	case fromResized:
		return "resized", c.ResizedDir
	case fromConvertOnly:
		if c.ConvertOnlySource == SourceResized {
			return "resized", c.ResizedDir
		}
		return "enhanced", c.EnhancedDir
	default:
		return "enhanced", c.EnhancedDir
	}
}

func (c *Config) dest(k Kind) string {
	switch k {
	case KindSharpen:
		return c.SharpenedDir
	case KindResize:
		return c.ResizedDir
	default:
		return c.ConvertedDir
	}
}

// Plan returns the stages to run for c, in order. Each stage writes to its
// own configured directory and reads from the previous stage's output.
//
// When convert is the only stage, it reads from the enhanced directory
// unless ConvertOnlySource asks for the resized directory. That directory
// is never populated in this case, so Plan rejects it unless it has been
// configured.
func Plan(c *Config) ([]Step, error) {
	key := planKey{c.SharpenedDir != "", c.ResizedDir != "", c.ConvertedDir != ""}
	row := planTable[key]

	steps := make([]Step, 0, len(row.kinds))
	for i, k := range row.kinds {
		name, src := c.resolve(row.sources[i])
		if src == "" {
			return nil, &ConfigError{Role: name, Err: fmt.Errorf("%w: needed as %s source", ErrEmptyPath, k)}
		}
		steps = append(steps, Step{Kind: k, Source: src, Dest: c.dest(k)})
	}

	return steps, nil
}
