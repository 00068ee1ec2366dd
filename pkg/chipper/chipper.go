// Package chipper sharpens, resizes and converts directories of image chips
// around an external super-resolution model.
package chipper

import "fmt"

// Mode selects the super-resolution model variant.
type Mode string

const (
	ModeBase  Mode = "base"
	ModeAnime Mode = "anime"
)

// Model returns the Real-ESRGAN model name for a mode.
func (m Mode) Model() string {
	if m == ModeAnime {
		return "RealESRGAN_x4plus_anime_6B"
	}
	return "RealESRGAN_x4plus"
}

// DecodePolicy controls what a stage does with a file it cannot decode.
type DecodePolicy string

const (
	Skip DecodePolicy = "skip"
	Fail DecodePolicy = "fail"
)

// ParseDecodePolicy parses a command-line value.
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	switch p := DecodePolicy(s); p {
	case Skip, Fail:
		return p, nil
	}
	return "", fmt.Errorf("unknown decode policy %q (want skip or fail)", s)
}

// ConvertSource picks where Convert reads from when it is the only stage.
type ConvertSource string

const (
	// SourceEnhanced reads the model output directly.
	SourceEnhanced ConvertSource = "enhanced"
	// SourceResized reads the resized directory, as the original wiring did.
	SourceResized ConvertSource = "resized"
)

// ParseConvertSource parses a command-line value.
func ParseConvertSource(s string) (ConvertSource, error) {
	switch c := ConvertSource(s); c {
	case SourceEnhanced, SourceResized:
		return c, nil
	}
	return "", fmt.Errorf("unknown convert source %q (want enhanced or resized)", s)
}

var (
	DefaultWidth  = 512
	DefaultHeight = 512
)

// Config holds configuration for a pipeline run.
type Config struct {
	InputDir     string
	EnhancedDir  string
	SharpenedDir string
	ResizedDir   string
	ConvertedDir string

	Width  int
	Height int

	Mode      Mode
	AntiAlias bool

	Border                 BorderPolicy
	SharpenOnDecodeFailure DecodePolicy
	ResizeOnDecodeFailure  DecodePolicy
	ConvertOnDecodeFailure DecodePolicy
	ConvertOnlySource      ConvertSource

	Workers int
}

// NewConfig returns a Config with defaults filled in.
func NewConfig() *Config {
	return &Config{
		Width:                  DefaultWidth,
		Height:                 DefaultHeight,
		Mode:                   ModeBase,
		Border:                 BorderExtend,
		SharpenOnDecodeFailure: Skip,
		ResizeOnDecodeFailure:  Skip,
		ConvertOnDecodeFailure: Fail,
		ConvertOnlySource:      SourceEnhanced,
		Workers:                1,
	}
}

// role is a named directory in a Config.
type role struct {
	name     string
	path     string
	optional bool
}

func (c *Config) roles() []role {
	return []role{
		{name: "input", path: c.InputDir},
		{name: "enhanced", path: c.EnhancedDir},
		{name: "sharpened", path: c.SharpenedDir, optional: true},
		{name: "resized", path: c.ResizedDir, optional: true},
		{name: "converted", path: c.ConvertedDir, optional: true},
	}
}
