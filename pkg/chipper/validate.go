package chipper

import (
	"errors"
	"fmt"
	"os"
)

var (
	ErrInvalidMode    = errors.New("mode must be base or anime")
	ErrEmptyPath      = errors.New("path cannot be empty")
	ErrNotExist       = errors.New("path does not exist")
	ErrNotDir         = errors.New("path is not a directory")
	ErrDuplicatePath  = errors.New("input and output paths must be unique")
	ErrInvalidSize    = errors.New("resize width and height must be positive")
	ErrInvalidWorkers = errors.New("workers must be at least 1")
)

// ConfigError is a configuration problem tied to one directory role.
type ConfigError struct {
	Role string
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Role, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Role, e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Validate checks a Config before anything touches the filesystem.
// It stops at the first problem found.
func Validate(c *Config) error {
	if c.Mode != ModeBase && c.Mode != ModeAnime {
		return &ConfigError{Role: "mode", Path: string(c.Mode), Err: ErrInvalidMode}
	}

	seen := map[string]string{}
	for _, r := range c.roles() {
		if r.path == "" {
			if r.optional {
				continue
			}
			return &ConfigError{Role: r.name, Err: ErrEmptyPath}
		}

		st, err := os.Stat(r.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return &ConfigError{Role: r.name, Path: r.path, Err: ErrNotExist}
			}
			return &ConfigError{Role: r.name, Path: r.path, Err: err}
		}
		if !st.IsDir() {
			return &ConfigError{Role: r.name, Path: r.path, Err: ErrNotDir}
		}

		if other, ok := seen[r.path]; ok {
			return &ConfigError{Role: r.name, Path: r.path, Err: fmt.Errorf("%w: also used for %s", ErrDuplicatePath, other)}
		}
		seen[r.path] = r.name
	}

	if c.ResizedDir != "" && (c.Width <= 0 || c.Height <= 0) {
		return &ConfigError{Role: "size", Err: fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)}
	}

	if c.Workers < 1 {
		return &ConfigError{Role: "workers", Err: ErrInvalidWorkers}
	}

	return nil
}
