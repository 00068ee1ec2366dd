package chipper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"
)

// Invoker runs the super-resolution model over a whole directory.
type Invoker interface {
	Run(ctx context.Context, inputDir, outputDir, model string) error
}

// DefaultCommand runs the Real-ESRGAN inference script.
var DefaultCommand = []string{"python", "inference_realesrgan.py", "-n", "{model}", "-i", "{input}", "-o", "{output}"}

// CommandInvoker runs the model as a subprocess. The {model}, {input} and
// {output} placeholders in Command are replaced before running.
type CommandInvoker struct {
	Command []string
	Stderr  io.Writer
}

// NewCommandInvoker returns an invoker for cmd, or DefaultCommand if cmd is empty.
func NewCommandInvoker(cmd []string) *CommandInvoker {
	if len(cmd) == 0 {
		cmd = DefaultCommand
	}
	return &CommandInvoker{Command: cmd, Stderr: os.Stderr}
}

// Args returns the command line for one run.
func (ci *CommandInvoker) Args(inputDir, outputDir, model string) []string {
	r := strings.NewReplacer("{model}", model, "{input}", inputDir, "{output}", outputDir)
	args := make([]string, len(ci.Command))
	for i, a := range ci.Command {
		args[i] = r.Replace(a)
	}
	return args
}

func (ci *CommandInvoker) Run(ctx context.Context, inputDir, outputDir, model string) error {
	args := ci.Args(inputDir, outputDir, model)
	if len(args) == 0 {
		return fmt.Errorf("empty inference command")
	}

	klog.Infof("running: %s", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderr bytes.Buffer
	if ci.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, ci.Stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", args[0], err, lastLine(msg))
		}
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// CopyInvoker stands in for the model by copying the input directory as-is.
type CopyInvoker struct{}

func (CopyInvoker) Run(_ context.Context, inputDir, outputDir, model string) error {
	klog.Infof("skipping %s: copying %s -> %s", model, inputDir, outputDir)
	if err := copy.Copy(inputDir, outputDir); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}
