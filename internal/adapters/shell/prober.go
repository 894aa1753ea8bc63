// Package shell implements the RuntimeProber port using os/exec.
package shell

import (
	"context"
	"os/exec"
	"strings"

	"go.trai.ch/nodeup/internal/core/ports"
	"go.trai.ch/zerr"
)

// Prober asks a runtime binary for its version by executing it.
type Prober struct{}

// NewProber creates a new Prober.
func NewProber() *Prober {
	return &Prober{}
}

// InstalledVersion runs `<binaryPath> --version` and returns the trimmed
// standard output. The binary reports something like "v0.10.26" followed by
// a newline; surrounding whitespace is stripped, nothing else is parsed.
func (p *Prober) InstalledVersion(ctx context.Context, binaryPath string) (string, error) {
	cmd := exec.CommandContext(ctx, binaryPath, "--version") //nolint:gosec // path is the fixed install location

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			probeErr := zerr.With(zerr.Wrap(exitErr, "version probe failed"), "binary", binaryPath)
			return "", zerr.With(probeErr, "stderr", stderr)
		}
		return "", zerr.With(zerr.Wrap(err, "version probe failed"), "binary", binaryPath)
	}

	return strings.TrimSpace(string(output)), nil
}

// Ensure Prober satisfies the interface.
var _ ports.RuntimeProber = (*Prober)(nil)
