package ports

import "context"

// RuntimeProber asks an installed runtime binary which version it is.
//
//go:generate mockgen -source=prober.go -destination=mocks/mock_prober.go -package=mocks
type RuntimeProber interface {
	// InstalledVersion invokes the binary at binaryPath with --version and
	// returns its trimmed standard output. The caller decides what a probe
	// failure means; this interface only reports it.
	InstalledVersion(ctx context.Context, binaryPath string) (string, error)
}
