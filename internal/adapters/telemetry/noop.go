// Package telemetry provides Telemetry implementations.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/nodeup/internal/core/domain"
	"go.trai.ch/nodeup/internal/core/ports"
)

// NoOp is a no-op implementation of ports.Telemetry for quiet runs and
// tests.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a vertex that records nothing.
func (n *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := &noopVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (n *NoOp) Close() error { return nil }

type noopVertex struct{}

func (v *noopVertex) Stdout() io.Writer { return io.Discard }

func (v *noopVertex) Log(_ domain.LogLevel, _ string) {}

func (v *noopVertex) Complete(_ error) {}

func (v *noopVertex) Cached() {}

// Ensure NoOp satisfies the interface.
var _ ports.Telemetry = (*NoOp)(nil)
