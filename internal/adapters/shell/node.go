package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nodeup/internal/core/ports"
)

// NodeID is the unique identifier for the prober adapter node.
const NodeID graft.ID = "adapter.prober"

func init() {
	graft.Register(graft.Node[ports.RuntimeProber]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.RuntimeProber, error) {
			return NewProber(), nil
		},
	})
}
