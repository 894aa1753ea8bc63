package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nodeup/internal/core/ports"
)

// NodeID is the unique identifier for the manifest reader adapter node.
const NodeID graft.ID = "adapter.manifest_reader"

func init() {
	graft.Register(graft.Node[ports.ManifestReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ManifestReader, error) {
			return NewManifestReader(), nil
		},
	})
}
