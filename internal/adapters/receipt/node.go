package receipt

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/nodeup/internal/core/ports"
)

// FileName is the receipt file kept under the target directory.
const FileName = "nodeup.receipts.json"

// NodeID is the unique identifier for the receipt store opener node.
const NodeID graft.ID = "adapter.receipt_store"

func init() {
	graft.Register(graft.Node[ports.ReceiptStoreOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ReceiptStoreOpener, error) {
			return func(targetDir string) (ports.ReceiptStore, error) {
				return NewStore(filepath.Join(targetDir, FileName))
			}, nil
		},
	})
}
