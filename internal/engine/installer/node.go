package installer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/nodeup/internal/adapters/archive"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nodeup/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nodeup/internal/adapters/httpfetch"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nodeup/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nodeup/internal/adapters/receipt"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nodeup/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nodeup/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/nodeup/internal/core/ports"
)

// NodeID is the unique identifier for the installer Graft node.
const NodeID graft.ID = "engine.installer"

func init() {
	graft.Register(graft.Node[*Installer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			httpfetch.NodeID,
			archive.NodeID,
			shell.NodeID,
			fs.NodeID,
			receipt.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Installer, error) {
			downloader, err := graft.Dep[ports.Downloader](ctx)
			if err != nil {
				return nil, err
			}

			extractor, err := graft.Dep[ports.Extractor](ctx)
			if err != nil {
				return nil, err
			}

			prober, err := graft.Dep[ports.RuntimeProber](ctx)
			if err != nil {
				return nil, err
			}

			manifests, err := graft.Dep[ports.ManifestReader](ctx)
			if err != nil {
				return nil, err
			}

			openReceipts, err := graft.Dep[ports.ReceiptStoreOpener](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(downloader, extractor, prober, manifests, openReceipts, log, telemetry), nil
		},
	})
}
