package ports

import "go.trai.ch/nodeup/internal/core/domain"

// ReceiptStore persists install receipts.
//
//go:generate go run go.uber.org/mock/mockgen -source=receipts.go -destination=mocks/mock_receipts.go -package=mocks
type ReceiptStore interface {
	// Get retrieves the receipt for a component.
	// Returns nil, nil if not found.
	Get(component domain.Component) (*domain.InstallReceipt, error)

	// Put stores the receipt.
	Put(receipt domain.InstallReceipt) error
}

// ReceiptStoreOpener opens the receipt store rooted at a target directory.
// The installer only learns the target directory from the request, so the
// store cannot be constructed ahead of time.
type ReceiptStoreOpener func(targetDir string) (ReceiptStore, error)
