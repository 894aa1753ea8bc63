package ports

import "context"

// Extractor unpacks a downloaded archive into a directory.
//
//go:generate mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type Extractor interface {
	// Extract unpacks the archive at archivePath into destDir, creating
	// destDir if needed. The archive format is inferred from the file.
	Extract(ctx context.Context, archivePath, destDir string) error
}
