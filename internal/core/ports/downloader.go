// Package ports defines the core interfaces for the application.
package ports

import "context"

// Downloader streams the content of a URL into a destination file.
//
//go:generate mockgen -source=downloader.go -destination=mocks/mock_downloader.go -package=mocks
type Downloader interface {
	// Fetch downloads url into dest, creating any missing parent
	// directories and overwriting an existing file. It returns an xxhash
	// digest of the transferred bytes for bookkeeping.
	//
	// There is no retry, no resume and no verification of the bytes; a
	// transfer that fails midway must not leave a partial file at dest.
	Fetch(ctx context.Context, url, dest string) (digest string, err error)
}
