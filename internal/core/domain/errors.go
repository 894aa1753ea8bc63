package domain

import "go.trai.ch/zerr"

var (
	// ErrDownloadFailed is returned when a distribution cannot be fetched or
	// written to disk. The attempted URL is attached as metadata.
	ErrDownloadFailed = zerr.New("download failed")

	// ErrExtractionFailed is returned when a fetched archive cannot be read
	// or unpacked.
	ErrExtractionFailed = zerr.New("archive extraction failed")

	// ErrBinaryNotFound is returned when an extracted archive does not
	// contain the runtime binary at the expected path.
	ErrBinaryNotFound = zerr.New("node binary not found in extracted archive")

	// ErrMalformedURL is returned when the configured mirror and version
	// produce an invalid download URL.
	ErrMalformedURL = zerr.New("malformed download URL")

	// ErrManifestUnreadable is returned when the npm package.json exists but
	// cannot be parsed.
	ErrManifestUnreadable = zerr.New("npm manifest unreadable")

	// ErrInvalidRequest is returned when an install request is missing a
	// required field.
	ErrInvalidRequest = zerr.New("invalid install request")
)
