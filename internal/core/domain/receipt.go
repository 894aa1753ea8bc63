package domain

import "time"

// Component names the two things this tool provisions.
type Component string

const (
	// ComponentNode is the runtime binary.
	ComponentNode Component = "node"
	// ComponentNPM is the package manager.
	ComponentNPM Component = "npm"
)

// InstallReceipt records what one acquisition actually fetched. Receipts are
// bookkeeping for later inspection; they are never consulted by the version
// checks, which always re-read the filesystem.
type InstallReceipt struct {
	Component     Component `json:"component,omitzero"`
	Version       string    `json:"version,omitzero"`
	SourceURL     string    `json:"source_url,omitzero"`
	ArchiveDigest string    `json:"archive_digest,omitzero"`
	InstalledAt   time.Time `json:"installed_at,omitzero"`
}
