package domain

// Manifest is the slice of an npm package.json this tool cares about. The
// version field is optional: a manifest without one is treated as an
// unknown installation, not an error.
type Manifest struct {
	Version string `json:"version"`
}
