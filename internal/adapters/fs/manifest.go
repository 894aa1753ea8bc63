// Package fs implements filesystem-backed ports.
package fs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/nodeup/internal/core/domain"
	"go.trai.ch/nodeup/internal/core/ports"
	"go.trai.ch/zerr"
)

// ManifestReader reads the version field of a package.json on disk.
type ManifestReader struct{}

// NewManifestReader creates a new ManifestReader.
func NewManifestReader() *ManifestReader {
	return &ManifestReader{}
}

// ReadVersion reads the manifest at path. An absent file means "not
// installed" and is not an error; a file that exists but cannot be parsed
// is reported as ErrManifestUnreadable; a parseable manifest without a
// version field reports found=false.
func (r *ManifestReader) ReadVersion(path string) (string, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the fixed manifest location
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, errors.Join(domain.ErrManifestUnreadable, zerr.With(zerr.Wrap(err, "reading manifest failed"), "path", path))
	}

	var manifest domain.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", false, errors.Join(domain.ErrManifestUnreadable, zerr.With(zerr.Wrap(err, "parsing manifest failed"), "path", path))
	}

	if manifest.Version == "" {
		return "", false, nil
	}
	return manifest.Version, true, nil
}

// Ensure ManifestReader satisfies the interface.
var _ ports.ManifestReader = (*ManifestReader)(nil)
