package ports

// ManifestReader reads the version field of an npm package.json.
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// ReadVersion returns the recorded version and whether one was found.
	// An absent file is ("", false, nil): not installed, not an error. A
	// file that exists but cannot be parsed returns
	// domain.ErrManifestUnreadable.
	ReadVersion(path string) (version string, found bool, err error)
}
