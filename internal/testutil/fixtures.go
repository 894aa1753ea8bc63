// Package testutil builds distribution fixtures for tests.
package testutil

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Entry is one file inside a generated tarball.
type Entry struct {
	Name string
	Body []byte
	Mode int64
	Dir  bool
}

// TarGzBytes builds an in-memory gzipped tarball from the given entries.
func TarGzBytes(t *testing.T, entries []Entry) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	for _, e := range entries {
		mode := e.Mode
		if mode == 0 {
			mode = 0o644
		}
		hdr := &tar.Header{
			Name: e.Name,
			Mode: mode,
			Size: int64(len(e.Body)),
		}
		if e.Dir {
			hdr.Typeflag = tar.TypeDir
			hdr.Size = 0
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if !e.Dir && len(e.Body) > 0 {
			_, err := tw.Write(e.Body)
			require.NoError(t, err)
		}
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

// WriteTarGz builds a gzipped tarball at path from the given entries.
func WriteTarGz(t *testing.T, path string, entries []Entry) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, TarGzBytes(t, entries), 0o600))
}

// NodeDistTarGz builds a runtime distribution tarball whose layout matches
// the server's: <distName>/bin/node plus a few bystander files.
func NodeDistTarGz(t *testing.T, distName string, binary []byte) []byte {
	t.Helper()
	return TarGzBytes(t, []Entry{
		{Name: distName + "/", Dir: true},
		{Name: distName + "/README.md", Body: []byte("node fixture")},
		{Name: distName + "/bin/", Dir: true},
		{Name: distName + "/bin/node", Body: binary, Mode: 0o755},
	})
}

// NPMDistTarGz builds a package-manager tarball whose layout matches the
// server's: everything under npm/, with npm/package.json carrying version.
func NPMDistTarGz(t *testing.T, version string) []byte {
	t.Helper()
	manifest := []byte(`{"name":"npm","version":"` + version + `"}`)
	return TarGzBytes(t, []Entry{
		{Name: "npm/", Dir: true},
		{Name: "npm/package.json", Body: manifest},
		{Name: "npm/README.md", Body: []byte("npm fixture")},
	})
}
