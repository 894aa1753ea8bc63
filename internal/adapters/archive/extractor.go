// Package archive implements the Extractor port for gzipped tarballs, the
// only format the distribution server ships (.tar.gz and .tgz).
package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/nodeup/internal/core/domain"
	"go.trai.ch/nodeup/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// Extractor implements ports.Extractor for tar.gz archives.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks the archive at archivePath into destDir. Entries that
// would escape destDir are rejected.
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) error {
	f, err := os.Open(archivePath) //nolint:gosec // path is produced by the installer
	if err != nil {
		return errors.Join(domain.ErrExtractionFailed, zerr.With(zerr.Wrap(err, "opening archive failed"), "path", archivePath))
	}
	defer func() { _ = f.Close() }()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return errors.Join(domain.ErrExtractionFailed, zerr.With(zerr.Wrap(err, "archive is not gzip"), "path", archivePath))
	}
	defer func() { _ = gz.Close() }()

	if err := os.MkdirAll(destDir, dirPerm); err != nil {
		return errors.Join(domain.ErrExtractionFailed, zerr.With(zerr.Wrap(err, "creating destination failed"), "path", destDir))
	}

	tr := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Join(domain.ErrExtractionFailed, zerr.With(zerr.Wrap(err, "reading archive entry failed"), "path", archivePath))
		}

		target, err := entryPath(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, dirPerm); err != nil {
				return errors.Join(domain.ErrExtractionFailed, zerr.With(zerr.Wrap(err, "creating directory failed"), "path", target))
			}
		case tar.TypeReg:
			if err := writeEntry(tr, target, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			// npm tarballs of this era contain relative symlinks; recreate
			// them but never ones pointing outside the destination.
			if filepath.IsAbs(hdr.Linkname) || strings.Contains(hdr.Linkname, "..") {
				continue
			}
			_ = os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return errors.Join(domain.ErrExtractionFailed, zerr.With(zerr.Wrap(err, "creating symlink failed"), "path", target))
			}
		default:
			// Hard links, devices and the like do not appear in these
			// distributions; skip silently.
		}
	}
}

func entryPath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.Clean(name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		detail := zerr.With(zerr.New("archive entry escapes destination"), "entry", name)
		return "", errors.Join(domain.ErrExtractionFailed, detail)
	}
	return target, nil
}

func writeEntry(tr *tar.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return errors.Join(domain.ErrExtractionFailed, zerr.With(zerr.Wrap(err, "creating parent directory failed"), "path", target))
	}

	perm := mode.Perm()
	if perm == 0 {
		perm = filePerm
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm) //nolint:gosec // target is confined to destDir
	if err != nil {
		return errors.Join(domain.ErrExtractionFailed, zerr.With(zerr.Wrap(err, "creating file failed"), "path", target))
	}

	_, copyErr := io.Copy(out, tr) //nolint:gosec // archive size is bounded by the distribution server
	closeErr := out.Close()
	if copyErr != nil {
		return errors.Join(domain.ErrExtractionFailed, zerr.With(zerr.Wrap(copyErr, "writing file failed"), "path", target))
	}
	if closeErr != nil {
		return errors.Join(domain.ErrExtractionFailed, zerr.With(zerr.Wrap(closeErr, "closing file failed"), "path", target))
	}
	return nil
}

// Ensure Extractor satisfies the interface.
var _ ports.Extractor = (*Extractor)(nil)
