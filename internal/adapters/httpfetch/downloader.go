// Package httpfetch implements the Downloader port over plain HTTP.
package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/nodeup/internal/core/domain"
	"go.trai.ch/nodeup/internal/core/ports"
	"go.trai.ch/zerr"
)

const dirPerm = 0o750

// Downloader implements ports.Downloader using net/http.
type Downloader struct {
	client *http.Client
	logger ports.Logger
}

// NewDownloader creates a Downloader. A nil client falls back to
// http.DefaultClient.
func NewDownloader(client *http.Client, logger ports.Logger) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client, logger: logger}
}

// Fetch streams rawURL into dest, overwriting an existing file. The parent
// directory is created first. The whole body is transferred before Fetch
// returns; there is no retry and no resume, and a transfer that fails
// midway removes the partially written file.
func (d *Downloader) Fetch(ctx context.Context, rawURL, dest string) (string, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return "", errors.Join(domain.ErrMalformedURL, zerr.With(zerr.Wrap(err, "invalid download URL"), "url", rawURL))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", errors.Join(domain.ErrMalformedURL, zerr.With(zerr.Wrap(err, "building request failed"), "url", rawURL))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", errors.Join(domain.ErrDownloadFailed, zerr.With(zerr.Wrap(err, "transfer failed"), "url", rawURL))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail := zerr.With(zerr.New("unexpected response status"), "url", rawURL)
		return "", errors.Join(domain.ErrDownloadFailed, zerr.With(detail, "status", resp.Status))
	}

	if err := os.MkdirAll(filepath.Dir(dest), dirPerm); err != nil {
		return "", errors.Join(domain.ErrDownloadFailed, zerr.With(zerr.Wrap(err, "creating destination directory failed"), "path", dest))
	}

	out, err := os.Create(dest) //nolint:gosec // dest is derived from the configured target dir
	if err != nil {
		return "", errors.Join(domain.ErrDownloadFailed, zerr.With(zerr.Wrap(err, "creating destination file failed"), "path", dest))
	}

	hasher := xxhash.New()
	written, err := io.Copy(out, io.TeeReader(resp.Body, hasher))
	closeErr := out.Close()
	if err != nil {
		_ = os.Remove(dest)
		detail := zerr.With(zerr.Wrap(err, "transfer interrupted"), "url", rawURL)
		return "", errors.Join(domain.ErrDownloadFailed, zerr.With(detail, "path", dest))
	}
	if closeErr != nil {
		_ = os.Remove(dest)
		return "", errors.Join(domain.ErrDownloadFailed, zerr.With(zerr.Wrap(closeErr, "flushing download failed"), "path", dest))
	}

	if v, ok := ports.VertexFromContext(ctx); ok {
		v.Log(domain.LogLevelDebug, fmt.Sprintf("fetched %d bytes from %s", written, rawURL))
	}
	if d.logger != nil {
		d.logger.Info(fmt.Sprintf("downloaded %s (%d bytes)", rawURL, written))
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// Ensure Downloader satisfies the interface.
var _ ports.Downloader = (*Downloader)(nil)
