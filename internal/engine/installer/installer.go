// Package installer implements the toolchain provisioning engine.
package installer

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/nodeup/internal/core/domain"
	"go.trai.ch/nodeup/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	dirPerm = 0o750
	binPerm = 0o755

	// npmArchiveName is the temporary archive written under the target
	// directory while the package manager is being installed.
	npmArchiveName = "npm.tar.gz"

	// nodeArchiveName is the runtime archive written into the scratch
	// directory on the non-Windows path.
	nodeArchiveName = "node.tar.gz"
)

// Installer reconciles a target directory against a requested toolchain
// version and acquires whatever is missing. The filesystem is the only
// state: every check re-reads the target directory, nothing is cached in
// memory between runs.
type Installer struct {
	downloader   ports.Downloader
	extractor    ports.Extractor
	prober       ports.RuntimeProber
	manifests    ports.ManifestReader
	openReceipts ports.ReceiptStoreOpener
	logger       ports.Logger
	telemetry    ports.Telemetry

	group singleflight.Group
}

// New creates an Installer from its collaborating ports.
func New(
	downloader ports.Downloader,
	extractor ports.Extractor,
	prober ports.RuntimeProber,
	manifests ports.ManifestReader,
	openReceipts ports.ReceiptStoreOpener,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Installer {
	return &Installer{
		downloader:   downloader,
		extractor:    extractor,
		prober:       prober,
		manifests:    manifests,
		openReceipts: openReceipts,
		logger:       logger,
		telemetry:    telemetry,
	}
}

// Install ensures the requested runtime and package manager are present
// under the request's target directory, downloading and unpacking whatever
// is missing. Concurrent calls against the same target directory are
// collapsed into a single run; they share its result.
func (i *Installer) Install(ctx context.Context, req domain.InstallRequest) error {
	_, err, _ := i.group.Do(req.TargetDir, func() (any, error) {
		return nil, i.install(ctx, req)
	})
	return err
}

func (i *Installer) install(ctx context.Context, req domain.InstallRequest) error {
	receipts, err := i.openReceipts(req.TargetDir)
	if err != nil {
		return zerr.Wrap(err, "opening receipt store")
	}

	if err := i.ensureNPM(ctx, req, receipts); err != nil {
		return err
	}
	return i.ensureNode(ctx, req, receipts)
}

func (i *Installer) ensureNPM(ctx context.Context, req domain.InstallRequest, receipts ports.ReceiptStore) (err error) {
	ctx, vtx := i.telemetry.Record(ctx, "npm "+req.NPMVersion)
	if i.npmInstalled(req) {
		vtx.Cached()
		vtx.Complete(nil)
		return nil
	}
	defer func() { vtx.Complete(err) }()

	ctx = ports.ContextWithVertex(ctx, vtx)
	return i.installNPM(ctx, req, receipts)
}

func (i *Installer) ensureNode(ctx context.Context, req domain.InstallRequest, receipts ports.ReceiptStore) (err error) {
	ctx, vtx := i.telemetry.Record(ctx, "node "+req.NodeVersion)
	if i.nodeInstalled(ctx, req) {
		vtx.Cached()
		vtx.Complete(nil)
		return nil
	}
	defer func() { vtx.Complete(err) }()

	ctx = ports.ContextWithVertex(ctx, vtx)
	if req.OS == domain.Windows {
		return i.installNodeWindows(ctx, req, receipts)
	}
	return i.installNodeDefault(ctx, req, receipts)
}

// npmInstalled reports whether the manifest under the target directory
// records exactly the requested version. An absent or unreadable manifest
// means "not installed"; a broken prior install is reinstalled rather
// than failing the run.
func (i *Installer) npmInstalled(req domain.InstallRequest) bool {
	version, found, err := i.manifests.ReadVersion(req.NPMManifestPath())
	if err != nil {
		i.logger.Warn("npm manifest unreadable, reinstalling: " + err.Error())
		return false
	}
	if !found {
		i.logger.Info("npm is not installed")
		return false
	}
	if version != req.NPMVersion {
		i.logger.Info("npm " + version + " is installed, but " + req.NPMVersion + " is required")
		return false
	}
	i.logger.Info("npm " + version + " is already installed")
	return true
}

// nodeInstalled reports whether the runtime binary exists and answers the
// requested version when probed. A binary that cannot be executed is
// treated the same as an absent one, matching the manifest policy above.
func (i *Installer) nodeInstalled(ctx context.Context, req domain.InstallRequest) bool {
	binary := req.NodeBinaryPath()
	if _, err := os.Stat(binary); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			i.logger.Warn("cannot stat node binary, reinstalling: " + err.Error())
		} else {
			i.logger.Info("node is not installed")
		}
		return false
	}

	version, err := i.prober.InstalledVersion(ctx, binary)
	if err != nil {
		i.logger.Warn("node binary did not report a version, reinstalling: " + err.Error())
		return false
	}
	if version != req.NodeVersion {
		i.logger.Info("node " + version + " is installed, but " + req.NodeVersion + " is required")
		return false
	}
	i.logger.Info("node " + version + " is already installed")
	return true
}

// installNPM downloads the package-manager tarball to a temporary archive
// under the target directory, unpacks it into the install directory and
// removes the archive again.
func (i *Installer) installNPM(ctx context.Context, req domain.InstallRequest, receipts ports.ReceiptStore) error {
	url := req.Mirror.NPMArchiveURL(req.NPMVersion)
	archive := filepath.Join(req.TargetDir, npmArchiveName)
	defer i.removeAll(archive)

	digest, err := i.downloader.Fetch(ctx, url, archive)
	if err != nil {
		return err
	}

	if err := i.extractor.Extract(ctx, archive, req.InstallDir()); err != nil {
		return err
	}

	i.putReceipt(receipts, domain.InstallReceipt{
		Component:     domain.ComponentNPM,
		Version:       req.NPMVersion,
		SourceURL:     url,
		ArchiveDigest: digest,
		InstalledAt:   time.Now().UTC(),
	})
	i.logger.Info("installed npm " + req.NPMVersion)
	return nil
}

// installNodeDefault provisions the runtime on every non-Windows family.
// The archive is unpacked into a scratch directory next to the install
// directory, so the final rename never crosses a filesystem boundary, and
// the scratch directory is removed on every exit path.
func (i *Installer) installNodeDefault(ctx context.Context, req domain.InstallRequest, receipts ports.ReceiptStore) error {
	scratch := req.ScratchDir()
	if err := os.MkdirAll(scratch, dirPerm); err != nil {
		return zerr.Wrap(err, "creating scratch directory")
	}
	defer i.removeAll(scratch)

	url := req.Mirror.NodeArchiveURL(req.NodeVersion, req.OS, req.Arch)
	archive := filepath.Join(scratch, nodeArchiveName)

	digest, err := i.downloader.Fetch(ctx, url, archive)
	if err != nil {
		return err
	}
	if err := i.extractor.Extract(ctx, archive, scratch); err != nil {
		return err
	}

	distName := req.Mirror.NodeDistName(req.NodeVersion, req.OS, req.Arch)
	extracted := filepath.Join(scratch, distName, "bin", "node")
	if _, err := os.Stat(extracted); err != nil {
		return errors.Join(domain.ErrBinaryNotFound,
			zerr.With(zerr.Wrap(err, "extracted archive has an unexpected layout"),
				"expected_path", extracted))
	}

	if err := os.MkdirAll(req.InstallDir(), dirPerm); err != nil {
		return zerr.Wrap(err, "creating install directory")
	}
	binary := req.NodeBinaryPath()
	if err := os.Rename(extracted, binary); err != nil {
		return zerr.Wrap(err, "moving node binary into place")
	}
	if err := os.Chmod(binary, binPerm); err != nil {
		return zerr.Wrap(err, "marking node binary executable")
	}

	i.putReceipt(receipts, domain.InstallReceipt{
		Component:     domain.ComponentNode,
		Version:       req.NodeVersion,
		SourceURL:     url,
		ArchiveDigest: digest,
		InstalledAt:   time.Now().UTC(),
	})
	i.logger.Info("installed node " + req.NodeVersion)
	return nil
}

// installNodeWindows provisions the runtime on the Windows family, where
// the distribution is a bare executable: no archive, no scratch directory,
// the download lands directly at its final path.
func (i *Installer) installNodeWindows(ctx context.Context, req domain.InstallRequest, receipts ports.ReceiptStore) error {
	url := req.Mirror.WindowsBinaryURL(req.NodeVersion, req.Arch)

	digest, err := i.downloader.Fetch(ctx, url, req.NodeBinaryPath())
	if err != nil {
		return err
	}

	i.putReceipt(receipts, domain.InstallReceipt{
		Component:     domain.ComponentNode,
		Version:       req.NodeVersion,
		SourceURL:     url,
		ArchiveDigest: digest,
		InstalledAt:   time.Now().UTC(),
	})
	i.logger.Info("installed node " + req.NodeVersion)
	return nil
}

// putReceipt records what was fetched. Receipts are bookkeeping, a failed
// write does not fail the install.
func (i *Installer) putReceipt(receipts ports.ReceiptStore, receipt domain.InstallReceipt) {
	if err := receipts.Put(receipt); err != nil {
		i.logger.Warn("could not record install receipt: " + err.Error())
	}
}

func (i *Installer) removeAll(path string) {
	if err := os.RemoveAll(path); err != nil {
		i.logger.Warn("could not clean up " + path + ": " + err.Error())
	}
}
