package installer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nodeup/internal/adapters/telemetry"
	"go.trai.ch/nodeup/internal/core/domain"
	"go.trai.ch/nodeup/internal/core/ports"
	"go.trai.ch/nodeup/internal/core/ports/mocks"
	"go.trai.ch/nodeup/internal/engine/installer"
	"go.uber.org/mock/gomock"
)

type testHarness struct {
	installer  *installer.Installer
	downloader *mocks.MockDownloader
	extractor  *mocks.MockExtractor
	prober     *mocks.MockRuntimeProber
	manifests  *mocks.MockManifestReader
	receipts   *mocks.MockReceiptStore
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &testHarness{
		downloader: mocks.NewMockDownloader(ctrl),
		extractor:  mocks.NewMockExtractor(ctrl),
		prober:     mocks.NewMockRuntimeProber(ctrl),
		manifests:  mocks.NewMockManifestReader(ctrl),
		receipts:   mocks.NewMockReceiptStore(ctrl),
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	opener := func(string) (ports.ReceiptStore, error) { return h.receipts, nil }
	h.installer = installer.New(
		h.downloader, h.extractor, h.prober, h.manifests,
		opener, log, telemetry.NewNoOp(),
	)
	return h
}

func testRequest(t *testing.T, os domain.OS, arch domain.Arch) domain.InstallRequest {
	t.Helper()
	req, err := domain.NewInstallRequest("v0.10.26", "1.4.3", t.TempDir(), os, arch, "")
	require.NoError(t, err)
	return req
}

// writeFakeBinary puts a placeholder at the request's binary path so the
// stat in the installed-version check succeeds.
func writeFakeBinary(t *testing.T, req domain.InstallRequest) {
	t.Helper()
	require.NoError(t, os.MkdirAll(req.InstallDir(), 0o750))
	require.NoError(t, os.WriteFile(req.NodeBinaryPath(), []byte("fake"), 0o755))
}

func TestInstall_EverythingAlreadyInstalled(t *testing.T) {
	h := newHarness(t)
	req := testRequest(t, domain.Linux, domain.X64)
	writeFakeBinary(t, req)

	h.manifests.EXPECT().ReadVersion(req.NPMManifestPath()).Return("1.4.3", true, nil)
	h.prober.EXPECT().InstalledVersion(gomock.Any(), req.NodeBinaryPath()).Return("v0.10.26", nil)

	// No downloads, no extractions: the mocks would fail on any call.
	require.NoError(t, h.installer.Install(context.Background(), req))
}

func TestInstall_NPMVersionMismatchReinstalls(t *testing.T) {
	h := newHarness(t)
	req := testRequest(t, domain.Linux, domain.X64)
	writeFakeBinary(t, req)

	wantURL := "https://nodejs.org/dist/npm/npm-1.4.3.tgz"
	wantArchive := filepath.Join(req.TargetDir, "npm.tar.gz")

	h.manifests.EXPECT().ReadVersion(req.NPMManifestPath()).Return("1.3.0", true, nil)
	h.downloader.EXPECT().Fetch(gomock.Any(), wantURL, wantArchive).Return("deadbeef", nil)
	h.extractor.EXPECT().Extract(gomock.Any(), wantArchive, req.InstallDir()).Return(nil)
	h.receipts.EXPECT().Put(gomock.Any()).DoAndReturn(func(r domain.InstallReceipt) error {
		assert.Equal(t, domain.ComponentNPM, r.Component)
		assert.Equal(t, "1.4.3", r.Version)
		assert.Equal(t, wantURL, r.SourceURL)
		assert.Equal(t, "deadbeef", r.ArchiveDigest)
		return nil
	})
	h.prober.EXPECT().InstalledVersion(gomock.Any(), req.NodeBinaryPath()).Return("v0.10.26", nil)

	require.NoError(t, h.installer.Install(context.Background(), req))
}

func TestInstall_UnreadableManifestReinstalls(t *testing.T) {
	h := newHarness(t)
	req := testRequest(t, domain.Linux, domain.X64)
	writeFakeBinary(t, req)

	h.manifests.EXPECT().ReadVersion(req.NPMManifestPath()).
		Return("", false, errors.Join(domain.ErrManifestUnreadable, errors.New("bad json")))
	h.downloader.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return("d", nil)
	h.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), req.InstallDir()).Return(nil)
	h.receipts.EXPECT().Put(gomock.Any()).Return(nil)
	h.prober.EXPECT().InstalledVersion(gomock.Any(), req.NodeBinaryPath()).Return("v0.10.26", nil)

	require.NoError(t, h.installer.Install(context.Background(), req))
}

func TestInstall_FailedProbeReinstallsNode(t *testing.T) {
	h := newHarness(t)
	req := testRequest(t, domain.Linux, domain.X64)
	writeFakeBinary(t, req)

	distName := "node-v0.10.26-linux-x64"
	wantURL := "https://nodejs.org/dist/v0.10.26/" + distName + ".tar.gz"
	wantArchive := filepath.Join(req.ScratchDir(), "node.tar.gz")

	h.manifests.EXPECT().ReadVersion(req.NPMManifestPath()).Return("1.4.3", true, nil)
	h.prober.EXPECT().InstalledVersion(gomock.Any(), req.NodeBinaryPath()).
		Return("", errors.New("exec format error"))
	h.downloader.EXPECT().Fetch(gomock.Any(), wantURL, wantArchive).Return("cafe", nil)
	h.extractor.EXPECT().Extract(gomock.Any(), wantArchive, req.ScratchDir()).
		DoAndReturn(func(_ context.Context, _, destDir string) error {
			bin := filepath.Join(destDir, distName, "bin", "node")
			require.NoError(t, os.MkdirAll(filepath.Dir(bin), 0o750))
			return os.WriteFile(bin, []byte("node binary"), 0o644)
		})
	h.receipts.EXPECT().Put(gomock.Any()).DoAndReturn(func(r domain.InstallReceipt) error {
		assert.Equal(t, domain.ComponentNode, r.Component)
		assert.Equal(t, "v0.10.26", r.Version)
		return nil
	})

	require.NoError(t, h.installer.Install(context.Background(), req))

	info, err := os.Stat(req.NodeBinaryPath())
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111, "binary must be executable")
	assert.NoDirExists(t, req.ScratchDir(), "scratch directory must be removed")
}

func TestInstall_BinaryMissingAfterExtraction(t *testing.T) {
	h := newHarness(t)
	req := testRequest(t, domain.Mac, domain.X64)

	h.manifests.EXPECT().ReadVersion(req.NPMManifestPath()).Return("1.4.3", true, nil)
	h.downloader.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return("d", nil)
	// Extraction "succeeds" but produces nothing resembling a distribution.
	h.extractor.EXPECT().Extract(gomock.Any(), gomock.Any(), req.ScratchDir()).Return(nil)

	err := h.installer.Install(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBinaryNotFound))
	assert.NoFileExists(t, req.NodeBinaryPath(), "no binary may be moved into place")
	assert.NoDirExists(t, req.ScratchDir(), "scratch directory must be removed on failure")
}

func TestInstall_WindowsFetchesBareExecutable(t *testing.T) {
	h := newHarness(t)
	req := testRequest(t, domain.Windows, domain.X64)

	h.manifests.EXPECT().ReadVersion(req.NPMManifestPath()).Return("1.4.3", true, nil)
	h.downloader.EXPECT().
		Fetch(gomock.Any(), "https://nodejs.org/dist/v0.10.26/x64/node.exe", req.NodeBinaryPath()).
		Return("d", nil)
	h.receipts.EXPECT().Put(gomock.Any()).Return(nil)

	// No extractor call on the Windows path.
	require.NoError(t, h.installer.Install(context.Background(), req))
}

func TestInstall_Windows32BitURLHasNoArchSegment(t *testing.T) {
	h := newHarness(t)
	req := testRequest(t, domain.Windows, domain.X86)

	h.manifests.EXPECT().ReadVersion(req.NPMManifestPath()).Return("1.4.3", true, nil)
	h.downloader.EXPECT().
		Fetch(gomock.Any(), "https://nodejs.org/dist/v0.10.26/node.exe", req.NodeBinaryPath()).
		Return("d", nil)
	h.receipts.EXPECT().Put(gomock.Any()).Return(nil)

	require.NoError(t, h.installer.Install(context.Background(), req))
}

func TestInstall_DownloadFailureAborts(t *testing.T) {
	h := newHarness(t)
	req := testRequest(t, domain.Linux, domain.X64)

	h.manifests.EXPECT().ReadVersion(req.NPMManifestPath()).Return("", false, nil)
	h.downloader.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.Join(domain.ErrDownloadFailed, errors.New("connection refused")))

	err := h.installer.Install(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDownloadFailed))
}

func TestInstall_FailedNPMDownloadRemovesArchive(t *testing.T) {
	h := newHarness(t)
	req := testRequest(t, domain.Linux, domain.X64)

	archive := filepath.Join(req.TargetDir, "npm.tar.gz")

	h.manifests.EXPECT().ReadVersion(req.NPMManifestPath()).Return("", false, nil)
	h.downloader.EXPECT().Fetch(gomock.Any(), gomock.Any(), archive).
		DoAndReturn(func(_ context.Context, _, dest string) (string, error) {
			// A transfer dying midway can leave bytes at the destination.
			require.NoError(t, os.WriteFile(dest, []byte("partial"), 0o644))
			return "", errors.Join(domain.ErrDownloadFailed, errors.New("connection reset"))
		})

	err := h.installer.Install(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDownloadFailed))
	assert.NoFileExists(t, archive, "temporary archive must be removed on a failed download")
}

func TestInstall_CachedComponentsCompleteTheirVertices(t *testing.T) {
	ctrl := gomock.NewController(t)

	downloader := mocks.NewMockDownloader(ctrl)
	extractor := mocks.NewMockExtractor(ctrl)
	prober := mocks.NewMockRuntimeProber(ctrl)
	manifests := mocks.NewMockManifestReader(ctrl)
	receipts := mocks.NewMockReceiptStore(ctrl)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	tel := mocks.NewMockTelemetry(ctrl)
	npmVtx := mocks.NewMockVertex(ctrl)
	nodeVtx := mocks.NewMockVertex(ctrl)
	tel.EXPECT().Record(gomock.Any(), "npm 1.4.3").
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, npmVtx
		})
	tel.EXPECT().Record(gomock.Any(), "node v0.10.26").
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, nodeVtx
		})
	gomock.InOrder(npmVtx.EXPECT().Cached(), npmVtx.EXPECT().Complete(nil))
	gomock.InOrder(nodeVtx.EXPECT().Cached(), nodeVtx.EXPECT().Complete(nil))

	inst := installer.New(
		downloader, extractor, prober, manifests,
		func(string) (ports.ReceiptStore, error) { return receipts, nil },
		log, tel,
	)

	req := testRequest(t, domain.Linux, domain.X64)
	writeFakeBinary(t, req)
	manifests.EXPECT().ReadVersion(req.NPMManifestPath()).Return("1.4.3", true, nil)
	prober.EXPECT().InstalledVersion(gomock.Any(), req.NodeBinaryPath()).Return("v0.10.26", nil)

	require.NoError(t, inst.Install(context.Background(), req))
}

func TestInstall_ExtractionFailureKeepsNoArchive(t *testing.T) {
	h := newHarness(t)
	req := testRequest(t, domain.Linux, domain.X64)
	writeFakeBinary(t, req)

	archive := filepath.Join(req.TargetDir, "npm.tar.gz")

	h.manifests.EXPECT().ReadVersion(req.NPMManifestPath()).Return("", false, nil)
	h.downloader.EXPECT().Fetch(gomock.Any(), gomock.Any(), archive).
		DoAndReturn(func(_ context.Context, _, dest string) (string, error) {
			return "d", os.WriteFile(dest, []byte("garbage"), 0o644)
		})
	h.extractor.EXPECT().Extract(gomock.Any(), archive, req.InstallDir()).
		Return(errors.Join(domain.ErrExtractionFailed, errors.New("not gzip")))

	err := h.installer.Install(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExtractionFailed))
	assert.NoFileExists(t, archive, "temporary archive must be removed on failure")
}

func TestInstall_ConcurrentCallsShareOneRun(t *testing.T) {
	ctrl := gomock.NewController(t)

	downloader := mocks.NewMockDownloader(ctrl)
	extractor := mocks.NewMockExtractor(ctrl)
	prober := mocks.NewMockRuntimeProber(ctrl)
	manifests := mocks.NewMockManifestReader(ctrl)
	receipts := mocks.NewMockReceiptStore(ctrl)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	opener := func(string) (ports.ReceiptStore, error) {
		once.Do(func() { close(entered) })
		<-release
		return receipts, nil
	}

	inst := installer.New(downloader, extractor, prober, manifests, opener, log, telemetry.NewNoOp())
	req := testRequest(t, domain.Windows, domain.X64)

	// Exactly one run's worth of calls for two concurrent invocations.
	manifests.EXPECT().ReadVersion(req.NPMManifestPath()).Return("1.4.3", true, nil).Times(1)
	downloader.EXPECT().Fetch(gomock.Any(), gomock.Any(), req.NodeBinaryPath()).Return("d", nil).Times(1)
	receipts.EXPECT().Put(gomock.Any()).Return(nil).Times(1)

	errs := make(chan error, 2)
	go func() { errs <- inst.Install(context.Background(), req) }()
	<-entered
	go func() { errs <- inst.Install(context.Background(), req) }()
	time.Sleep(100 * time.Millisecond)
	close(release)

	require.NoError(t, <-errs)
	require.NoError(t, <-errs)
}
