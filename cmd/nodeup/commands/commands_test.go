package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nodeup/cmd/nodeup/commands"
	"go.trai.ch/nodeup/internal/adapters/telemetry"
	"go.trai.ch/nodeup/internal/app"
	"go.trai.ch/nodeup/internal/core/domain"
	"go.trai.ch/nodeup/internal/core/ports"
	"go.trai.ch/nodeup/internal/core/ports/mocks"
	"go.trai.ch/nodeup/internal/engine/installer"
	"go.uber.org/mock/gomock"
)

type cliHarness struct {
	cli        *commands.CLI
	loader     *mocks.MockConfigLoader
	downloader *mocks.MockDownloader
	manifests  *mocks.MockManifestReader
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &cliHarness{
		loader:     mocks.NewMockConfigLoader(ctrl),
		downloader: mocks.NewMockDownloader(ctrl),
		manifests:  mocks.NewMockManifestReader(ctrl),
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	receipts := mocks.NewMockReceiptStore(ctrl)
	receipts.EXPECT().Put(gomock.Any()).Return(nil).AnyTimes()

	inst := installer.New(
		h.downloader,
		mocks.NewMockExtractor(ctrl),
		mocks.NewMockRuntimeProber(ctrl),
		h.manifests,
		func(string) (ports.ReceiptStore, error) { return receipts, nil },
		log,
		telemetry.NewNoOp(),
	)

	a := app.New(h.loader, inst).WithPlatform(domain.Windows, domain.X64)
	h.cli = commands.New(a)
	return h
}

func TestInstall_FlagsReachTheInstaller(t *testing.T) {
	h := newCLIHarness(t)
	target := t.TempDir()

	h.loader.EXPECT().Load("my.yaml").Return(ports.ToolchainConfig{
		TargetDir:    target,
		DownloadRoot: domain.DefaultMirror,
	}, nil)
	h.manifests.EXPECT().ReadVersion(gomock.Any()).Return("1.4.3", true, nil)
	h.downloader.EXPECT().
		Fetch(gomock.Any(), "https://nodejs.org/dist/v0.10.26/x64/node.exe", gomock.Any()).
		Return("d", nil)

	h.cli.SetArgs([]string{"install", "-c", "my.yaml", "--node", "v0.10.26", "--npm", "1.4.3"})
	require.NoError(t, h.cli.Execute(context.Background()))
}

func TestInstall_MissingVersionsFail(t *testing.T) {
	h := newCLIHarness(t)

	h.loader.EXPECT().Load("").Return(ports.ToolchainConfig{
		TargetDir:    t.TempDir(),
		DownloadRoot: domain.DefaultMirror,
	}, nil)

	h.cli.SetArgs([]string{"install"})
	err := h.cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestInstall_RejectsPositionalArgs(t *testing.T) {
	h := newCLIHarness(t)

	h.cli.SetArgs([]string{"install", "extra"})
	assert.Error(t, h.cli.Execute(context.Background()))
}

func TestVersion(t *testing.T) {
	h := newCLIHarness(t)

	h.cli.SetArgs([]string{"version"})
	require.NoError(t, h.cli.Execute(context.Background()))
}
