package receipt_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nodeup/internal/adapters/receipt"
	"go.trai.ch/nodeup/internal/core/domain"
)

func TestStore_GetMissing(t *testing.T) {
	s, err := receipt.NewStore(filepath.Join(t.TempDir(), receipt.FileName))
	require.NoError(t, err)

	r, err := s.Get(domain.ComponentNode)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestStore_PutThenGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), receipt.FileName)
	s, err := receipt.NewStore(path)
	require.NoError(t, err)

	want := domain.InstallReceipt{
		Component:     domain.ComponentNPM,
		Version:       "1.4.3",
		SourceURL:     "https://nodejs.org/dist/npm/npm-1.4.3.tgz",
		ArchiveDigest: "00deadbeef00cafe",
		InstalledAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Put(want))

	got, err := s.Get(domain.ComponentNPM)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), receipt.FileName)

	s, err := receipt.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(domain.InstallReceipt{Component: domain.ComponentNode, Version: "v0.10.26"}))

	reopened, err := receipt.NewStore(path)
	require.NoError(t, err)
	got, err := reopened.Get(domain.ComponentNode)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "v0.10.26", got.Version)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), receipt.FileName)
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o600))

	_, err := receipt.NewStore(path)
	require.Error(t, err)
}
