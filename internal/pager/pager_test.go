package pager_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ridgedb/internal/pager"
)

func TestOpenFreshFileHasZeroPages(t *testing.T) {
	p, err := pager.Open(filepath.Join(t.TempDir(), "fresh.db"))
	require.NoError(t, err)
	require.Equal(t, uint32(0), p.NumPages())
}

func TestOpenRejectsCorruptLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.db")
	require.NoError(t, os.WriteFile(path, make([]byte, pager.PageSize+1), 0o600))

	_, err := pager.Open(path)
	require.ErrorIs(t, err, pager.ErrCorruptFile)
}

func TestGetPageCachesStableBuffer(t *testing.T) {
	p, err := pager.Open(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)

	page1, err := p.GetPage(0)
	require.NoError(t, err)
	page1[0] = 0xAB

	page2, err := p.GetPage(0)
	require.NoError(t, err)
	require.Same(t, &page1[0], &page2[0])
	require.Equal(t, byte(0xAB), page2[0])
}

func TestGetPageOutOfBounds(t *testing.T) {
	p, err := pager.Open(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)

	_, err = p.GetPage(pager.MaxPages)
	require.ErrorIs(t, err, pager.ErrPageOutOfBounds)

	_, err = p.GetPage(pager.MaxPages - 1)
	require.NoError(t, err)
}

func TestFlushAndReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")

	p, err := pager.Open(path)
	require.NoError(t, err)
	page, err := p.GetPage(0)
	require.NoError(t, err)
	page[0] = 0x42
	require.NoError(t, p.Close())

	p2, err := pager.Open(path)
	require.NoError(t, err)
	require.Equal(t, uint32(1), p2.NumPages())
	page2, err := p2.GetPage(0)
	require.NoError(t, err)
	require.Equal(t, byte(0x42), page2[0])
}

func TestAllocatePageReturnsNextIndex(t *testing.T) {
	p, err := pager.Open(filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)

	n, err := p.AllocatePage()
	require.NoError(t, err)
	require.Equal(t, uint32(0), n)

	_, err = p.GetPage(n)
	require.NoError(t, err)

	n2, err := p.AllocatePage()
	require.NoError(t, err)
	require.Equal(t, uint32(1), n2)
}

