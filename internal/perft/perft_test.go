package perft

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"chesskernel/internal/board"
)

func TestCountStartingPosition(t *testing.T) {
	pos := board.NewPosition()

	cases := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, tc := range cases {
		require.Equal(t, tc.expected, Count(pos, tc.depth), "depth %d", tc.depth)
	}
}

func TestDivideTotalsMatchCount(t *testing.T) {
	pos := board.NewPosition()

	var buf bytes.Buffer
	total, err := Divide(pos, 3, &buf)
	require.NoError(t, err)
	require.Equal(t, Count(pos, 3), total)
	require.Contains(t, buf.String(), "Nodes searched: ")
}

func TestDivideDepthZero(t *testing.T) {
	pos := board.NewPosition()

	var buf bytes.Buffer
	total, err := Divide(pos, 0, &buf)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Nodes searched: 1\n", buf.String())
}

func TestDivideMovesSumsToCount(t *testing.T) {
	pos := board.NewPosition()

	results := DivideMoves(pos, 3)
	var sum int64
	for _, r := range results {
		sum += r.Nodes
	}
	require.Equal(t, Count(pos, 3), sum)
	require.Len(t, results, 20)
}

func TestCachePersistsBetweenOpens(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "perftcache")

	cache, err := OpenCache(dir)
	require.NoError(t, err)

	pos := board.NewPosition()
	nodes, err := CountCached(cache, pos, 3)
	require.NoError(t, err)
	require.Equal(t, int64(8902), nodes)
	require.NoError(t, cache.Close())

	reopened, err := OpenCache(dir)
	require.NoError(t, err)
	defer reopened.Close()

	cached, ok, err := reopened.Get(pos.ToFEN(), 3)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(8902), cached)

	_, err = os.Stat(dir)
	require.NoError(t, err)
}
