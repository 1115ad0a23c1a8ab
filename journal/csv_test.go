package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/alphafx/config"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	fh, err := os.Open(path)
	require.NoError(t, err)
	defer fh.Close()

	rows, err := csv.NewReader(fh).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	snapsPath := filepath.Join(dir, "snapshots.csv")

	j, err := NewCSV(tradesPath, snapsPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.Equal(t, [][]string{tradesHeader}, readCSV(t, tradesPath))
	assert.Equal(t, [][]string{snapshotsHeader}, readCSV(t, snapsPath))
}

func TestCSVJournalRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	snapsPath := filepath.Join(dir, "snapshots.csv")

	j, err := NewCSV(tradesPath, snapsPath)
	require.NoError(t, err)

	closeT := time.Date(2024, 1, 2, 4, 5, 6, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("T1", closeT, -12.5)))
	require.NoError(t, j.RecordSnapshot(PortfolioSnapshot{
		Time:          closeT,
		Balance:       4987.5,
		TotalProfit:   -12.5,
		OpenPositions: 2,
		TotalTrades:   7,
		MarginUsed:    20,
	}))
	require.NoError(t, j.Close())

	trades := readCSV(t, tradesPath)
	require.Len(t, trades, 2)
	assert.Equal(t, []string{
		"T1", "EUR/USD", "BUY", "1000.000000", "1.084700", "1.090000",
		"2024-01-02T03:05:06Z", "2024-01-02T04:05:06Z", "-12.500000", "Manual",
	}, trades[1])

	snaps := readCSV(t, snapsPath)
	require.Len(t, snaps, 2)
	assert.Equal(t, []string{
		"2024-01-02T04:05:06Z", "4987.500000", "-12.500000", "0.000000", "2", "7", "20.000000",
	}, snaps[1])
}

func TestNewCSVBadPath(t *testing.T) {
	t.Parallel()

	_, err := NewCSV("/nonexistent/dir/trades.csv", "/nonexistent/dir/s.csv")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	j, err := Open(config.JournalConfig{Type: "none"})
	require.NoError(t, err)
	assert.Equal(t, Discard, j)
	assert.NoError(t, j.RecordTrade(TradeRecord{}))
	assert.NoError(t, j.RecordSnapshot(PortfolioSnapshot{}))
	assert.NoError(t, j.Close())

	dir := t.TempDir()
	j, err = Open(config.JournalConfig{
		Type:          "csv",
		TradesFile:    filepath.Join(dir, "t.csv"),
		SnapshotsFile: filepath.Join(dir, "s.csv"),
	})
	require.NoError(t, err)
	assert.IsType(t, &CSVJournal{}, j)
	require.NoError(t, j.Close())

	j, err = Open(config.JournalConfig{Type: "sqlite", DBPath: filepath.Join(dir, "j.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, j)
	require.NoError(t, j.Close())

	_, err = Open(config.JournalConfig{Type: "mongo"})
	assert.Error(t, err)
}
