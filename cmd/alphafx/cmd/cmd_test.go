package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/alphafx/profile"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// isolate points the profile and journal at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ALPHAFX_PROFILE_PATH", filepath.Join(dir, "demo_user.json"))
	t.Setenv("ALPHAFX_LOG_LEVEL", "error")
	return dir
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "alphafx version "+version)
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "alphafx.yaml")

	out, err := run(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = run(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "5000.00 USD")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("account:\n  balance: -1\n"), 0o644))
	_, err = run(t, "config", "validate", "-f", bad)
	assert.Error(t, err)
}

func TestSignup(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "signup", "--currency", "", "--amount", "100")
	require.Error(t, err)
	assert.Contains(t, out, "Please select a base currency")

	out, err = run(t, "signup", "--currency", "USD", "--amount", "abc")
	require.Error(t, err)
	assert.Contains(t, out, "Please enter a valid basic trade amount")

	out, err = run(t, "signup", "--name", "Sam", "--currency", "eur", "--amount", "1,500")
	require.NoError(t, err)
	assert.Contains(t, out, "Account Created")

	p, err := profile.NewStore(filepath.Join(dir, "demo_user.json")).Load()
	require.NoError(t, err)
	assert.Equal(t, "EUR", p.BaseCurrency)
	assert.Equal(t, 1500.0, p.BasicTradeAmount)
}

func TestDemoWritesJournal(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "journal.sqlite")
	t.Setenv("ALPHAFX_JOURNAL_TYPE", "sqlite")
	t.Setenv("ALPHAFX_JOURNAL_DB_PATH", db)

	out, err := run(t, "demo", "--ticks", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "BUY 1000 @ 1.08470 -> 1.09000: +4.89")
	assert.Contains(t, out, "SELL 500 @ 1.20000 -> 1.19000: +4.17")
	assert.Contains(t, out, "BUY Order Executed")
	assert.Contains(t, out, "Trade Closed")
	assert.Contains(t, out, "Trade Too Small")
	assert.Contains(t, out, "Final portfolio")

	out, err = run(t, "journal", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "# 2 trades")
}

func TestDemoUsesProfileMinimum(t *testing.T) {
	isolate(t)
	_, err := run(t, "signup", "--currency", "USD", "--amount", "400")
	require.NoError(t, err)

	out, err := run(t, "demo", "--ticks", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Minimum trade amount is 400 USD")
}

func TestRecommend(t *testing.T) {
	isolate(t)
	out, err := run(t, "recommend", "--seed", "3", "--apply=false")
	require.NoError(t, err)
	assert.Contains(t, out, "CONFIDENCE")
	assert.Contains(t, out, "Sentiment")
	assert.NotContains(t, out, "Opened")

	out, err = run(t, "recommend", "--seed", "3", "--apply")
	require.NoError(t, err)
	assert.Contains(t, out, "Opened 3 of 3 trades")
}

func TestChart(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "price.png")

	out, err := run(t, "chart", "--seed", "1", "--pair", "gbpusd", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "GBP/USD chart written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestJournalTradeNotFound(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, "journal", "trade", "missing", "--db", filepath.Join(dir, "j.sqlite"))
	assert.Error(t, err)

	_, err = run(t, "journal", "day", "not-a-date", "--db", filepath.Join(dir, "j.sqlite"))
	assert.Error(t, err)
}
