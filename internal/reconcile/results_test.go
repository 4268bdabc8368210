package reconcile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeResultsCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseResultsCSV(t *testing.T) {
	path := writeResultsCSV(t, "Lot #,Winning Bidder,Bidder ID,High Bid,Max Bid,Email,Phone\n"+
		"L1,Jane Smith,1001,$125.00,150.00,jane@example.com,555-0101\n"+
		"L2,House Account,5046,40.00,,,\n")

	rows, warnings, err := ParseResultsCSV(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 2)

	assert.Equal(t, "L1", rows[0].LotNumber)
	assert.Equal(t, "Jane Smith", rows[0].WinningBidder)
	assert.Equal(t, "1001", rows[0].BidderID)
	assert.Equal(t, 125.0, rows[0].HighBid)
	assert.Equal(t, 150.0, rows[0].MaxBid)
	assert.Equal(t, "jane@example.com", rows[0].BidderEmail)

	assert.Equal(t, "5046", rows[1].BidderID)
	assert.Equal(t, 40.0, rows[1].HighBid)
}

func TestParseResultsCSVSkipsBlankAndBadRows(t *testing.T) {
	path := writeResultsCSV(t, "Lot #,High Bid\n"+
		",100.00\n"+ // blank lot: silently ignored
		"L2,not-a-number\n"+
		"L3,75.50\n")

	rows, warnings, err := ParseResultsCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "L3", rows[0].LotNumber)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "L2")
}

func TestParseResultsCSVMissingColumn(t *testing.T) {
	path := writeResultsCSV(t, "Lot,Bid\nL1,10\n")

	_, _, err := ParseResultsCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lot #")
}
