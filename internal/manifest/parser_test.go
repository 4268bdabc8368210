package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCleanPrice(t *testing.T) {
	assert.Equal(t, 1234.56, CleanPrice("$1,234.56"))
	assert.Equal(t, 1234.56, CleanPrice("1234.56"))
	assert.Equal(t, 0.99, CleanPrice("$0.99"))
	assert.Equal(t, 0.0, CleanPrice(""))
	assert.Equal(t, 0.0, CleanPrice("invalid"))
}

func TestNormalizeSource(t *testing.T) {
	assert.Equal(t, "Best Buy", NormalizeSource("Best Buy"))
	assert.Equal(t, "Best Buy", NormalizeSource("best buy wholesale"))
	assert.Equal(t, "Wayfair", NormalizeSource("Wayfair"))
	assert.Equal(t, "Mech/PDX7", NormalizeSource("Mech Distribution"))
	assert.Equal(t, "Mech/PDX7", NormalizeSource("PDX7"))
	assert.Equal(t, "Amazon Bstock", NormalizeSource("Amazon B-Stock"))
	assert.Equal(t, "Unknown", NormalizeSource(""))
	assert.Equal(t, "Liquidation Direct", NormalizeSource("Liquidation Direct"))
}

func TestParseCSV(t *testing.T) {
	path := writeTempCSV(t, "LotNumber,Title,Retail Price,Quantity,Source\n"+
		"L1,Samsung TV,\"$1,299.99\",1,Best Buy\n"+
		"L2,Leather Sofa,450.00,2,Wayfair\n")

	rows, warnings, err := ParseCSV(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 2)

	assert.Equal(t, "L1", rows[0].LotNumber)
	assert.Equal(t, "Samsung TV", rows[0].Title)
	assert.Equal(t, 1299.99, CleanPrice(rows[0].RetailPrice))
	assert.Equal(t, "Wayfair", rows[1].Source)
}

func TestParseCSVRaggedRowsSurvive(t *testing.T) {
	path := writeTempCSV(t, "LotNumber,Title,Retail Price\n"+
		"L1,Widget\n"+ // short row: missing columns come back empty
		"L2,Gadget,19.99\n")

	rows, _, err := ParseCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0].RetailPrice)
	assert.Equal(t, "19.99", rows[1].RetailPrice)
}

func TestParseCSVMissingFile(t *testing.T) {
	_, _, err := ParseCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestValidateCSVOk(t *testing.T) {
	path := writeTempCSV(t, "LotNumber,Title,Retail Price\nL1,Thing,99.99\n")

	result, err := ValidateCSV(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
}

func TestValidateCSVMissingColumns(t *testing.T) {
	path := writeTempCSV(t, "Lot,Name\n1,Thing\n")

	result, err := ValidateCSV(path)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "Missing required columns")
}

func TestValidateCSVFlagsBadPrices(t *testing.T) {
	path := writeTempCSV(t, "LotNumber,Title,Retail Price\nL1,Thing,free\nL2,Other,49.99\n")

	result, err := ValidateCSV(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Row 2")
}
