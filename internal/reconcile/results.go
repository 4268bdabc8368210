package reconcile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ResultRow is one line of a HiBid auction results export.
type ResultRow struct {
	LotNumber     string
	WinningBidder string
	BidderID      string
	HighBid       float64
	MaxBid        float64
	BidderEmail   string
	BidderPhone   string
}

// ParseResultsCSV reads a HiBid results export. Rows that cannot be parsed
// become warnings; only "Lot #" and "High Bid" are required columns.
func ParseResultsCSV(path string) ([]ResultRow, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read results header: %w", err)
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"lot #", "high bid"} {
		if _, ok := idx[required]; !ok {
			return nil, nil, fmt.Errorf("results file is missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []ResultRow
	var warnings []string
	line := 1
	for {
		line++
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Row %d: skipping malformed row: %v", line, err))
			continue
		}

		lot := field(record, "lot #")
		if lot == "" {
			continue
		}

		highBid, err := strconv.ParseFloat(strings.TrimPrefix(field(record, "high bid"), "$"), 64)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Row %d: invalid high bid for lot %s", line, lot))
			continue
		}
		maxBid, _ := strconv.ParseFloat(strings.TrimPrefix(field(record, "max bid"), "$"), 64)

		rows = append(rows, ResultRow{
			LotNumber:     lot,
			WinningBidder: field(record, "winning bidder"),
			BidderID:      field(record, "bidder id"),
			HighBid:       highBid,
			MaxBid:        maxBid,
			BidderEmail:   field(record, "email"),
			BidderPhone:   field(record, "phone"),
		})
	}

	return rows, warnings, nil
}
