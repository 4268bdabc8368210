package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Row: one line of a B-Stock manifest file, untyped as shipped.
type Row struct {
	AuctionName string
	LotNumber   string
	Quantity    string
	Title       string
	VendorCode  string
	RetailPrice string
	Source      string
}

var requiredColumns = []string{"LotNumber", "Title", "Retail Price"}

// ParseCSV reads a B-Stock manifest. Malformed rows are skipped and
// reported as warnings; only an unreadable file is fatal.
func ParseCSV(path string) ([]Row, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open manifest: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // manifests are often ragged
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("could not read manifest header: %w", err)
	}
	idx := columnIndex(header)

	var rows []Row
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

		rows = append(rows, Row{
			AuctionName: field(record, idx, "Auction name"),
			LotNumber:   field(record, idx, "LotNumber"),
			Quantity:    field(record, idx, "Quantity"),
			Title:       field(record, idx, "Title"),
			VendorCode:  field(record, idx, "Vendor Code"),
			RetailPrice: field(record, idx, "Retail Price"),
			Source:      field(record, idx, "Source"),
		})
	}

	return rows, warnings, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// CleanPrice strips currency formatting and parses; unparseable is 0.
func CleanPrice(s string) float64 {
	cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// NormalizeSource maps a free-form source string to a canonical vendor name.
func NormalizeSource(source string) string {
	s := strings.TrimSpace(source)
	if s == "" {
		return "Unknown"
	}

	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "best buy"), strings.Contains(lower, "bestbuy"):
		return "Best Buy"
	case strings.Contains(lower, "wayfair"):
		return "Wayfair"
	case strings.Contains(lower, "mech"), strings.Contains(lower, "pdx7"):
		return "Mech/PDX7"
	case strings.Contains(lower, "amazon"):
		return "Amazon Bstock"
	}
	return s
}

type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Message  string   `json:"message"`
	Warnings []string `json:"warnings"`
}

// ValidateCSV checks headers and spot-checks the first 10 rows before an
// import. It reports problems instead of failing; only an unreadable file
// returns an error.
func ValidateCSV(path string) (ValidationResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ValidationResult{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return ValidationResult{}, err
	}

	var missing []string
	idx := columnIndex(header)
	for _, req := range requiredColumns {
		if _, ok := idx[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return ValidationResult{
			Valid:    false,
			Message:  "Missing required columns: " + strings.Join(missing, ", "),
			Warnings: []string{},
		}, nil
	}

	r.FieldsPerRecord = -1
	warnings := []string{}
	rowCount := 0
	for i := 0; i < 10; i++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ValidationResult{
				Valid:    false,
				Message:  fmt.Sprintf("Invalid data at row %d: %v", i+2, err),
				Warnings: warnings,
			}, nil
		}

		rowCount++
		if price := CleanPrice(field(record, idx, "Retail Price")); price == 0 {
			warnings = append(warnings, fmt.Sprintf("Row %d: Invalid retail price", i+2))
		}
	}

	return ValidationResult{
		Valid:    true,
		Message:  fmt.Sprintf("CSV is valid. Checked %d rows.", rowCount),
		Warnings: warnings,
	}, nil
}
