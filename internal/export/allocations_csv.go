package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/epeers/varstress/internal/input"
	"github.com/epeers/varstress/internal/models"
)

// ParseAllocationCSV parses a CSV file with risk_class_id and percent_of_nav
// columns. Rows with a blank class, or a weight that is not a positive number,
// are dropped with a warning. Class ids are not checked here; unknown ids are
// rejected when the report is computed.
func ParseAllocationCSV(r io.Reader) ([]models.Allocation, []models.Warning, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Build column index map (case-insensitive, trimmed)
	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	for _, col := range []string{"risk_class_id", "percent_of_nav"} {
		if _, ok := colIdx[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var allocations []models.Allocation
	var warnings []models.Warning
	rowNum := 1 // header is row 1, data starts at row 2
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		classID := strings.TrimSpace(record[colIdx["risk_class_id"]])
		raw := strings.TrimSpace(record[colIdx["percent_of_nav"]])
		if classID == "" {
			warnings = append(warnings, models.Warning{
				Code:    models.WarnInputDiscarded,
				Message: fmt.Sprintf("row %d: risk_class_id is empty", rowNum),
			})
			continue
		}

		weight, ok := input.ParseWeight(raw)
		if !ok {
			warnings = append(warnings, models.Warning{
				Code:    models.WarnInputDiscarded,
				Message: fmt.Sprintf("row %d: ignoring %s with percent_of_nav %q", rowNum, classID, raw),
			})
			continue
		}

		allocations = append(allocations, models.Allocation{
			RiskClassID:  classID,
			PercentOfNAV: weight,
		})
	}

	return allocations, warnings, nil
}
