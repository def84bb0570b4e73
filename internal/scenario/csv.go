package scenario

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// SalaryPoint is one row of observed salary data: career year and salary.
// The series is only overlaid on comparison plots; no model computation
// consumes it.
type SalaryPoint struct {
	Year   float64
	Salary float64
}

// DataLoadError reports a comparison CSV that could not be read or parsed.
type DataLoadError struct {
	Path    string
	Line    int
	Wrapped error
}

func (e *DataLoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("scenario: bad salary data %s line %d: %v", e.Path, e.Line, e.Wrapped)
	}
	return fmt.Sprintf("scenario: bad salary data %s: %v", e.Path, e.Wrapped)
}

func (e *DataLoadError) Unwrap() error {
	return e.Wrapped
}

// LoadSalaryCSV reads a two-column (year, salary) CSV, skipping the header
// row. Malformed input surfaces as a *DataLoadError; there is no local
// recovery since the overlay would have nothing to show.
func LoadSalaryCSV(path string) ([]SalaryPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Wrapped: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &DataLoadError{Path: path, Wrapped: err}
	}
	if len(rows) < 2 {
		return nil, &DataLoadError{Path: path, Wrapped: fmt.Errorf("no data rows after header")}
	}

	points := make([]SalaryPoint, 0, len(rows)-1)
	for i, row := range rows[1:] {
		year, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, &DataLoadError{Path: path, Line: i + 2, Wrapped: err}
		}
		salary, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, &DataLoadError{Path: path, Line: i + 2, Wrapped: err}
		}
		points = append(points, SalaryPoint{Year: year, Salary: salary})
	}

	return points, nil
}
