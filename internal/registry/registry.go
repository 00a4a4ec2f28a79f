// Package registry resolves campus identifiers against the hospital
// registry workbook (Hospital Registry.xlsx, sheet "Sheet1").
package registry

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Harshitha061298/Clearcare-Project/internal/model"
)

const sheetName = "Sheet1"

// requiredColumns are the registry columns a lookup depends on.
var requiredColumns = []string{"campus_id", "hospital_name", "zip_code", "raw_filename", "healthcare_system"}

// Lookup finds the hospital metadata for campusID in the registry workbook
// at path. A campus id absent from the registry is an error.
func Lookup(path, campusID string) (*model.Hospital, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read registry sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("registry sheet %s is empty", sheetName)
	}

	colIdx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		colIdx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("registry missing column %q", col)
		}
	}

	cell := func(row []string, col string) string {
		i := colIdx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for _, row := range rows[1:] {
		if cell(row, "campus_id") != campusID {
			continue
		}
		return &model.Hospital{
			CampusID:         campusID,
			HospitalName:     cell(row, "hospital_name"),
			ZipCode:          cell(row, "zip_code"),
			RawFilename:      cell(row, "raw_filename"),
			HealthcareSystem: cell(row, "healthcare_system"),
		}, nil
	}

	return nil, fmt.Errorf("campus id %q not found in hospital registry", campusID)
}
