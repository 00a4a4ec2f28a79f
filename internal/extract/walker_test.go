package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Harshitha061298/Clearcare-Project/internal/audit"
	"github.com/Harshitha061298/Clearcare-Project/internal/config"
	"github.com/Harshitha061298/Clearcare-Project/internal/model"
	"github.com/Harshitha061298/Clearcare-Project/internal/normalize"
)

// memSink collects emitted records for assertions.
type memSink struct {
	recs []model.Record
}

func (s *memSink) Write(rec *model.Record) error {
	s.recs = append(s.recs, *rec)
	return nil
}

func testHospital() *model.Hospital {
	return &model.Hospital{
		CampusID:         "STV-01",
		HospitalName:     "St. Vincent Medical Center",
		ZipCode:          "90057",
		RawFilename:      "raw.json",
		HealthcareSystem: "Horizon",
	}
}

func testExtractConfig() *config.Extract {
	return &config.Extract{
		AllowedCodeTypes: map[string]bool{"CPT": true, "HCPCS": true, "MS-DRG": true},
		CodeTypeMap: map[string]string{
			"CPT":    "CPT",
			"HCPC":   "HCPCS",
			"HCPCS":  "HCPCS",
			"MS-DRG": "MS-DRG",
			"MSDRG":  "MS-DRG",
			"RC":     "RC", // maps but not allowed
		},
	}
}

// newWalkEnv builds the per-run trio every walker needs.
func newWalkEnv(withModifiers bool) (*audit.Report, *normalize.CodeTypes) {
	report := audit.NewReport(withModifiers)
	return report, normalize.NewCodeTypes(testExtractConfig(), report)
}

func writeFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
