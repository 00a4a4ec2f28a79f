package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Harshitha061298/Clearcare-Project/internal/audit"
	"github.com/Harshitha061298/Clearcare-Project/internal/config"
)

func testExtract() *config.Extract {
	return &config.Extract{
		AllowedCodeTypes: map[string]bool{"CPT": true, "HCPCS": true},
		CodeTypeMap: map[string]string{
			"CPT":  "CPT",
			"HCPC": "HCPCS",
			"RC":   "RC", // maps, but RC is not allowed
		},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		raw      string
		want     string
		wantOK   bool
	}{
		{"CPT", "CPT", true},
		{" cpt ", "CPT", true},
		{"hcpc", "HCPCS", true},
		{"RC", "", false},    // mapped but outside allow-list
		{"BOGUS", "", false}, // unmapped
		{"", "", false},
	}

	for _, tt := range tests {
		rep := audit.NewReport(true)
		ct := NewCodeTypes(testExtract(), rep)
		got, ok := ct.Resolve(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolve_UnrecognizedCounted(t *testing.T) {
	rep := audit.NewReport(true)
	ct := NewCodeTypes(testExtract(), rep)

	ct.Resolve("BOGUS")
	ct.Resolve("BOGUS")
	ct.Resolve("CPT")

	data, err := rep.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out struct {
		Unrecognized map[string]int      `json:"unrecognized_code_types"`
		Used         map[string][]string `json:"code_type_normalizations_used"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal devlog: %v", err)
	}
	if out.Unrecognized["BOGUS"] != 2 {
		t.Errorf("unrecognized[BOGUS] = %d, want 2", out.Unrecognized["BOGUS"])
	}
	if _, ok := out.Unrecognized["CPT"]; ok {
		t.Error("allowed token counted as unrecognized")
	}
	if got := out.Used["CPT"]; len(got) != 1 || got[0] != "CPT" {
		t.Errorf("normalizations_used[CPT] = %v", got)
	}
}

func TestSplitModifiers(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"A, B|C", []string{"A", "B", "C"}},
		{"26", []string{"26"}},
		{" 26 , TC ", []string{"26", "TC"}},
		{"||,,", nil},
		{"", nil},
		{"   ", nil},
	}
	for _, tt := range tests {
		got := SplitModifiers(tt.in)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitModifiers(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitPayer(t *testing.T) {
	tests := []struct {
		in       string
		name, id string
	}{
		{"Aetna [AET01]", "Aetna", "AET01"},
		{"Aetna", "Aetna", ""},
		{"[AET01]", "", "AET01"},
		{"Blue Cross Blue Shield [BCBS] ", "Blue Cross Blue Shield", "BCBS"},
		{"", "", ""},
	}
	for _, tt := range tests {
		name, id := SplitPayer(tt.in)
		if name != tt.name || id != tt.id {
			t.Errorf("SplitPayer(%q) = (%q, %q), want (%q, %q)", tt.in, name, id, tt.name, tt.id)
		}
	}
}
