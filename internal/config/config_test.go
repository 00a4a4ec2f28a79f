package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadExtract_Valid(t *testing.T) {
	path := writeConfig(t, `extract:
  allowed_code_types:
    - CPT
    - HCPCS
  code_type_normalization:
    CPT: CPT
    HCPC: HCPCS
modifiers:
  "26": Professional component
`)

	ex, err := LoadExtract(path)
	if err != nil {
		t.Fatalf("LoadExtract: %v", err)
	}
	if !ex.AllowedCodeTypes["CPT"] || !ex.AllowedCodeTypes["HCPCS"] {
		t.Errorf("allowed types missing: %v", ex.AllowedCodeTypes)
	}
	if got := ex.CodeTypeMap["HCPC"]; got != "HCPCS" {
		t.Errorf("CodeTypeMap[HCPC] = %q, want HCPCS", got)
	}
	if got := ex.ModifierMap["26"]; got != "Professional component" {
		t.Errorf("ModifierMap[26] = %q", got)
	}
}

func TestLoadExtract_KeysUpperCased(t *testing.T) {
	path := writeConfig(t, `extract:
  allowed_code_types: [CPT]
  code_type_normalization:
    " cpt ": CPT
`)

	ex, err := LoadExtract(path)
	if err != nil {
		t.Fatalf("LoadExtract: %v", err)
	}
	if got := ex.CodeTypeMap["CPT"]; got != "CPT" {
		t.Errorf("lowercase key not normalized at load: %v", ex.CodeTypeMap)
	}
}

func TestLoadExtract_EmptyAllowed(t *testing.T) {
	path := writeConfig(t, "extract:\n  allowed_code_types: []\n")
	if _, err := LoadExtract(path); err == nil {
		t.Fatal("expected error for empty allowed_code_types")
	}
}

func TestLoadExtract_Malformed(t *testing.T) {
	path := writeConfig(t, "extract: [not a map\n")
	if _, err := LoadExtract(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadExtract_MissingFile(t *testing.T) {
	if _, err := LoadExtract("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	reg := filepath.Join(dir, "registry.xlsx")
	cfg := filepath.Join(dir, "config.yaml")
	os.WriteFile(reg, []byte("x"), 0644)
	os.WriteFile(cfg, []byte("x"), 0644)

	c := Config{CampusID: "C1", RegistryPath: reg, ConfigPath: cfg}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	c.CampusID = ""
	if err := c.Validate(); err == nil {
		t.Error("expected error for missing campus id")
	}
}
