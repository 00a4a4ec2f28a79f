// Package audit accumulates per-run data-quality aggregates and serializes
// them as the devlog JSON written next to every extraction run.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/Harshitha061298/Clearcare-Project/internal/model"
)

// Report is the run-scoped audit accumulator. One Report is created per
// walker invocation, mutated as records are emitted, and serialized once at
// the end of the run. It is owned by a single run and never shared.
type Report struct {
	withModifiers bool
	fields        []string

	fieldPresence    map[string]int
	codeTypePresence map[string]int
	unrecognized     map[string]int
	mappingsUsed     map[string]map[string]bool
	modifierCounts   map[string]int

	version     string
	lastUpdated string
	location    string
	address     string

	unusedJSONKeys []string
	payerColumns   *int
	rowsExtracted  *int

	records int64
}

// NewReport creates an empty report. withModifiers selects the 22-column
// CSV-sourced field set over the 21-column JSON one.
func NewReport(withModifiers bool) *Report {
	fields := model.Fields(withModifiers)
	fp := make(map[string]int, len(fields))
	for _, f := range fields {
		fp[f] = 0
	}
	return &Report{
		withModifiers:    withModifiers,
		fields:           fields,
		fieldPresence:    fp,
		codeTypePresence: make(map[string]int),
		unrecognized:     make(map[string]int),
		mappingsUsed:     make(map[string]map[string]bool),
		modifierCounts:   make(map[string]int),
	}
}

// Observe tallies one just-emitted record: each non-empty field bumps its
// presence counter, and the record's code type bumps the type counter.
func (r *Report) Observe(rec *model.Record) {
	values := rec.Values(r.withModifiers)
	for i, v := range values {
		if v != "" {
			r.fieldPresence[r.fields[i]]++
		}
	}
	if rec.CodeType != "" {
		r.codeTypePresence[rec.CodeType]++
	}
	r.records++
}

// MappingUsed records that raw resolved to canon (canon may be empty when
// the raw token has no mapping). The per-raw set surfaces inconsistent
// mappings across a run as a data-quality signal.
func (r *Report) MappingUsed(raw, canon string) {
	set, ok := r.mappingsUsed[raw]
	if !ok {
		set = make(map[string]bool, 1)
		r.mappingsUsed[raw] = set
	}
	set[canon] = true
}

// Unrecognized counts a raw token whose normalized type fell outside the
// allowed set.
func (r *Report) Unrecognized(raw string) {
	r.unrecognized[raw]++
}

// TallyModifier bumps the frequency counter for one modifier token.
func (r *Report) TallyModifier(code string) {
	r.modifierCounts[code]++
}

// SetMRFMetadata echoes the source document's version and last-updated
// values into the report.
func (r *Report) SetMRFMetadata(version, lastUpdated string) {
	r.version = version
	r.lastUpdated = lastUpdated
}

// SetAddressInfo echoes the raw hospital location/address metadata.
func (r *Report) SetAddressInfo(location, address string) {
	r.location = location
	r.address = address
}

// SetUnusedJSONKeys records top-level document keys never consumed by any
// known extraction path (JSON format only).
func (r *Report) SetUnusedJSONKeys(keys []string) {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	r.unusedJSONKeys = sorted
}

// SetWideStats records the wide-format resolver's column and row counts.
func (r *Report) SetWideStats(payerColumns, rowsExtracted int) {
	r.payerColumns = &payerColumns
	r.rowsExtracted = &rowsExtracted
}

// Records returns the number of records observed so far.
func (r *Report) Records() int64 {
	return r.records
}

// CodeTypeCount returns the presence counter for one code type.
func (r *Report) CodeTypeCount(codeType string) int {
	return r.codeTypePresence[codeType]
}

// FieldCount returns the presence counter for one canonical field.
func (r *Report) FieldCount(field string) int {
	return r.fieldPresence[field]
}

type addressInfo struct {
	HospitalLocation string `json:"hospital_location"`
	HospitalAddress  string `json:"hospital_address"`
}

type mrfMetadata struct {
	Version       string `json:"version"`
	LastUpdatedOn string `json:"last_updated_on"`
}

// devlog is the serialized report. Key names are fixed; downstream tooling
// reads them.
type devlog struct {
	PayerColumnsParsed  *int                `json:"payer_columns_parsed,omitempty"`
	TotalRowsExtracted  *int                `json:"total_rows_extracted,omitempty"`
	RawAddressInfo      addressInfo         `json:"raw_address_info"`
	MRFMetadata         mrfMetadata         `json:"mrf_metadata"`
	FieldPresence       map[string]int      `json:"field_presence_summary"`
	UnrecognizedTypes   map[string]int      `json:"unrecognized_code_types"`
	MissingCodeTypes    []string            `json:"missing_code_types"`
	CodeTypePresence    map[string]int      `json:"code_type_presence"`
	NormalizationsUsed  map[string][]string `json:"code_type_normalizations_used"`
	ModifierCounts      map[string]int      `json:"modifier_counts"`
	UnusedJSONKeys      []string            `json:"unused_optional_json_keys,omitempty"`
}

// Marshal produces the indented devlog JSON. allowedCodeTypes drives the
// missing_code_types list: every allowed type with a zero presence counter.
// Output is fully deterministic for a given run.
func (r *Report) Marshal(allowedCodeTypes []string) ([]byte, error) {
	missing := make([]string, 0)
	for _, ct := range allowedCodeTypes {
		if r.codeTypePresence[ct] == 0 {
			missing = append(missing, ct)
		}
	}
	sort.Strings(missing)

	used := make(map[string][]string, len(r.mappingsUsed))
	for raw, set := range r.mappingsUsed {
		canons := make([]string, 0, len(set))
		for c := range set {
			canons = append(canons, c)
		}
		sort.Strings(canons)
		used[raw] = canons
	}

	return json.MarshalIndent(devlog{
		PayerColumnsParsed: r.payerColumns,
		TotalRowsExtracted: r.rowsExtracted,
		RawAddressInfo:     addressInfo{HospitalLocation: r.location, HospitalAddress: r.address},
		MRFMetadata:        mrfMetadata{Version: r.version, LastUpdatedOn: r.lastUpdated},
		FieldPresence:      r.fieldPresence,
		UnrecognizedTypes:  r.unrecognized,
		MissingCodeTypes:   missing,
		CodeTypePresence:   r.codeTypePresence,
		NormalizationsUsed: used,
		ModifierCounts:     r.modifierCounts,
		UnusedJSONKeys:     r.unusedJSONKeys,
	}, "", "  ")
}

// WriteFile serializes the report to path.
func (r *Report) WriteFile(path string, allowedCodeTypes []string) error {
	data, err := r.Marshal(allowedCodeTypes)
	if err != nil {
		return fmt.Errorf("marshal devlog: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write devlog: %w", err)
	}
	return nil
}
