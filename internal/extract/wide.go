package extract

import (
	"fmt"
	"strings"

	"github.com/Harshitha061298/Clearcare-Project/internal/audit"
	"github.com/Harshitha061298/Clearcare-Project/internal/model"
	"github.com/Harshitha061298/Clearcare-Project/internal/normalize"
)

// wideFieldKeys maps the recognized pivoted-column field keys onto canonical
// record fields.
var wideFieldKeys = map[string]string{
	"negotiated_dollar":     "negotiated price",
	"negotiated_percentage": "negotiated percentage",
	"negotiated_algorithm":  "negotiated algorithm",
	"estimated_amount":      "estimated amount",
	"methodology":           "negotiated methodology",
	"additional_payer_notes": "additional notes",
}

// payerColumn is one selected pivoted column, parsed once from the header.
type payerColumn struct {
	index int
	field string // canonical field name
	payer string
	plan  string
}

// groupKey identifies the canonical record a pivoted cell belongs to.
type groupKey struct {
	code     string
	codeType string
	payer    string
	plan     string
}

type codeSlot struct {
	code     string
	codeType string
}

// WideWalker reassembles records that a wide pivoted CSV shredded across
// many payer/plan price columns. The whole body is buffered; the grouping
// logic wants random access across every payer column of a row, and wide
// files trade row count for column count.
type WideWalker struct {
	Hospital *model.Hospital
	Codes    *normalize.CodeTypes
	Report   *audit.Report
}

// Walk reads the metadata header, selects the payer columns, then regroups
// each row's scattered cells into one record per (code, type, payer, plan).
func (w *WideWalker) Walk(path string, sink Sink) error {
	f, r, err := openCSV(path)
	if err != nil {
		return err
	}
	defer f.Close()

	meta, err := readMetaHeader(r)
	if err != nil {
		return err
	}
	w.Report.SetMRFMetadata(meta["version"], meta["last_updated_on"])
	w.Report.SetAddressInfo(meta["hospital_location"], meta["hospital_address"])

	headers, err := r.Read()
	if err != nil {
		return fmt.Errorf("read body header: %w", err)
	}
	idx := columnIndex(headers)
	payerCols := selectPayerColumns(headers)

	body, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	extracted := 0
	for _, row := range body {
		n, err := w.walkRow(row, idx, payerCols, sink)
		if err != nil {
			return err
		}
		extracted += n
	}

	w.Report.SetWideStats(len(payerCols), extracted)
	return nil
}

// selectPayerColumns picks the pivoted columns: at least three pipe
// segments, with the field key in the first segment (exactly three) or the
// last segment (more than three). Payer and plan are the middle segments.
func selectPayerColumns(headers []string) []payerColumn {
	var cols []payerColumn
	for i, h := range headers {
		parts := strings.Split(h, "|")
		if len(parts) < 3 {
			continue
		}
		for j, p := range parts {
			parts[j] = strings.TrimSpace(p)
		}

		key := parts[len(parts)-1]
		if len(parts) == 3 {
			key = parts[0]
		}
		canonical, ok := wideFieldKeys[key]
		if !ok {
			continue
		}
		if parts[1] == "" {
			continue
		}
		cols = append(cols, payerColumn{
			index: i,
			field: canonical,
			payer: parts[1],
			plan:  parts[2],
		})
	}
	return cols
}

// walkRow files every populated payer cell under its (code, type, payer,
// plan) group, then emits one record per group in first-seen order. Returns
// the number of records emitted for the row.
func (w *WideWalker) walkRow(row []string, idx map[string]int, payerCols []payerColumn, sink Sink) (int, error) {
	genericNotes := strings.TrimSpace(field(row, idx, "additional_generic_notes"))
	modifiersRaw := strings.TrimSpace(field(row, idx, "modifiers"))
	for _, m := range normalize.SplitModifiers(modifiersRaw) {
		w.Report.TallyModifier(m)
	}

	// Code slots resolve lazily, once per row, on the first payer cell that
	// holds a value. Rows contributing no payer values never touch the
	// code-type audit.
	var slots []codeSlot
	slotsResolved := false

	groups := make(map[groupKey]map[string]string)
	var order []groupKey

	for _, col := range payerCols {
		if col.index >= len(row) {
			continue
		}
		value := row[col.index]
		if value == "" {
			continue
		}

		if !slotsResolved {
			slots = w.resolveSlots(row, idx)
			slotsResolved = true
		}

		for _, slot := range slots {
			key := groupKey{code: slot.code, codeType: slot.codeType, payer: col.payer, plan: col.plan}
			fields, ok := groups[key]
			if !ok {
				fields = make(map[string]string, len(wideFieldKeys))
				groups[key] = fields
				order = append(order, key)
			}
			// Duplicate (group, field) pairs are last-write-wins in column
			// scan order.
			fields[col.field] = value
		}
	}

	for _, key := range order {
		fields := groups[key]

		notes := joinNotes(genericNotes, fields["additional notes"])

		rec := &model.Record{
			HospitalName:          w.Hospital.HospitalName,
			ZipCode:               w.Hospital.ZipCode,
			Code:                  key.code,
			CodeType:              key.codeType,
			Description:           field(row, idx, "description"),
			DrugUnit:              field(row, idx, "drug_unit_of_measurement"),
			DrugType:              field(row, idx, "drug_type_of_measurement"),
			PayerName:             key.payer,
			PlanName:              key.plan,
			NegotiatedPrice:       fields["negotiated price"],
			NegotiatedPercentage:  fields["negotiated percentage"],
			NegotiatedAlgorithm:   fields["negotiated algorithm"],
			NegotiatedMethodology: fields["negotiated methodology"],
			GrossCharge:           field(row, idx, "standard_charge|gross"),
			DiscountedCashPrice:   field(row, idx, "standard_charge|discounted_cash"),
			MinPrice:              field(row, idx, "standard_charge|min"),
			MaxPrice:              field(row, idx, "standard_charge|max"),
			EstimatedAmount:       fields["estimated amount"],
			Setting:               field(row, idx, "setting"),
			AdditionalNotes:       notes,
			Modifiers:             modifiersRaw,
		}
		if err := sink.Write(rec); err != nil {
			return 0, err
		}
		w.Report.Observe(rec)
	}
	return len(order), nil
}

// resolveSlots evaluates the row's ordinal code slots against the allow-list.
func (w *WideWalker) resolveSlots(row []string, idx map[string]int) []codeSlot {
	var slots []codeSlot
	for i := 1; i <= maxCodeSlots; i++ {
		code := strings.TrimSpace(field(row, idx, fmt.Sprintf("code|%d", i)))
		rawType := strings.TrimSpace(field(row, idx, fmt.Sprintf("code|%d|type", i)))
		if code == "" || rawType == "" {
			continue
		}
		codeType, ok := w.Codes.Resolve(rawType)
		if !ok {
			continue
		}
		slots = append(slots, codeSlot{code: code, codeType: codeType})
	}
	return slots
}

// joinNotes concatenates the row's generic note with the per-payer note,
// dropping empty parts.
func joinNotes(generic, payer string) string {
	switch {
	case generic == "":
		return payer
	case payer == "":
		return generic
	default:
		return generic + ", " + payer
	}
}
