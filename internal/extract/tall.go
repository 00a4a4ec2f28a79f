package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/Harshitha061298/Clearcare-Project/internal/audit"
	"github.com/Harshitha061298/Clearcare-Project/internal/model"
	"github.com/Harshitha061298/Clearcare-Project/internal/normalize"
)

// tallChunkSize bounds how many body rows are held in memory at once. Rows
// are independent, so the boundary has no semantic effect.
const tallChunkSize = 10000

// maxCodeSlots is the number of ordinal code|N slots a row can carry.
const maxCodeSlots = 4

// TallWalker streams a tall flat CSV (one code per ordinal slot per row) and
// emits up to maxCodeSlots canonical records per body row.
type TallWalker struct {
	Hospital *model.Hospital
	Codes    *normalize.CodeTypes
	Report   *audit.Report
}

// Walk reads the two-row metadata header, then processes the body in
// bounded-size chunks.
func (w *TallWalker) Walk(path string, sink Sink) error {
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
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read body header: %w", err)
	}
	idx := columnIndex(headers)

	chunk := make([][]string, 0, tallChunkSize)
	for {
		chunk = chunk[:0]
		var readErr error
		for len(chunk) < tallChunkSize {
			row, err := r.Read()
			if err != nil {
				readErr = err
				break
			}
			chunk = append(chunk, row)
		}

		for _, row := range chunk {
			if err := w.walkRow(row, idx, sink); err != nil {
				return err
			}
		}

		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("read body row: %w", readErr)
		}
	}
}

// walkRow expands one body row: each populated ordinal code slot that passes
// the allow-list emits its own record carrying the row's shared fields.
func (w *TallWalker) walkRow(row []string, idx map[string]int, sink Sink) error {
	payerName, payerID := normalize.SplitPayer(field(row, idx, "payer_name"))

	modifiersRaw := strings.TrimSpace(field(row, idx, "modifiers"))
	for _, m := range normalize.SplitModifiers(modifiersRaw) {
		w.Report.TallyModifier(m)
	}

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

		rec := &model.Record{
			HospitalName:          w.Hospital.HospitalName,
			ZipCode:               w.Hospital.ZipCode,
			Code:                  code,
			CodeType:              codeType,
			Description:           field(row, idx, "description"),
			DrugUnit:              field(row, idx, "drug_unit_of_measurement"),
			DrugType:              field(row, idx, "drug_type_of_measurement"),
			PayerName:             payerName,
			PayerID:               payerID,
			PlanName:              field(row, idx, "plan_name"),
			NegotiatedPrice:       field(row, idx, "standard_charge|negotiated_dollar"),
			NegotiatedPercentage:  field(row, idx, "standard_charge|negotiated_percentage"),
			NegotiatedAlgorithm:   field(row, idx, "standard_charge|negotiated_algorithm"),
			NegotiatedMethodology: field(row, idx, "standard_charge|methodology"),
			GrossCharge:           field(row, idx, "standard_charge|gross"),
			DiscountedCashPrice:   field(row, idx, "standard_charge|discounted_cash"),
			MinPrice:              field(row, idx, "standard_charge|min"),
			MaxPrice:              field(row, idx, "standard_charge|max"),
			EstimatedAmount:       field(row, idx, "estimated_amount"),
			Setting:               field(row, idx, "setting"),
			AdditionalNotes:       field(row, idx, "additional_generic_notes"),
			Modifiers:             modifiersRaw,
		}
		if err := sink.Write(rec); err != nil {
			return err
		}
		w.Report.Observe(rec)
	}
	return nil
}
