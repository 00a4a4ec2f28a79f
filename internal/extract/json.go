package extract

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Harshitha061298/Clearcare-Project/internal/audit"
	"github.com/Harshitha061298/Clearcare-Project/internal/model"
	"github.com/Harshitha061298/Clearcare-Project/internal/normalize"
)

// knownJSONKeys are the top-level document keys consumed by an extraction
// path; everything else lands in the devlog's unused-key list.
var knownJSONKeys = map[string]bool{
	"standard_charge_information": true,
	"hospital_location":           true,
	"hospital_address":            true,
	"modifier_information":        true,
}

// JSONWalker traverses a nested JSON MRF document and emits one canonical
// record per (code, charge context, payer) triple, plus standalone records
// for the document's modifier_information list.
type JSONWalker struct {
	Hospital *model.Hospital
	Codes    *normalize.CodeTypes
	Report   *audit.Report
}

// flexString decodes any scalar JSON value as its source text: strings are
// unquoted, numbers and booleans keep their exact source form, null is "".
// The canonical schema is all opaque strings, so nothing is ever reformatted.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(data)
	return nil
}

func (s flexString) String() string { return string(s) }

// chargeItems is the standard_charge_information union: either a bare list
// of line items or an object wrapping the list under "item". Any other shape
// resolves to an empty list.
type chargeItems []lineItem

func (c *chargeItems) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		var items []lineItem
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*c = items
	case len(trimmed) > 0 && trimmed[0] == '{':
		var wrapped struct {
			Item []lineItem `json:"item"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		*c = wrapped.Item
	default:
		*c = nil
	}
	return nil
}

type lineItem struct {
	Description     flexString    `json:"description"`
	CodeInformation []codeEntry   `json:"code_information"`
	StandardCharges []chargeEntry `json:"standard_charges"`
	DrugInformation *drugInfo     `json:"drug_information"`
}

type codeEntry struct {
	Code flexString `json:"code"`
	Type flexString `json:"type"`
}

type chargeEntry struct {
	GrossCharge       flexString   `json:"gross_charge"`
	DiscountedCash    flexString   `json:"discounted_cash"`
	Minimum           flexString   `json:"minimum"`
	Maximum           flexString   `json:"maximum"`
	Setting           flexString   `json:"setting"`
	PayersInformation []payerEntry `json:"payers_information"`
}

type payerEntry struct {
	PayerName                flexString `json:"payer_name"`
	PayerID                  flexString `json:"payer_id"`
	PlanName                 flexString `json:"plan_name"`
	StandardChargeDollar     flexString `json:"standard_charge_dollar"`
	StandardChargePercentage flexString `json:"standard_charge_percentage"`
	StandardChargeAlgorithm  flexString `json:"standard_charge_algorithm"`
	NegotiatedMethodology    flexString `json:"negotiated_methodology"`
	EstimatedAmount          flexString `json:"estimated_amount"`
	AdditionalPayerNotes     flexString `json:"additional_payer_notes"`
}

type drugInfo struct {
	Unit            flexString `json:"unit"`
	Type            flexString `json:"type"`
	EstimatedAmount flexString `json:"estimated_amount"`
}

type modifierItem struct {
	Code                    flexString      `json:"code"`
	Description             flexString      `json:"description"`
	ModifierPayerInformation []modifierPayer `json:"modifier_payer_information"`
}

type modifierPayer struct {
	PayerName   flexString `json:"payer_name"`
	PlanName    flexString `json:"plan_name"`
	Description flexString `json:"description"`
}

// Walk runs both passes over the document at path: a cheap forward token
// scan for the address metadata, then a full parse driving record emission.
func (w *JSONWalker) Walk(path string, sink Sink) error {
	location, address, err := scanAddressInfo(path)
	if err != nil {
		return err
	}
	w.Report.SetAddressInfo(location, address)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	unused := make([]string, 0)
	for key := range top {
		if !knownJSONKeys[key] {
			unused = append(unused, key)
		}
	}
	w.Report.SetUnusedJSONKeys(unused)

	var version, lastUpdated flexString
	if raw, ok := top["version"]; ok {
		if err := json.Unmarshal(raw, &version); err != nil {
			return fmt.Errorf("decode version: %w", err)
		}
	}
	if raw, ok := top["last_updated_on"]; ok {
		if err := json.Unmarshal(raw, &lastUpdated); err != nil {
			return fmt.Errorf("decode last_updated_on: %w", err)
		}
	}
	w.Report.SetMRFMetadata(version.String(), lastUpdated.String())

	var items chargeItems
	if raw, ok := top["standard_charge_information"]; ok {
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("decode standard_charge_information: %w", err)
		}
	}

	for i := range items {
		if err := w.walkItem(&items[i], sink); err != nil {
			return err
		}
	}

	var modifiers []modifierItem
	if raw, ok := top["modifier_information"]; ok {
		if err := json.Unmarshal(raw, &modifiers); err != nil {
			return fmt.Errorf("decode modifier_information: %w", err)
		}
	}
	for i := range modifiers {
		if err := w.walkModifier(&modifiers[i], sink); err != nil {
			return err
		}
	}

	return nil
}

// walkItem fans one line item out across code_information × standard_charges
// × payers_information. A line item missing any of the nested arrays simply
// contributes zero records.
func (w *JSONWalker) walkItem(item *lineItem, sink Sink) error {
	var drug drugInfo
	if item.DrugInformation != nil {
		drug = *item.DrugInformation
	}

	for _, ce := range item.CodeInformation {
		codeType, ok := w.Codes.Resolve(ce.Type.String())
		if !ok {
			continue
		}

		for ci := range item.StandardCharges {
			charge := &item.StandardCharges[ci]
			for pi := range charge.PayersInformation {
				payer := &charge.PayersInformation[pi]

				// Estimated amount prefers the payer entry, then drug info.
				estimated := payer.EstimatedAmount
				if estimated == "" {
					estimated = drug.EstimatedAmount
				}

				rec := &model.Record{
					HospitalName:          w.Hospital.HospitalName,
					ZipCode:               w.Hospital.ZipCode,
					Code:                  ce.Code.String(),
					CodeType:              codeType,
					Description:           item.Description.String(),
					DrugUnit:              drug.Unit.String(),
					DrugType:              drug.Type.String(),
					PayerName:             payer.PayerName.String(),
					PayerID:               payer.PayerID.String(),
					PlanName:              payer.PlanName.String(),
					NegotiatedPrice:       payer.StandardChargeDollar.String(),
					NegotiatedPercentage:  payer.StandardChargePercentage.String(),
					NegotiatedAlgorithm:   payer.StandardChargeAlgorithm.String(),
					NegotiatedMethodology: payer.NegotiatedMethodology.String(),
					GrossCharge:           charge.GrossCharge.String(),
					DiscountedCashPrice:   charge.DiscountedCash.String(),
					MinPrice:              charge.Minimum.String(),
					MaxPrice:              charge.Maximum.String(),
					EstimatedAmount:       estimated.String(),
					Setting:               charge.Setting.String(),
					AdditionalNotes:       payer.AdditionalPayerNotes.String(),
				}
				if err := w.emit(rec, sink); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// walkModifier emits one record per modifier payer entry, independent of the
// line items, with all price fields empty.
func (w *JSONWalker) walkModifier(mod *modifierItem, sink Sink) error {
	w.Report.TallyModifier(mod.Code.String())

	for i := range mod.ModifierPayerInformation {
		payer := &mod.ModifierPayerInformation[i]
		rec := &model.Record{
			HospitalName:    w.Hospital.HospitalName,
			ZipCode:         w.Hospital.ZipCode,
			Code:            mod.Code.String(),
			CodeType:        model.ModifierCodeType,
			Description:     mod.Description.String(),
			PayerName:       payer.PayerName.String(),
			PlanName:        payer.PlanName.String(),
			AdditionalNotes: payer.Description.String(),
		}
		if err := w.emit(rec, sink); err != nil {
			return err
		}
	}
	return nil
}

func (w *JSONWalker) emit(rec *model.Record, sink Sink) error {
	if err := sink.Write(rec); err != nil {
		return err
	}
	w.Report.Observe(rec)
	return nil
}

// scanAddressInfo makes a forward streaming pass over the document, pulling
// the first string element of hospital_location and hospital_address, and
// stops as soon as both are found. Large documents are never buffered here.
func scanAddressInfo(path string) (location, address string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 256*1024)
	if bom, err := br.Peek(3); err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}

	dec := json.NewDecoder(br)

	tok, err := dec.Token()
	if err != nil {
		return "", "", fmt.Errorf("read document start: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return "", "", fmt.Errorf("expected top-level object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", "", fmt.Errorf("read key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return "", "", fmt.Errorf("expected string key, got %T", tok)
		}

		switch key {
		case "hospital_location", "hospital_address":
			v, err := firstStringElement(dec)
			if err != nil {
				return "", "", fmt.Errorf("decode %s: %w", key, err)
			}
			if key == "hospital_location" && location == "" {
				location = v
			}
			if key == "hospital_address" && address == "" {
				address = v
			}
		default:
			if err := skipValue(dec); err != nil {
				return "", "", fmt.Errorf("skip %s: %w", key, err)
			}
		}

		if location != "" && address != "" {
			return location, address, nil
		}
	}
	return location, address, nil
}

// firstStringElement consumes one JSON value that should be an array and
// returns its first string element, tolerating other shapes.
func firstStringElement(dec *json.Decoder) (string, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return "", err
	}
	var arr []any
	if err := json.Unmarshal(raw, &arr); err != nil {
		return "", nil
	}
	for _, el := range arr {
		if s, ok := el.(string); ok && strings.TrimSpace(s) != "" {
			return s, nil
		}
	}
	return "", nil
}

// skipValue consumes one JSON value token-by-token without buffering it.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}
