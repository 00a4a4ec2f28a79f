package model

// Record is one normalized negotiated-price fact in the canonical output
// schema. Every value is kept as the opaque source text — no numeric
// coercion — so reformatting can never lose information. Absent values are
// empty strings; the output table is fixed-width.
type Record struct {
	HospitalName          string `parquet:"hospital_name"`
	ZipCode               string `parquet:"zip_code"`
	Code                  string `parquet:"code"`
	CodeType              string `parquet:"code_type"`
	Description           string `parquet:"description"`
	DrugUnit              string `parquet:"drug_unit"`
	DrugType              string `parquet:"drug_type"`
	PayerName             string `parquet:"insurance_payer_name"`
	PayerID               string `parquet:"insurance_payer_id"`
	PlanName              string `parquet:"insurance_plan_name"`
	NegotiatedPrice       string `parquet:"negotiated_price"`
	NegotiatedPercentage  string `parquet:"negotiated_percentage"`
	NegotiatedAlgorithm   string `parquet:"negotiated_algorithm"`
	NegotiatedMethodology string `parquet:"negotiated_methodology"`
	GrossCharge           string `parquet:"gross_charge"`
	DiscountedCashPrice   string `parquet:"discounted_cash_price"`
	MinPrice              string `parquet:"min_price"`
	MaxPrice              string `parquet:"max_price"`
	EstimatedAmount       string `parquet:"estimated_amount"`
	Setting               string `parquet:"setting"`
	AdditionalNotes       string `parquet:"additional_notes"`
	Modifiers             string `parquet:"modifiers"`
}

// ModifierCodeType marks records emitted from a JSON document's standalone
// modifier_information list.
const ModifierCodeType = "MODIFIER"

// baseFields is the canonical column order shared by every source format.
// Downstream consumers key on these exact names; never reorder.
var baseFields = []string{
	"hospital name",
	"zip code",
	"code",
	"code type",
	"description",
	"drug unit",
	"drug type",
	"insurance payer name",
	"insurance payer id",
	"insurance plan name",
	"negotiated price",
	"negotiated percentage",
	"negotiated algorithm",
	"negotiated methodology",
	"gross charge",
	"discounted cash price",
	"min price",
	"max price",
	"estimated amount",
	"setting",
	"additional notes",
}

// Fields returns the canonical column names in output order. CSV-sourced
// formats carry a trailing "modifiers" column; the JSON format does not.
func Fields(withModifiers bool) []string {
	if !withModifiers {
		return baseFields
	}
	out := make([]string, 0, len(baseFields)+1)
	out = append(out, baseFields...)
	return append(out, "modifiers")
}

// Values returns the record's values aligned with Fields(withModifiers).
func (r *Record) Values(withModifiers bool) []string {
	vals := []string{
		r.HospitalName,
		r.ZipCode,
		r.Code,
		r.CodeType,
		r.Description,
		r.DrugUnit,
		r.DrugType,
		r.PayerName,
		r.PayerID,
		r.PlanName,
		r.NegotiatedPrice,
		r.NegotiatedPercentage,
		r.NegotiatedAlgorithm,
		r.NegotiatedMethodology,
		r.GrossCharge,
		r.DiscountedCashPrice,
		r.MinPrice,
		r.MaxPrice,
		r.EstimatedAmount,
		r.Setting,
		r.AdditionalNotes,
	}
	if withModifiers {
		vals = append(vals, r.Modifiers)
	}
	return vals
}
