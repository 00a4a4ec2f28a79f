package model

// Hospital is the registry metadata for one campus, resolved once per run
// and immutable for its duration.
type Hospital struct {
	CampusID         string
	HospitalName     string
	ZipCode          string
	RawFilename      string
	HealthcareSystem string
}
