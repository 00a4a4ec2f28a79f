package normalize

import (
	"strings"

	"github.com/Harshitha061298/Clearcare-Project/internal/audit"
	"github.com/Harshitha061298/Clearcare-Project/internal/config"
)

// CodeTypes resolves raw code-type tokens against the configured
// normalization map and allow-list, reporting every lookup to the run's
// audit report.
type CodeTypes struct {
	allowed map[string]bool
	mapping map[string]string
	report  *audit.Report
}

// NewCodeTypes builds a resolver bound to one run's extract config and report.
func NewCodeTypes(ex *config.Extract, report *audit.Report) *CodeTypes {
	return &CodeTypes{
		allowed: ex.AllowedCodeTypes,
		mapping: ex.CodeTypeMap,
		report:  report,
	}
}

// Resolve normalizes raw (trim + uppercase), maps it to its canonical code
// type, and reports the association. It returns the canonical type and true
// only when that type is in the allowed set; otherwise the raw token's
// unrecognized counter is bumped and ok is false. A token absent from the
// map normalizes to the empty string, which is never allowed.
func (c *CodeTypes) Resolve(raw string) (canonical string, ok bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	canonical = c.mapping[raw]
	c.report.MappingUsed(raw, canonical)

	if !c.allowed[canonical] {
		c.report.Unrecognized(raw)
		return "", false
	}
	return canonical, true
}
