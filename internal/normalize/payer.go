package normalize

import (
	"regexp"
	"strings"
)

// Tall-format payer cells combine name and id as "Name [id]".
var payerIDPattern = regexp.MustCompile(`(.*)\[(.*?)\]`)

// SplitPayer splits a combined payer field into name and id. Without the
// bracket pattern the whole field is the name and id is empty.
func SplitPayer(raw string) (name, id string) {
	if m := payerIDPattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return raw, ""
}
