package domain

import (
	"strconv"
	"strings"
)

// QuantityMagnitude parses the leading numeric token of a free-text
// quantity such as "3 boxes" or "2.5 kg". Quantities are advisory data
// entered by users, so a missing or unparseable magnitude is not an
// error; callers decide how to degrade.
func QuantityMagnitude(quantity string) (float64, bool) {
	fields := strings.Fields(quantity)
	if len(fields) == 0 {
		return 0, false
	}
	magnitude, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return magnitude, true
}

// FormatQuantity renders a reconciled magnitude back into the textual
// quantity column ("6", "2.5"). The unit suffix of the original value is
// dropped in this representation.
func FormatQuantity(magnitude float64) string {
	return strconv.FormatFloat(magnitude, 'f', -1, 64)
}
