package extract

import (
	"regexp"
	"strings"
	"time"
)

// compactDateRe matches the compact passport-style date token: two digits,
// a three-letter uppercase month abbreviation, four digits (e.g. 15JAN1985).
var compactDateRe = regexp.MustCompile(`^(\d{2})([A-Z]{3})(\d{4})$`)

// NormalizeDate re-renders a compact passport-style date as "DD Mon YYYY".
// Any other input (already-normalized dates, slash dates, arbitrary text)
// passes through unchanged. The function never fails, never invents missing
// information, and is idempotent: its own output no longer matches the
// compact pattern.
func NormalizeDate(value string) string {
	m := compactDateRe.FindStringSubmatch(value)
	if m == nil {
		return value
	}

	month := strings.ToUpper(m[2][:1]) + strings.ToLower(m[2][1:])
	parsed, err := time.Parse("02 Jan 2006", m[1]+" "+month+" "+m[3])
	if err != nil {
		// Not a real calendar date (e.g. month "XYZ"); leave it alone.
		return value
	}
	return parsed.Format("02 Jan 2006")
}
