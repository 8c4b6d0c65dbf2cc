package profilesync

import "regexp"

var yearMonthRE = regexp.MustCompile(`^\d{4}-\d{2}$`)

// NormalizeDate converts a partial "YYYY-MM" value to "YYYY-MM-01" so it can
// be stored in a DATE column. Empty input stays empty (the column type maps
// empty to SQL NULL at bind time) and full dates pass through untouched.
func NormalizeDate(s string) string {
	if s == "" {
		return ""
	}
	if yearMonthRE.MatchString(s) {
		return s + "-01"
	}
	return s
}
