package modal

import "regexp"

// compileSmartcase builds a regexp from query using vim-style smartcase:
// an all-lowercase query is case-insensitive, any uppercase letter makes it
// case-sensitive. An invalid pattern returns a nil regexp, not an error —
// the "Invalid pattern yields zero results" rule.
func compileSmartcase(query string) *regexp.Regexp {
	if query == "" {
		return nil
	}
	pattern := query
	if !hasUpper(query) {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}

func hasUpper(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

// matchLines returns the 1-based line numbers of every line in lines that
// the query matches, in ascending order.
func matchLines(lines []string, query string) []int {
	re := compileSmartcase(query)
	if re == nil {
		return nil
	}
	var hits []int
	for i, line := range lines {
		if re.MatchString(line) {
			hits = append(hits, i+1)
		}
	}
	return hits
}

// nextMatch returns the first hit strictly after current, wrapping to the
// first hit overall when current is at or past the last one. reverse finds
// the nearest hit strictly before current instead, wrapping to the last.
func nextMatch(hits []int, current int, reverse bool) (int, bool) {
	if len(hits) == 0 {
		return 0, false
	}
	if reverse {
		for i := len(hits) - 1; i >= 0; i-- {
			if hits[i] < current {
				return hits[i], true
			}
		}
		return hits[len(hits)-1], true
	}
	for _, h := range hits {
		if h > current {
			return h, true
		}
	}
	return hits[0], true
}
