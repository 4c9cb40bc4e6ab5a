package modal

import "regexp"

// inlineLinkRe matches Markdown inline links [text](url); bareURLRe
// matches a bare http(s):// URL not already inside such a link.
var (
	inlineLinkRe = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)\)`)
	bareURLRe    = regexp.MustCompile(`https?://[^\s)]+`)
)

// URLsInLine returns the deduplicated URLs found in one line of Markdown
// source, in order of first appearance — the "URL picker" rule.
func URLsInLine(line string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(u string) {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	covered := inlineLinkRe.FindAllStringSubmatchIndex(line, -1)
	for _, m := range covered {
		add(line[m[2]:m[3]])
	}
	for _, bare := range bareURLRe.FindAllString(stripRanges(line, covered), -1) {
		add(bare)
	}
	return out
}

// stripRanges blanks out the byte ranges already matched by inline links
// so a bare-URL scan doesn't double-count a URL inside [text](url).
func stripRanges(s string, matches [][]int) string {
	b := []byte(s)
	for _, m := range matches {
		for i := m[0]; i < m[1] && i < len(b); i++ {
			b[i] = ' '
		}
	}
	return string(b)
}
