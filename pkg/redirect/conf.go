package redirect

import "strings"

// BuildConf renders rules in order, separating blocks with one blank line.
// An empty rule set yields an empty string.
func BuildConf(rules []Rule) string {
	blocks := make([]string, len(rules))
	for i, r := range rules {
		blocks[i] = r.Conf()
	}
	return strings.Join(blocks, "\n")
}
