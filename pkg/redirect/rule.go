// Package redirect turns CSV redirect rules into an Nginx configuration fragment.
//
// The pipeline is Parse (CSV stream to []Rule), BuildConf (rules to text) and
// WriteConf (text to file). Rule order is preserved end to end since Nginx
// evaluates regex locations in the order they appear.
package redirect

import "fmt"

// Column names expected in the CSV header row.
const (
	ColumnMatchPattern    = "match_pattern"
	ColumnRedirectPattern = "redirect_pattern"
)

// Rule pairs a location regex with the target it redirects to.
//
// Neither field is validated or normalized. RedirectPattern may reference
// capture groups from MatchPattern ($1, $2, ...).
type Rule struct {
	MatchPattern    string `csv:"match_pattern"`
	RedirectPattern string `csv:"redirect_pattern"`
}

// Conf renders the rule as a case-insensitive regex location block that
// returns a permanent redirect. Both fields are substituted verbatim; a
// pattern containing literal braces will produce invalid Nginx syntax.
func (r Rule) Conf() string {
	return fmt.Sprintf("location ~* %s {\n    return 301 %s;\n}\n", r.MatchPattern, r.RedirectPattern)
}
