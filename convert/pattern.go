package convert

import (
	"fmt"
	"regexp"
)

// SeparatorPattern splits lines on a confirmed separator expression while
// consuming arbitrary whitespace around each occurrence. It is compiled
// once and reused for every line of the run.
type SeparatorPattern struct {
	re   *regexp.Regexp
	expr string
}

// CompilePattern builds a SeparatorPattern from a raw separator expression.
// The expression may be a literal or regular-expression syntax. An
// uncompilable expression is a configuration error that must terminate the
// run; it is never downgraded to a literal match.
func CompilePattern(expr string) (*SeparatorPattern, error) {
	re, err := regexp.Compile(`\s*(?:` + expr + `)\s*`)
	if err != nil {
		return nil, fmt.Errorf("invalid separator pattern %q: %w", expr, err)
	}
	return &SeparatorPattern{re: re, expr: expr}, nil
}

// Split splits a line into raw fields.
func (p *SeparatorPattern) Split(line string) []string {
	return p.re.Split(line, -1)
}

// Expr returns the raw expression the pattern was compiled from.
func (p *SeparatorPattern) Expr() string {
	return p.expr
}
