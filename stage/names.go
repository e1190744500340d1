package stage

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	space = regexp.MustCompile(`\s+`)
	junk  = regexp.MustCompile(`[^a-zA-Z0-9 _]+`)
)

// keywords is the set of SQL keywords that cannot be used bare as column
// identifiers. Columns colliding with one get an indexed fallback name.
var keywords = map[string]bool{
	"add": true, "all": true, "alter": true, "and": true, "as": true,
	"asc": true, "between": true, "by": true, "case": true, "check": true,
	"column": true, "constraint": true, "create": true, "cross": true,
	"current_date": true, "current_time": true, "current_timestamp": true,
	"default": true, "delete": true, "desc": true, "distinct": true,
	"drop": true, "else": true, "end": true, "escape": true, "exists": true,
	"foreign": true, "from": true, "full": true, "group": true,
	"having": true, "in": true, "index": true, "inner": true, "insert": true,
	"into": true, "is": true, "join": true, "key": true, "left": true,
	"like": true, "limit": true, "not": true, "null": true, "of": true,
	"offset": true, "on": true, "or": true, "order": true, "outer": true,
	"primary": true, "references": true, "right": true, "select": true,
	"set": true, "table": true, "then": true, "to": true, "union": true,
	"unique": true, "update": true, "values": true, "when": true,
	"where": true,
}

// SanitizeColumns turns arbitrary user-supplied column names into
// identifiers safe for the staging table: lower case, snake case,
// disallowed characters stripped, keywords and collisions dodged. A name
// that sanitizes down to nothing becomes cl<idx>.
func SanitizeColumns(rawnames []string) []string {
	out := make([]string, len(rawnames))

	counter := map[string]int{}
	for idx, item := range rawnames {
		item = strings.TrimSpace(item)
		item = junk.ReplaceAllString(item, "")
		item = space.ReplaceAllString(item, "_")
		item = strings.ToLower(item)

		if keywords[item] {
			item = fmt.Sprintf("cl%d", idx)
		}
		if len(item) == 0 {
			out[idx] = fmt.Sprintf("cl%d", idx)
			continue
		}
		// identifiers cannot start with a number
		if item[0] >= '0' && item[0] <= '9' {
			item = fmt.Sprintf("cl%d%s", idx, item)
		}

		counter[item]++
		if counter[item] == 1 {
			out[idx] = item
		} else {
			out[idx] = fmt.Sprintf("%s%d", item, counter[item])
		}
	}
	return out
}
