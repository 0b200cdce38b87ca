// Package dates parses the date arguments brag accepts: plain
// YYYY-MM-DD plus natural language like "yesterday" or "last friday".
package dates

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var parser *when.Parser

func init() {
	parser = when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)
}

// Parse resolves input to a calendar day (YYYY-MM-DD). Empty input
// means today.
func Parse(input string, now time.Time) (string, error) {
	if input == "" {
		return now.Format("2006-01-02"), nil
	}

	if t, err := time.Parse("2006-01-02", input); err == nil {
		return t.Format("2006-01-02"), nil
	}

	result, err := parser.Parse(input, now)
	if err != nil {
		return "", fmt.Errorf("failed to parse date %q: %w", input, err)
	}
	if result == nil {
		return "", fmt.Errorf("unrecognized date %q (use YYYY-MM-DD or e.g. \"yesterday\")", input)
	}

	return result.Time.Format("2006-01-02"), nil
}
