package postgresdb

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	dangerousChars    = regexp.MustCompile(`[;'"\\()]`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// QuoteIdentifier validates and quotes an SQL identifier. It accepts
// "column", "table.column" and an optional single alias ("table.column alias").
func QuoteIdentifier(name string) (string, error) {
	if dangerousChars.MatchString(name) {
		return "", fmt.Errorf("identifier contains dangerous characters: %s", name)
	}

	parts := strings.Split(name, " ")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid identifier format (too many parts): %s", name)
	}

	quoted, err := quoteQualified(parts[0])
	if err != nil {
		return "", err
	}
	if len(parts) == 1 {
		return quoted, nil
	}

	if !identifierPattern.MatchString(parts[1]) {
		return "", fmt.Errorf("invalid identifier alias: %s", parts[1])
	}
	return quoted + ` "` + parts[1] + `"`, nil
}

// quoteQualified quotes "name" or "schema.name".
func quoteQualified(name string) (string, error) {
	segments := strings.Split(name, ".")
	if len(segments) > 2 {
		return "", fmt.Errorf("invalid identifier format (too many segments): %s", name)
	}

	quoted := make([]string, len(segments))
	for i, segment := range segments {
		if !identifierPattern.MatchString(segment) {
			return "", fmt.Errorf("invalid identifier segment at position %d: %q", i, segment)
		}
		quoted[i] = `"` + segment + `"`
	}
	return strings.Join(quoted, "."), nil
}
