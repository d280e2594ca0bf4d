package source

import (
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"strata/internal/merge"
)

// indentationSignatures are parser messages that plausibly stem from stray
// leading whitespace on a top-level key line. Only these failures qualify for
// lenient recovery; anything else propagates untouched.
var indentationSignatures = []string{
	"mapping values are not allowed in this context",
	"did not find expected key",
	"found character that cannot start any token",
}

// parseYAML parses raw strictly. When lenient is set and the failure looks
// like an indentation mistake, it strips a single leading space from
// space-led lines, re-parses once, and logs a warning naming the file and the
// correction. The warning carries parser positions only, never file content.
// If the heuristic does not apply or the corrected text still fails, the
// original strict error is returned.
func parseYAML(path string, raw []byte, lenient bool, logger *slog.Logger) (merge.Map, error) {
	var data any
	strictErr := yaml.Unmarshal(raw, &data)
	if strictErr == nil {
		return requireMapping(path, data)
	}
	if !lenient || !indentationFailure(strictErr) {
		return nil, &ParseError{Path: path, Err: strictErr}
	}

	corrected, touched := stripSingleLeadingSpace(string(raw))
	if touched == 0 {
		return nil, &ParseError{Path: path, Err: strictErr}
	}

	logger.Warn("strict YAML parse failed; retrying with single leading space stripped",
		"file", path,
		"lines_corrected", touched,
		"parse_error", strictErr.Error(),
	)

	data = nil
	if err := yaml.Unmarshal([]byte(corrected), &data); err != nil {
		// The correction did not help; surface the original failure.
		return nil, &ParseError{Path: path, Err: strictErr}
	}
	return requireMapping(path, data)
}

func indentationFailure(err error) bool {
	msg := err.Error()
	for _, signature := range indentationSignatures {
		if strings.Contains(msg, signature) {
			return true
		}
	}
	return false
}

// stripSingleLeadingSpace removes exactly one leading space from every line
// that starts with a space, preserving relative indentation of nested
// structure. It reports how many lines were touched.
func stripSingleLeadingSpace(text string) (string, int) {
	lines := strings.Split(text, "\n")
	touched := 0
	for i, line := range lines {
		if strings.HasPrefix(line, " ") {
			lines[i] = line[1:]
			touched++
		}
	}
	return strings.Join(lines, "\n"), touched
}
