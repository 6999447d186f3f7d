// Package envfile reads KEY=VALUE environment files passed to the engine and
// renders environment entries as shell export lines.
package envfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

// Entry is one KEY=VALUE assignment.
type Entry struct {
	Key   string
	Value string
}

var readFileFunc = os.ReadFile

// Read loads and parses the env file at path.
func Read(path string) ([]Entry, error) {
	data, err := readFileFunc(path)
	if err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFileFmt, path, err)
	}
	entries, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf(messages.EnvfileInvalidFmt, path, err)
	}
	return entries, nil
}

// Parse reads env file content into entries ordered by first appearance.
// A repeated key keeps its first position and takes the last value.
func Parse(content string) ([]Entry, error) {
	entries := []Entry{}
	if content == "" {
		return entries, nil
	}

	index := make(map[string]int)
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if !ok {
			continue
		}
		if i, seen := index[key]; seen {
			entries[i].Value = value
			continue
		}
		index[key] = len(entries)
		entries = append(entries, Entry{Key: key, Value: value})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}
	return entries, nil
}

// FormatExports renders entries as `export KEY=VALUE` lines, quoting values
// that need it.
func FormatExports(entries []Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "export %s=%s\n", e.Key, encodeValue(e.Value))
	}
	return b.String()
}

// parseLine parses a single line and returns key/value when present.
func parseLine(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	key := strings.TrimSpace(trimmed[:idx])
	if key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	value := strings.TrimSpace(trimmed[idx+1:])
	switch {
	case strings.HasPrefix(value, `"`):
		closing := findClosingDoubleQuote(value)
		if closing < 0 {
			return "", "", false, fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
		}
		if err := validateQuotedValueSuffix(value[closing+1:]); err != nil {
			return "", "", false, err
		}
		value = unescapeDoubleQuotedValue(value[1:closing])
	case strings.HasPrefix(value, `'`):
		closing := strings.IndexByte(value[1:], '\'')
		if closing < 0 {
			return "", "", false, fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
		}
		closing++
		if err := validateQuotedValueSuffix(value[closing+1:]); err != nil {
			return "", "", false, err
		}
		value = value[1:closing]
	default:
		if hash := strings.Index(value, " #"); hash >= 0 {
			value = strings.TrimSpace(value[:hash])
		}
	}
	return key, value, true, nil
}

// findClosingDoubleQuote returns the index of the first unescaped closing quote in value.
func findClosingDoubleQuote(value string) int {
	escaped := false
	for i := 1; i < len(value); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch value[i] {
		case '\\':
			escaped = true
		case '"':
			return i
		}
	}
	return -1
}

func validateQuotedValueSuffix(suffix string) error {
	trimmed := strings.TrimSpace(suffix)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}
	return fmt.Errorf(messages.EnvfileInvalidQuotedSuffix)
}

func unescapeDoubleQuotedValue(escaped string) string {
	var b strings.Builder
	b.Grow(len(escaped))
	for i := 0; i < len(escaped); i++ {
		if escaped[i] == '\\' && i+1 < len(escaped) {
			switch escaped[i+1] {
			case '\\', '"', '$', '`':
				b.WriteByte(escaped[i+1])
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			}
		}
		b.WriteByte(escaped[i])
	}
	return b.String()
}

// encodeValue single-quotes val when a POSIX shell would otherwise split or
// expand it. Inside single quotes only the quote itself needs escaping, so
// newlines survive `eval` and `.` unchanged.
func encodeValue(val string) string {
	if val != "" && !strings.ContainsAny(val, " \t#\n\r\"'$`\\;&|<>(){}[]*?!~") {
		return val
	}
	return "'" + strings.ReplaceAll(val, "'", `'\''`) + "'"
}
