package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// entryPattern matches "<value> <From> = <result> <To>" where both numbers
// are written by FormatEntry.
var entryPattern = regexp.MustCompile(`^([-+]?(?:\d+\.\d{4}|Inf|NaN)) (.+?) = ([-+]?(?:\d+\.\d{4}|Inf|NaN)) (.+)$`)

// ParsedEntry is the structured form of a history or favorite entry.
type ParsedEntry struct {
	Value  float64
	From   string
	Result float64
	To     string
}

// ParseEntry parses a line produced by Result.Entry.
func ParseEntry(line string) (ParsedEntry, error) {
	m := entryPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return ParsedEntry{}, fmt.Errorf("malformed entry %q", line)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return ParsedEntry{}, fmt.Errorf("invalid value in entry %q: %w", line, err)
	}
	result, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return ParsedEntry{}, fmt.Errorf("invalid result in entry %q: %w", line, err)
	}

	return ParsedEntry{Value: value, From: m[2], Result: result, To: m[4]}, nil
}

// ValidateEntry checks that line is a well-formed entry of a conversion in
// this catalog.
func (c *Catalog) ValidateEntry(line string) error {
	e, err := ParseEntry(line)
	if err != nil {
		return err
	}
	for _, conv := range c.All() {
		if conv.From == e.From && conv.To == e.To {
			return nil
		}
	}
	return fmt.Errorf("%w: no conversion from %q to %q", ErrUnknownConversion, e.From, e.To)
}

// ValidateHistory checks every line of an exported history text and
// returns the first offending line number (1-based) with its error.
func (c *Catalog) ValidateHistory(text string) (int, error) {
	for i, line := range strings.Split(text, "\n") {
		if err := c.ValidateEntry(line); err != nil {
			return i + 1, err
		}
	}
	return 0, nil
}
