package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category groups conversions that share a physical quantity.
type Category string

const (
	Length      Category = "Length"
	Weight      Category = "Weight"
	Temperature Category = "Temperature"
	Volume      Category = "Volume"
	Area        Category = "Area"
)

// Icon returns the emoji shown next to the category in pickers.
func (c Category) Icon() string {
	switch c {
	case Length:
		return "📏"
	case Weight:
		return "⚖️"
	case Temperature:
		return "🌡️"
	case Volume:
		return "🧊"
	case Area:
		return "📐"
	default:
		return "•"
	}
}

func (c Category) String() string {
	return string(c)
}

// normalizeCategory turns "LENGTH", "length" or " Length " into "Length".
// Casers are stateful, so one is created per call.
func normalizeCategory(s string) Category {
	return Category(cases.Title(language.English).String(strings.TrimSpace(s)))
}

// Conversion is one immutable entry of the catalog.
type Conversion struct {
	// Key is a short, stable identifier, e.g. "km-mi".
	Key      string   `json:"key" yaml:"key"`
	Category Category `json:"category" yaml:"category"`
	// Label is the human-readable name, e.g. "Kilometers to Miles".
	Label string `json:"label" yaml:"label"`
	// From is the source unit as shown in entries, e.g. "Kilometers".
	From string `json:"from" yaml:"from"`
	// To is the target unit label, e.g. "miles".
	To string `json:"to" yaml:"to"`
	// Inverse is the key of the reverse conversion, if any.
	Inverse string `json:"inverse,omitempty" yaml:"inverse,omitempty"`

	Fn func(float64) float64 `json:"-" yaml:"-"`
}

// Apply runs the conversion on v. The result is not rounded.
func (c Conversion) Apply(v float64) Result {
	return Result{
		Conversion: c.Label,
		Value:      v,
		Output:     c.Fn(v),
		From:       c.From,
		To:         c.To,
	}
}

// Result is the outcome of a single conversion.
type Result struct {
	Conversion string  `json:"conversion" yaml:"conversion"`
	Value      float64 `json:"value" yaml:"value"`
	Output     float64 `json:"result" yaml:"result"`
	From       string  `json:"fromUnit" yaml:"fromUnit"`
	To         string  `json:"toUnit" yaml:"toUnit"`
}

// Entry formats the result the way it is stored in history and favorites,
// e.g. "10.0000 Kilometers = 6.2150 miles".
func (r Result) Entry() string {
	return FormatEntry(r.Value, r.From, r.Output, r.To)
}

// FormatEntry formats a conversion with four decimal places.
func FormatEntry(value float64, from string, result float64, to string) string {
	return fmt.Sprintf("%.4f %s = %.4f %s", value, from, result, to)
}
