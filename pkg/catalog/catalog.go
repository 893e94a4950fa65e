package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownConversion is returned when a conversion is not part of the
	// requested category's option set.
	ErrUnknownConversion = errors.New("unknown conversion")
	// ErrUnknownCategory is returned for categories the catalog does not know.
	ErrUnknownCategory = errors.New("unknown category")
)

const (
	kmPerMile    = 1.609
	lbPerKg      = 2.205
	cmPerInch    = 2.54
	galPerLiter  = 0.264172
	sqmPerSqFoot = 0.092903
)

var defaultCatalog = New(
	Conversion{Key: "km-mi", Category: Length, Label: "Kilometers to Miles", From: "Kilometers", To: "miles", Inverse: "mi-km",
		Fn: func(km float64) float64 { return km / kmPerMile }},
	Conversion{Key: "mi-km", Category: Length, Label: "Miles to Kilometers", From: "Miles", To: "kilometers", Inverse: "km-mi",
		Fn: func(mi float64) float64 { return mi * kmPerMile }},
	Conversion{Key: "in-cm", Category: Length, Label: "Inches to Centimeters", From: "Inches", To: "centimeters", Inverse: "cm-in",
		Fn: func(in float64) float64 { return in * cmPerInch }},
	Conversion{Key: "cm-in", Category: Length, Label: "Centimeters to Inches", From: "Centimeters", To: "inches", Inverse: "in-cm",
		Fn: func(cm float64) float64 { return cm / cmPerInch }},

	Conversion{Key: "kg-lb", Category: Weight, Label: "Kilograms to Pounds", From: "Kilograms", To: "pounds", Inverse: "lb-kg",
		Fn: func(kg float64) float64 { return kg * lbPerKg }},
	Conversion{Key: "lb-kg", Category: Weight, Label: "Pounds to Kilograms", From: "Pounds", To: "kilograms", Inverse: "kg-lb",
		Fn: func(lb float64) float64 { return lb / lbPerKg }},

	Conversion{Key: "c-f", Category: Temperature, Label: "Celsius to Fahrenheit", From: "Celsius", To: "°F", Inverse: "f-c",
		Fn: func(c float64) float64 { return c*9/5 + 32 }},
	Conversion{Key: "f-c", Category: Temperature, Label: "Fahrenheit to Celsius", From: "Fahrenheit", To: "°C", Inverse: "c-f",
		Fn: func(f float64) float64 { return (f - 32) * 5 / 9 }},

	Conversion{Key: "l-gal", Category: Volume, Label: "Liters to Gallons", From: "Liters", To: "gallons", Inverse: "gal-l",
		Fn: func(l float64) float64 { return l * galPerLiter }},
	Conversion{Key: "gal-l", Category: Volume, Label: "Gallons to Liters", From: "Gallons", To: "liters", Inverse: "l-gal",
		Fn: func(gal float64) float64 { return gal / galPerLiter }},

	Conversion{Key: "sqft-sqm", Category: Area, Label: "Square Feet to Square Meters", From: "Square Feet", To: "square meters", Inverse: "sqm-sqft",
		Fn: func(sqft float64) float64 { return sqft * sqmPerSqFoot }},
	Conversion{Key: "sqm-sqft", Category: Area, Label: "Square Meters to Square Feet", From: "Square Meters", To: "square feet", Inverse: "sqft-sqm",
		Fn: func(sqm float64) float64 { return sqm / sqmPerSqFoot }},
)

// Default returns the built-in catalog. It is shared and must not be modified.
func Default() *Catalog {
	return defaultCatalog
}

// Catalog is a read-only table of conversions grouped by category.
type Catalog struct {
	categories []Category
	byCategory map[Category][]Conversion
	// byName indexes every conversion by both label and key.
	byName map[string]Conversion
}

// New builds a catalog. Categories keep the order in which they first
// appear. Duplicate labels or keys panic, since catalogs are defined at
// startup.
func New(conversions ...Conversion) *Catalog {
	c := &Catalog{
		byCategory: make(map[Category][]Conversion),
		byName:     make(map[string]Conversion),
	}

	for _, conv := range conversions {
		if conv.Fn == nil {
			panic(fmt.Sprintf("conversion %q has no function", conv.Label))
		}
		if _, ok := c.byCategory[conv.Category]; !ok {
			c.categories = append(c.categories, conv.Category)
		}
		c.byCategory[conv.Category] = append(c.byCategory[conv.Category], conv)

		for _, name := range []string{conv.Label, conv.Key} {
			if name == "" {
				continue
			}
			if _, dup := c.byName[name]; dup {
				panic(fmt.Sprintf("duplicate conversion name %q", name))
			}
			c.byName[name] = conv
		}
	}

	return c
}

// Categories returns all categories in display order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// ParseCategory resolves a category name case-insensitively.
func (c *Catalog) ParseCategory(s string) (Category, error) {
	cat := normalizeCategory(s)
	if _, ok := c.byCategory[cat]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return cat, nil
}

// Conversions returns the option set of a category.
func (c *Catalog) Conversions(category Category) ([]Conversion, error) {
	convs, ok := c.byCategory[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	out := make([]Conversion, len(convs))
	copy(out, convs)
	return out, nil
}

// Lookup returns the conversion named by label or key, provided it belongs
// to category.
func (c *Catalog) Lookup(category Category, name string) (Conversion, error) {
	if _, ok := c.byCategory[category]; !ok {
		return Conversion{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	conv, ok := c.byName[name]
	if !ok || conv.Category != category {
		return Conversion{}, fmt.Errorf("%w: %q is not a %s conversion", ErrUnknownConversion, name, category)
	}
	return conv, nil
}

// Find returns the conversion named by label or key in any category.
func (c *Catalog) Find(name string) (Conversion, error) {
	conv, ok := c.byName[name]
	if !ok {
		return Conversion{}, fmt.Errorf("%w: %q", ErrUnknownConversion, name)
	}
	return conv, nil
}

// All returns every conversion, ordered by category then definition order.
func (c *Catalog) All() []Conversion {
	var out []Conversion
	for _, cat := range c.categories {
		out = append(out, c.byCategory[cat]...)
	}
	return out
}
