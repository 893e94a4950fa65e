package catalog

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestRoundTripAllPairs(t *testing.T) {
	c := Default()
	inputs := []float64{-40, 0, 1, 3.5, 100, 12345.678}

	for _, conv := range c.All() {
		inv, err := c.Find(conv.Inverse)
		if err != nil {
			t.Fatalf("%s: inverse %q not found: %v", conv.Key, conv.Inverse, err)
		}
		if inv.Inverse != conv.Key {
			t.Errorf("%s: inverse of inverse is %q", conv.Key, inv.Inverse)
		}
		if inv.Category != conv.Category {
			t.Errorf("%s: inverse %s is in category %s", conv.Key, inv.Key, inv.Category)
		}
		for _, x := range inputs {
			got := conv.Fn(inv.Fn(x))
			if math.Abs(got-x) > 1e-9*math.Max(1, math.Abs(x)) {
				t.Errorf("%s(%s(%v)) = %v, want %v", conv.Key, inv.Key, x, got, x)
			}
		}
	}
}

func TestMilesKilometers(t *testing.T) {
	c := Default()
	kmMi, _ := c.Find("Kilometers to Miles")
	miKm, _ := c.Find("Miles to Kilometers")

	if got := miKm.Fn(kmMi.Fn(100)); math.Abs(got-100) > 1e-9 {
		t.Fatalf("milesToKm(kmToMiles(100)) = %v", got)
	}
}

func TestTemperatureFixedPoints(t *testing.T) {
	c := Default()
	cf, err := c.Lookup(Temperature, "Celsius to Fahrenheit")
	if err != nil {
		t.Fatal(err)
	}
	fc, err := c.Lookup(Temperature, "f-c")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		fn   func(float64) float64
		in   float64
		want float64
	}{
		{"freezing", cf.Fn, 0, 32},
		{"boiling", cf.Fn, 100, 212},
		{"crossover", cf.Fn, -40, -40},
		{"freezing back", fc.Fn, 32, 0},
		{"boiling back", fc.Fn, 212, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookupRestrictsToCategory(t *testing.T) {
	c := Default()

	if _, err := c.Lookup(Weight, "Kilometers to Miles"); !errors.Is(err, ErrUnknownConversion) {
		t.Fatalf("expected ErrUnknownConversion, got %v", err)
	}
	if _, err := c.Lookup(Weight, "Grams to Ounces"); !errors.Is(err, ErrUnknownConversion) {
		t.Fatalf("expected ErrUnknownConversion, got %v", err)
	}
	if _, err := c.Lookup("Time", "km-mi"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}

	conv, err := c.Lookup(Weight, "kg-lb")
	if err != nil {
		t.Fatal(err)
	}
	if conv.Label != "Kilograms to Pounds" || conv.To != "pounds" {
		t.Fatalf("unexpected conversion %+v", conv)
	}
}

func TestCategories(t *testing.T) {
	c := Default()
	want := []Category{Length, Weight, Temperature, Volume, Area}
	got := c.Categories()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d = %s, want %s", i, got[i], want[i])
		}
	}

	convs, err := c.Conversions(Length)
	if err != nil {
		t.Fatal(err)
	}
	if len(convs) != 4 {
		t.Errorf("Length has %d conversions, want 4", len(convs))
	}
}

func TestParseCategory(t *testing.T) {
	c := Default()
	for _, in := range []string{"length", "LENGTH", " Length ", "Length"} {
		got, err := c.ParseCategory(in)
		if err != nil {
			t.Errorf("ParseCategory(%q): %v", in, err)
			continue
		}
		if got != Length {
			t.Errorf("ParseCategory(%q) = %s", in, got)
		}
	}
	if _, err := c.ParseCategory("speed"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestResultEntry(t *testing.T) {
	c := Default()
	conv, _ := c.Find("sqft-sqm")
	got := conv.Apply(10).Entry()
	want := "10.0000 Square Feet = 0.9290 square meters"
	if got != want {
		t.Fatalf("Entry() = %q, want %q", got, want)
	}

	conv, _ = c.Find("c-f")
	if got := conv.Apply(100).Entry(); got != "100.0000 Celsius = 212.0000 °F" {
		t.Fatalf("Entry() = %q", got)
	}
}

func TestParseEntry(t *testing.T) {
	e, err := ParseEntry("10.0000 Square Feet = 0.9290 square meters")
	if err != nil {
		t.Fatal(err)
	}
	if e.Value != 10 || e.From != "Square Feet" || e.Result != 0.929 || e.To != "square meters" {
		t.Fatalf("unexpected entry %+v", e)
	}

	if _, err := ParseEntry("-1.5000 Celsius = 29.3000 °F"); err == nil {
		t.Fatal("expected error for value without four decimals")
	}
	if _, err := ParseEntry("hello"); err == nil {
		t.Fatal("expected error for garbage")
	}
}

func TestValidateHistory(t *testing.T) {
	c := Default()
	good := "1.0000 Kilometers = 0.6215 miles\n-40.0000 Celsius = -40.0000 °F"
	if line, err := c.ValidateHistory(good); err != nil {
		t.Fatalf("line %d: %v", line, err)
	}

	bad := "1.0000 Kilometers = 0.6215 miles\n1.0000 Parsecs = 3.2600 lightyears"
	line, err := c.ValidateHistory(bad)
	if !errors.Is(err, ErrUnknownConversion) || line != 2 {
		t.Fatalf("got line %d err %v", line, err)
	}

	if line, err := c.ValidateHistory(good + "\n"); err == nil || line != 3 {
		t.Fatalf("trailing newline should fail on line 3, got %d %v", line, err)
	}
}

func TestQuickReferenceAndFacts(t *testing.T) {
	for _, cat := range Default().Categories() {
		if len(QuickReference(cat)) == 0 {
			t.Errorf("no quick reference for %s", cat)
		}
	}
	if len(QuickReference("Time")) != 0 {
		t.Errorf("unexpected reference for unknown category")
	}

	r := rand.New(rand.NewSource(1))
	fact := RandomFact(r)
	found := false
	for _, f := range FunFacts() {
		if f == fact {
			found = true
		}
	}
	if !found {
		t.Fatalf("RandomFact returned unknown fact %q", fact)
	}
}

func TestNewPanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	id := func(x float64) float64 { return x }
	New(
		Conversion{Key: "a", Category: Length, Label: "A", Fn: id},
		Conversion{Key: "a", Category: Length, Label: "B", Fn: id},
	)
}
