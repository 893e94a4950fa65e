package catalog

import (
	"math/rand"
)

var quickReference = map[Category][]string{
	Length:      {"1 kilometer ≈ 0.621371 miles", "1 inch = 2.54 centimeters"},
	Weight:      {"1 kilogram ≈ 2.20462 pounds"},
	Temperature: {"0°C = 32°F", "100°C = 212°F"},
	Volume:      {"1 liter ≈ 0.264172 gallons"},
	Area:        {"1 square foot ≈ 0.092903 square meters"},
}

var funFacts = []string{
	"The metric system is used by 95% of the world's population.",
	"The United States is one of only three countries that don't use the metric system.",
	"The kilogram was originally defined as the mass of one liter of water at 4°C.",
	"The inch was once defined as the length of three grains of barley laid end to end.",
	"The Fahrenheit scale was created by Daniel Gabriel Fahrenheit in 1724.",
	"A marathon is exactly 42.195 kilometers or 26.2 miles.",
	"The coldest temperature ever recorded on Earth was -128.6°F (-89.2°C) in Antarctica.",
	"One gallon of water weighs approximately 8.34 pounds (3.78 kilograms).",
	"The Great Pyramid of Giza originally had a height of 146.5 meters (480.6 feet).",
	"An Olympic-size swimming pool holds 2,500,000 liters (660,000 gallons) of water.",
}

// QuickReference returns handy rule-of-thumb lines for a category.
// Unknown categories have no reference.
func QuickReference(category Category) []string {
	lines := quickReference[category]
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// FunFacts returns all fun facts.
func FunFacts() []string {
	out := make([]string, len(funFacts))
	copy(out, funFacts)
	return out
}

// RandomFact picks a fun fact. A nil r uses the global source.
func RandomFact(r *rand.Rand) string {
	if r == nil {
		return funFacts[rand.Intn(len(funFacts))]
	}
	return funFacts[r.Intn(len(funFacts))]
}
