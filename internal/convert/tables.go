// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

// unitDef describes one unit of a linear category.
// factor is the number of base units in one unit.
type unitDef struct {
	name    string
	factor  float64
	aliases []string
}

// tableDef is the full definition of a linear category.
type tableDef struct {
	base  string // display name of the base unit, singular
	units []unitDef
	// defaultTo is the index of the default target unit.
	defaultTo int
}

// Factors keep the rounded values the calculator has always shipped with so
// that results stay identical across releases.
var linearTables = map[Category]tableDef{
	Length: {
		base:      "meter",
		defaultTo: 2,
		units: []unitDef{
			{"Millimeters", 0.001, []string{"mm", "millimeter", "millimetre"}},
			{"Centimeters", 0.01, []string{"cm", "centimeter", "centimetre"}},
			{"Meters", 1, []string{"m", "meter", "metre"}},
			{"Kilometers", 1000, []string{"km", "kilometer", "kilometre"}},
			{"Inches", 0.0254, []string{"in", "inch", `"`}},
			{"Feet", 0.3048, []string{"ft", "foot", "'"}},
			{"Yards", 0.9144, []string{"yd", "yard"}},
			{"Miles", 1609.34, []string{"mi", "mile"}},
		},
	},
	Weight: {
		base:      "gram",
		defaultTo: 2,
		units: []unitDef{
			{"Milligrams", 0.001, []string{"mg", "milligram"}},
			{"Grams", 1, []string{"g", "gram", "gramme"}},
			{"Kilograms", 1000, []string{"kg", "kilogram", "kilo"}},
			{"Metric Tons", 1e6, []string{"t", "tonne", "metric ton"}},
			{"Ounces", 28.3495, []string{"oz", "ounce"}},
			{"Pounds", 453.592, []string{"lb", "lbs", "pound"}},
			{"Stone", 6350.29, []string{"st", "stones"}},
			{"US Tons", 907185, []string{"ton", "short ton", "us ton"}},
		},
	},
	Volume: {
		base:      "liter",
		defaultTo: 1,
		units: []unitDef{
			{"Milliliters", 0.001, []string{"ml", "milliliter", "millilitre"}},
			{"Liters", 1, []string{"l", "liter", "litre"}},
			{"Cubic Meters", 1000, []string{"m3", "cubic meter", "cubic metre"}},
			{"US Fluid Ounces", 0.0295735, []string{"floz", "fl oz", "us fl oz"}},
			{"US Cups", 0.236588, []string{"cup", "cups", "us cup"}},
			{"US Pints", 0.473176, []string{"pt", "pint", "us pint"}},
			{"US Quarts", 0.946353, []string{"qt", "quart", "us quart"}},
			{"US Gallons", 3.78541, []string{"gal", "gallon", "us gallon"}},
			{"Imperial Fluid Ounces", 0.0284131, []string{"imp fl oz", "imperial fluid ounce"}},
			{"Imperial Cups", 0.284131, []string{"imp cup", "imperial cup"}},
			{"Imperial Pints", 0.568261, []string{"imp pt", "imperial pint"}},
			{"Imperial Quarts", 1.13652, []string{"imp qt", "imperial quart"}},
			{"Imperial Gallons", 4.54609, []string{"imp gal", "imperial gallon"}},
		},
	},
	Area: {
		base:      "square meter",
		defaultTo: 2,
		units: []unitDef{
			{"Square Millimeters", 1e-6, []string{"mm2", "sq mm", "square millimeter"}},
			{"Square Centimeters", 1e-4, []string{"cm2", "sq cm", "square centimeter"}},
			{"Square Meters", 1, []string{"m2", "sq m", "square meter", "square metre"}},
			{"Square Kilometers", 1e6, []string{"km2", "sq km", "square kilometer"}},
			{"Square Inches", 0.00064516, []string{"in2", "sq in", "square inch"}},
			{"Square Feet", 0.092903, []string{"ft2", "sq ft", "square foot"}},
			{"Square Yards", 0.836127, []string{"yd2", "sq yd", "square yard"}},
			{"Acres", 4046.86, []string{"ac", "acre"}},
			{"Square Miles", 2589988.11, []string{"mi2", "sq mi", "square mile"}},
			{"Hectares", 10000, []string{"ha", "hectare"}},
		},
	},
	Time: {
		base:      "second",
		defaultTo: 3,
		units: []unitDef{
			{"Nanoseconds", 1e-9, []string{"ns", "nanosecond"}},
			{"Microseconds", 1e-6, []string{"us", "µs", "microsecond"}},
			{"Milliseconds", 0.001, []string{"ms", "millisecond"}},
			{"Seconds", 1, []string{"s", "sec", "second"}},
			{"Minutes", 60, []string{"min", "minute"}},
			{"Hours", 3600, []string{"h", "hr", "hour"}},
			{"Days", 86400, []string{"d", "day"}},
			{"Weeks", 604800, []string{"wk", "week"}},
			{"Months (avg)", 2629746, []string{"mo", "month", "months"}},
			{"Years (avg)", 31556952, []string{"yr", "year", "years"}},
		},
	},
	Speed: {
		base:      "meter per second",
		defaultTo: 1,
		units: []unitDef{
			{"Meters per second", 1, []string{"m/s", "mps"}},
			{"Kilometers per hour", 0.277778, []string{"km/h", "kph", "kmh"}},
			{"Miles per hour", 0.44704, []string{"mph", "mi/h"}},
			{"Feet per second", 0.3048, []string{"ft/s", "fps"}},
			{"Knots", 0.514444, []string{"kn", "kt", "knot"}},
		},
	},
	Pressure: {
		base:      "pascal",
		defaultTo: 4,
		units: []unitDef{
			{"Pascals", 1, []string{"pa", "pascal"}},
			{"Kilopascals", 1000, []string{"kpa", "kilopascal"}},
			{"Megapascals", 1e6, []string{"mpa", "megapascal"}},
			{"Bars", 1e5, []string{"bar"}},
			{"Atmospheres", 101325, []string{"atm", "atmosphere"}},
			{"Millimeters of Mercury", 133.322, []string{"mmhg", "torr"}},
			{"Inches of Mercury", 3386.39, []string{"inhg"}},
			{"Pounds per Square Inch", 6894.76, []string{"psi"}},
		},
	},
	Energy: {
		base:      "joule",
		defaultTo: 2,
		units: []unitDef{
			{"Joules", 1, []string{"j", "joule"}},
			{"Kilojoules", 1000, []string{"kj", "kilojoule"}},
			{"Calories", 4.184, []string{"cal", "calorie"}},
			{"Kilocalories", 4184, []string{"kcal", "kilocalorie"}},
			{"Watt-hours", 3600, []string{"wh", "watt hour"}},
			{"Kilowatt-hours", 3.6e6, []string{"kwh", "kilowatt hour"}},
			{"Electron-volts", 1.602176634e-19, []string{"ev", "electronvolt"}},
			{"British Thermal Units", 1055.06, []string{"btu"}},
			{"US Therms", 105506000, []string{"thm", "therm"}},
			{"Foot-pounds", 1.35582, []string{"ft-lb", "ftlb", "ft lbf"}},
		},
	},
	Data: {
		base:      "byte",
		defaultTo: 3,
		units: []unitDef{
			{"Bits", 0.125, []string{"bit", "b"}},
			{"Bytes", 1, []string{"byte", "B"}},
			// A lower-case "b" is a bit and "B" a byte at every prefix;
			// other spellings such as "kB" or "mB" are ambiguous.
			{"Kilobits", 128, []string{"kb", "Kb", "kbit"}},
			{"Kilobytes", 1024, []string{"KB", "kib"}},
			{"Megabits", 131072, []string{"mb", "Mb", "mbit"}},
			{"Megabytes", 1048576, []string{"MB", "mib"}},
			{"Gigabits", 134217728, []string{"gb", "Gb", "gbit"}},
			{"Gigabytes", 1073741824, []string{"GB", "gib"}},
			{"Terabits", 137438953472, []string{"tb", "Tb", "tbit"}},
			{"Terabytes", 1099511627776, []string{"TB", "tib"}},
			{"Petabits", 140737488355328, []string{"pb", "Pb", "pbit"}},
			{"Petabytes", 1125899906842624, []string{"PB", "pib"}},
		},
	},
}

// Temperature units in display order.
const (
	Celsius    = "Celsius"
	Fahrenheit = "Fahrenheit"
	Kelvin     = "Kelvin"
)

var temperatureAliases = map[string][]string{
	Celsius:    {"c", "°c", "degc", "centigrade"},
	Fahrenheit: {"f", "°f", "degf"},
	Kelvin:     {"k", "°k"},
}
