package verify

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

var decimalPattern = regexp.MustCompile(`\d+\.?\d*`)

// FlattenNumbers recursively walks a decoded JSON structure and collects
// every numeric value into a flat bag for tolerant membership testing.
// Entity identity is deliberately discarded.
//
// Two derivations keep text-vs-data formatting differences matchable:
// a fraction strictly between 0 and 1 also contributes its percentage form
// (x*100 rounded to 2 decimals, so 0.27 matches a "27%" claim), and string
// leaves contribute every decimal substring they embed.
func FlattenNumbers(v any) []float64 {
	var numbers []float64
	flattenInto(v, &numbers)
	return numbers
}

func flattenInto(v any, numbers *[]float64) {
	switch val := v.(type) {
	case map[string]any:
		for _, item := range val {
			flattenInto(item, numbers)
		}
	case []any:
		for _, item := range val {
			flattenInto(item, numbers)
		}
	case float64:
		appendNumber(val, numbers)
	case int:
		appendNumber(float64(val), numbers)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			appendNumber(f, numbers)
		}
	case string:
		for _, s := range decimalPattern.FindAllString(val, -1) {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				*numbers = append(*numbers, f)
			}
		}
	}
}

func appendNumber(f float64, numbers *[]float64) {
	*numbers = append(*numbers, f)
	if f > 0 && f < 1 {
		*numbers = append(*numbers, math.Round(f*100*100)/100)
	}
}
