package currency

import (
	"fmt"
	"math"
	"strings"
)

var symbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
}

// Format renders an amount with its currency symbol (or code when no symbol
// is known) and thousands separators, e.g. "€1,250" or "IDR 1.500.000".
func Format(amount float64, code string) string {
	code = strings.ToUpper(code)

	negative := amount < 0
	if negative {
		amount = -amount
	}

	var formatted string
	switch code {
	case "IDR":
		formatted = "IDR " + addThousandsSeparator(fmt.Sprintf("%.0f", math.Round(amount)), ".")
	default:
		// Round to whole cents first so a fractional part near a full unit
		// carries into the whole amount instead of rendering as "cents: 100".
		total := math.Round(amount * 100)
		whole := math.Floor(total / 100)
		cents := int(total - whole*100)
		formatted = addThousandsSeparator(fmt.Sprintf("%.0f", whole), ",")
		if cents > 0 {
			formatted = fmt.Sprintf("%s.%02d", formatted, cents)
		}
		if sym, ok := symbols[code]; ok {
			formatted = sym + formatted
		} else {
			formatted = code + " " + formatted
		}
	}

	if negative {
		formatted = "-" + formatted
	}
	return formatted
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
