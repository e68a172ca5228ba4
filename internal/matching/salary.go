package matching

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	salaryRangeRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)[Kk]?\s*(?:-|–|to)\s*\$?(\d+(?:\.\d+)?)[Kk]?`)
	salarySingleRe = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
)

// ParseSalary extracts a (min, max) salary range from free-form listing text.
// A "K" suffix anywhere in the text multiplies both bounds by 1000. A single
// value yields an equal min and max. Unparsable text yields (nil, nil).
func ParseSalary(text string) (*float64, *float64) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	hasK := strings.ContainsAny(text, "Kk")
	cleaned := strings.NewReplacer(",", "", "$", "").Replace(text)

	if m := salaryRangeRe.FindStringSubmatch(cleaned); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			if hasK {
				lo *= 1000
				hi *= 1000
			}
			return &lo, &hi
		}
	}

	if m := salarySingleRe.FindStringSubmatch(cleaned); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			if hasK {
				v *= 1000
			}
			hi := v
			return &v, &hi
		}
	}

	return nil, nil
}
