package scraper

import (
	"regexp"
	"strconv"
)

// maxPlausibleYoe drops numbers that are not experience requirements
// ("50 years in business").
const maxPlausibleYoe = 30

const yearsWord = `(?:years?|yrs?)`

type yoeRule struct {
	re    *regexp.Regexp
	lower int // submatch index of the lower bound, 0 for none
	upper int // submatch index of the upper bound, 0 for none
}

// Rules run in order; each match is blanked out so "3-5 years" is not read
// again as "5 years".
var yoeRules = []yoeRule{
	{re: regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:-|–|—|to)\s*(\d{1,2})\+?\s*` + yearsWord), lower: 1, upper: 2},
	{re: regexp.MustCompile(`(?i)\bup\s+to\s+(\d{1,2})\s*` + yearsWord), upper: 1},
	{re: regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+\s*` + yearsWord), lower: 1},
	{re: regexp.MustCompile(`(?i)\b(?:at\s+least|minimum\s+of|minimum|min\.?)\s+(\d{1,2})\s*` + yearsWord), lower: 1},
	{re: regexp.MustCompile(`(?i)\b(\d{1,2})\s*` + yearsWord + `(?:\s+of)?(?:\s+\w+){0,3}?\s+(?:experience|exp\b)`), lower: 1},
}

// ParseYoe derives the experience bounds stated in a description. min is
// the largest lower bound found, max the largest upper bound; a max below
// min is dropped.
func ParseYoe(description string) (min, max *int) {
	text := []byte(description)
	for _, rule := range yoeRules {
		text = rule.re.ReplaceAllFunc(text, func(m []byte) []byte {
			sub := rule.re.FindSubmatch(m)
			if rule.lower > 0 {
				min = raise(min, sub[rule.lower])
			}
			if rule.upper > 0 {
				max = raise(max, sub[rule.upper])
			}
			return blank(len(m))
		})
	}
	if min != nil && max != nil && *max < *min {
		max = nil
	}
	return min, max
}

func raise(cur *int, digits []byte) *int {
	v, err := strconv.Atoi(string(digits))
	if err != nil || v > maxPlausibleYoe {
		return cur
	}
	if cur == nil || v > *cur {
		return &v
	}
	return cur
}

func blank(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return b
}
