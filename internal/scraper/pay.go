package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	hoursPerYear  = 2080
	thousand      = 1000
	minFullSalary = 1000
)

var (
	amountRe = regexp.MustCompile(`\$\s?([0-9][0-9,]*(?:\.[0-9]{1,2})?)\s?(k\b)?`)

	hourlyMarkers = []string{"/hr", "/hour", "an hour", "per hour"}
	annualMarkers = []string{"/yr", "/year", "a year", "per year"}
)

// ParsePay reads a card's pay line into annual bounds. Text without an
// hourly or annual marker ("Competitive", "$100K") is not trusted and yields
// no bounds. Hourly amounts are annualized at 2080 hours; "K" and short
// annual amounts are thousands.
func ParsePay(raw string) (min, max *float64) {
	s := strings.ToLower(strings.TrimSpace(raw))
	hourly := containsAny(s, hourlyMarkers)
	annual := containsAny(s, annualMarkers)
	if !hourly && !annual {
		return nil, nil
	}

	var values []float64
	for _, m := range amountRe.FindAllStringSubmatch(s, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil || v <= 0 {
			continue
		}
		switch {
		case hourly:
			v *= hoursPerYear
		case m[2] != "" || v < minFullSalary:
			v *= thousand
		}
		values = append(values, v)
	}

	switch {
	case len(values) >= 2:
		lo, hi := values[0], values[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		return &lo, &hi
	case len(values) == 1:
		v := values[0]
		if strings.Contains(s, "up to") {
			return nil, &v
		}
		lo := v
		return &lo, &v
	}
	return nil, nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
