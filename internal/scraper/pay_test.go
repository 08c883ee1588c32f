package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePay(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		raw      string
		min, max *float64
	}{
		{raw: "$50/hr", min: f(104000), max: f(104000)},
		{raw: "$40.50/hr - $55/hr", min: f(84240), max: f(114400)},
		{raw: "$120K/yr - $150K/yr", min: f(120000), max: f(150000)},
		{raw: "$120/yr - $150/yr", min: f(120000), max: f(150000)},
		{raw: "Up to $90K/yr", max: f(90000)},
		{raw: "$120,000 - $140,000 a year", min: f(120000), max: f(140000)},
		{raw: "$25 - $30 an hour", min: f(52000), max: f(62400)},
		{raw: "  $95K/yr · Medical, 401(k)  ", min: f(95000), max: f(95000)},
		{raw: "$150K/yr - $120K/yr", min: f(120000), max: f(150000)},
		{raw: "Competitive"},
		{raw: "$100K"},
		{raw: ""},
		{raw: "/yr"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			min, max := ParsePay(tt.raw)
			assert.Equal(t, tt.min, min, "min")
			assert.Equal(t, tt.max, max, "max")
		})
	}
}
