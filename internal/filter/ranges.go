package filter

import (
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SalaryRange is the desired annual pay. A nil bound is unbounded.
type SalaryRange struct {
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`
}

func (r *SalaryRange) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "min", "max"); err != nil {
		return err
	}
	type plain SalaryRange
	return node.Decode((*plain)(r))
}

// ExperienceRange is the desired years of experience. A nil bound is unbounded.
type ExperienceRange struct {
	Min *int `yaml:"min"`
	Max *int `yaml:"max"`
}

func (r *ExperienceRange) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "min", "max"); err != nil {
		return err
	}
	type plain ExperienceRange
	return node.Decode((*plain)(r))
}

// PayOutOfRange rejects a listing whose known pay cannot overlap desired.
// Unknown listing bounds never reject.
func PayOutOfRange(minPay, maxPay *float64, desired SalaryRange) (Verdict, bool) {
	if maxPay != nil && desired.Min != nil && *maxPay < *desired.Min {
		return Ignore(CategoryMaxPay, formatPay(*maxPay)), true
	}
	if minPay != nil && desired.Max != nil && *minPay > *desired.Max {
		return Ignore(CategoryMinPay, formatPay(*minPay)), true
	}
	return Pass(), false
}

// YoeOutOfRange rejects a listing that demands more experience than the
// desired maximum (Min YoE), or caps it below the desired minimum (Max YoE).
func YoeOutOfRange(minYoe, maxYoe *int, desired ExperienceRange) (Verdict, bool) {
	if minYoe != nil && desired.Max != nil && *minYoe > *desired.Max {
		return Ignore(CategoryMinYoe, strconv.Itoa(*minYoe)), true
	}
	if maxYoe != nil && desired.Min != nil && *desired.Min > *maxYoe {
		return Ignore(CategoryMaxYoe, strconv.Itoa(*maxYoe)), true
	}
	return Pass(), false
}

// formatPay keeps one decimal on whole amounts ("80000.0") so terms stay
// comparable with rows written by earlier versions.
func formatPay(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
