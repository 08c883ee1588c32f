package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy selects how the ideal tier and the ignore rules combine.
type Policy string

const (
	// PolicyIgnoreOnly passes anything the ignore rules let through.
	PolicyIgnoreOnly Policy = "ignore_only"
	// PolicyIdealOnly passes only ideal listings.
	PolicyIdealOnly Policy = "ideal_only"
	// PolicyIdealAndNotIgnore passes ideal listings, and non-ideal ones that
	// the ignore rules let through.
	PolicyIdealAndNotIgnore Policy = "ideal_and_not_ignore"
	// PolicyIdealAndClean passes listings that are ideal and also clear every
	// ignore rule.
	PolicyIdealAndClean Policy = "ideal_and_clean"
)

const DefaultPolicy = PolicyIdealAndNotIgnore

// ParsePolicy accepts the canonical names in any casing, with "-" or " "
// for "_", plus the legacy gold_star_only and platinum names.
func ParsePolicy(s string) (Policy, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "":
		return DefaultPolicy, nil
	case string(PolicyIgnoreOnly):
		return PolicyIgnoreOnly, nil
	case string(PolicyIdealOnly), "gold_star_only":
		return PolicyIdealOnly, nil
	case string(PolicyIdealAndNotIgnore):
		return PolicyIdealAndNotIgnore, nil
	case string(PolicyIdealAndClean), "platinum", "platinum_star_only":
		return PolicyIdealAndClean, nil
	}
	return "", fmt.Errorf("unknown selection policy %q", s)
}

func (p *Policy) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: selection_policy must be a string", node.Line)
	}
	parsed, err := ParsePolicy(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*p = parsed
	return nil
}

func (p Policy) orDefault() Policy {
	if p == "" {
		return DefaultPolicy
	}
	return p
}

// Terms are the phrase rules for each listing field.
type Terms struct {
	Titles       []Phrase `yaml:"titles"`
	Companies    []Phrase `yaml:"companies"`
	Locations    []Phrase `yaml:"locations"`
	Descriptions []Phrase `yaml:"descriptions"`
}

func (t *Terms) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "titles", "companies", "locations", "descriptions"); err != nil {
		return err
	}
	type plain Terms
	return node.Decode((*plain)(t))
}

func (t Terms) empty() bool {
	return len(t.Titles) == 0 && len(t.Companies) == 0 && len(t.Locations) == 0 && len(t.Descriptions) == 0
}

// Criteria is read-only for the lifetime of a run.
type Criteria struct {
	Ignore     Terms           `yaml:"ignore"`
	Ideal      Terms           `yaml:"ideal"`
	Salary     SalaryRange     `yaml:"desired_salary"`
	Experience ExperienceRange `yaml:"desired_experience"`
	Policy     Policy          `yaml:"selection_policy"`
}

// UnmarshalYAML also accepts gold_star as the older name of ideal. Unknown
// keys are errors at every level.
func (c *Criteria) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "ignore", "ideal", "gold_star",
		"desired_salary", "desired_experience", "selection_policy"); err != nil {
		return err
	}
	var raw struct {
		Ignore     Terms           `yaml:"ignore"`
		Ideal      *Terms          `yaml:"ideal"`
		GoldStar   *Terms          `yaml:"gold_star"`
		Salary     SalaryRange     `yaml:"desired_salary"`
		Experience ExperienceRange `yaml:"desired_experience"`
		Policy     Policy          `yaml:"selection_policy"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Ideal != nil && raw.GoldStar != nil {
		return fmt.Errorf("line %d: set either ideal or gold_star, not both", node.Line)
	}
	*c = Criteria{
		Ignore:     raw.Ignore,
		Salary:     raw.Salary,
		Experience: raw.Experience,
		Policy:     raw.Policy.orDefault(),
	}
	switch {
	case raw.Ideal != nil:
		c.Ideal = *raw.Ideal
	case raw.GoldStar != nil:
		c.Ideal = *raw.GoldStar
	}
	return nil
}

// checkKeys rejects mapping keys outside allowed. A custom UnmarshalYAML
// decodes through node.Decode, which ignores the decoder's KnownFields.
func checkKeys(node *yaml.Node, allowed ...string) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: unknown key %q, expected one of %s",
				key.Line, key.Value, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// Validate reports configuration mistakes that must stop a run before any
// listing is classified.
func (c *Criteria) Validate() error {
	var errs []error
	if _, err := ParsePolicy(string(c.Policy)); err != nil {
		errs = append(errs, err)
	}
	if p := c.Policy.orDefault(); (p == PolicyIdealOnly || p == PolicyIdealAndClean) && c.Ideal.empty() {
		errs = append(errs, fmt.Errorf("selection policy %s needs at least one ideal rule", p))
	}
	if s := c.Salary; s.Min != nil && s.Max != nil && *s.Min > *s.Max {
		errs = append(errs, fmt.Errorf("desired_salary: min %v above max %v", *s.Min, *s.Max))
	}
	if e := c.Experience; e.Min != nil && e.Max != nil && *e.Min > *e.Max {
		errs = append(errs, fmt.Errorf("desired_experience: min %d above max %d", *e.Min, *e.Max))
	}
	lists := []struct {
		name  string
		rules []Phrase
	}{
		{"ignore.titles", c.Ignore.Titles},
		{"ignore.companies", c.Ignore.Companies},
		{"ignore.locations", c.Ignore.Locations},
		{"ignore.descriptions", c.Ignore.Descriptions},
		{"ideal.titles", c.Ideal.Titles},
		{"ideal.companies", c.Ideal.Companies},
		{"ideal.locations", c.Ideal.Locations},
		{"ideal.descriptions", c.Ideal.Descriptions},
	}
	for _, l := range lists {
		for i, rule := range l.rules {
			if err := validatePhrase(rule, 0); err != nil {
				errs = append(errs, fmt.Errorf("%s[%d]: %w", l.name, i, err))
			}
		}
	}
	return errors.Join(errs...)
}

func validatePhrase(p Phrase, depth int) error {
	if depth > maxPhraseDepth {
		return fmt.Errorf("phrase nested deeper than %d levels", maxPhraseDepth)
	}
	if !p.group {
		return nil
	}
	if len(p.items) == 0 {
		return errors.New("empty phrase list")
	}
	for _, item := range p.items {
		if err := validatePhrase(item, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalYAML accepts a string or a (nested) list of strings.
func (p *Phrase) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := decodePhrase(node, 0)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func decodePhrase(node *yaml.Node, depth int) (Phrase, error) {
	if depth > maxPhraseDepth {
		return Phrase{}, fmt.Errorf("line %d: phrase nested deeper than %d levels", node.Line, maxPhraseDepth)
	}
	switch node.Kind {
	case yaml.ScalarNode:
		if tag := node.ShortTag(); tag != "!!str" {
			return Phrase{}, fmt.Errorf("line %d: phrase must be a string or a list of phrases, got %s %q", node.Line, tag, node.Value)
		}
		return Literal(node.Value), nil
	case yaml.SequenceNode:
		items := make([]Phrase, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := decodePhrase(child, depth+1)
			if err != nil {
				return Phrase{}, err
			}
			items = append(items, item)
		}
		return All(items...), nil
	case yaml.AliasNode:
		return decodePhrase(node.Alias, depth+1)
	}
	return Phrase{}, fmt.Errorf("line %d: phrase must be a string or a list of phrases", node.Line)
}
