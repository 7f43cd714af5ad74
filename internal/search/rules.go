package search

import (
	internalErrors "github.com/sketchy-app/sketchy/internal/errors"
	"github.com/sketchy-app/sketchy/model"
)

// Rule selects which sketch fields a query is compared against.
type Rule string

const (
	RuleAuthor Rule = "author"
	RulePlace  Rule = "place"
	RuleTitle  Rule = "title"
	RuleAny    Rule = "any"
)

// fieldAccessor extracts one searchable text value from a sketch.
type fieldAccessor func(s *model.Sketch) string

func authorUsername(s *model.Sketch) string { return s.Author.Username }
func authorLogin(s *model.Sketch) string    { return s.Author.Login }
func sketchPlace(s *model.Sketch) string    { return s.Place }
func sketchName(s *model.Sketch) string     { return s.Name }

// ruleFields maps every supported rule to its ordered field accessors.
var ruleFields = map[Rule][]fieldAccessor{
	RuleAuthor: {authorUsername, authorLogin},
	RulePlace:  {sketchPlace},
	RuleTitle:  {sketchName},
	RuleAny:    {sketchName, sketchPlace, authorUsername, authorLogin},
}

// ParseRule validates a raw rule name. Unrecognized names fail with ErrUnknownRule.
func ParseRule(name string) (Rule, error) {
	rule := Rule(name)
	if _, ok := ruleFields[rule]; !ok {
		return "", internalErrors.NewUnknownRuleError(name)
	}
	return rule, nil
}

// Rules returns the supported rule names in display order.
func Rules() []Rule {
	return []Rule{RuleAuthor, RulePlace, RuleTitle, RuleAny}
}

// Fields resolves the ordered text values of a sketch for the given rule.
func Fields(s *model.Sketch, rule Rule) ([]string, error) {
	accessors, ok := ruleFields[rule]
	if !ok {
		return nil, internalErrors.NewUnknownRuleError(string(rule))
	}

	values := make([]string, len(accessors))
	for i, accessor := range accessors {
		values[i] = accessor(s)
	}
	return values, nil
}
