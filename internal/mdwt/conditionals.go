package mdwt

import (
	"strings"

	"github.com/julien-sobczak/mdwt/internal/markdown"
)

// Condition tests a root variable: string equality for scalars, membership for lists.
type Condition struct {
	Name          string
	ExpectedValue string
}

// parseCondition parses "name=value". The first '=' separates both sides.
func (s *Session) parseCondition(raw string, file string) (*Condition, error) {
	trimmed := strings.TrimSpace(raw)
	name, expected, found := strings.Cut(trimmed, "=")
	if !found {
		return nil, s.Fail(ErrSyntax, file, "Invalid conditional expression %q in %s. Expected \"{!if name=value!}\".", raw, file)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, s.Fail(ErrSyntax, file, "Conditional block is missing a variable name in %s.", file)
	}
	return &Condition{
		Name:          name,
		ExpectedValue: strings.TrimSpace(expected),
	}, nil
}

// evaluate reports whether the condition holds for the root scope.
func (s *Session) evaluate(condition *Condition, root markdown.Variables, file string) (bool, error) {
	value, ok := root.Lookup(condition.Name)
	if !ok {
		return false, s.Fail(ErrUndefinedVariable, file, "Variable %q is not defined in the entry document (referenced in %s).", condition.Name, file)
	}
	return value.Matches(condition.ExpectedValue), nil
}

// selectBranch returns the first branch whose condition holds.
// Conditions are evaluated in order and only until a branch is selected.
func (s *Session) selectBranch(block ConditionalNode, root markdown.Variables, file string) (*Branch, error) {
	for i, branch := range block.Branches {
		if branch.RawCondition == nil {
			return &block.Branches[i], nil
		}
		condition, err := s.parseCondition(*branch.RawCondition, file)
		if err != nil {
			return nil, err
		}
		ok, err := s.evaluate(condition, root, file)
		if err != nil {
			return nil, err
		}
		if ok {
			return &block.Branches[i], nil
		}
	}
	return nil, nil
}
