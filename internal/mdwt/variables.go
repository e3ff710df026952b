package mdwt

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/julien-sobczak/mdwt/internal/core"
	"github.com/julien-sobczak/mdwt/internal/markdown"
	"golang.org/x/exp/slices"
)

var regexPlaceholder = regexp.MustCompile(`<([^>]+)>`)

// Merge combines the variables of a file with the variables inherited from its ancestors.
//
// A key present on one side only is kept. When both sides define a key,
// lists are unioned (local items first, duplicates removed) and scalars
// keep the parent value.
func Merge(local, parent markdown.Variables) markdown.Variables {
	merged := local.Clone()
	for name, parentValue := range parent {
		localValue, ok := merged[name]
		if !ok {
			merged[name] = parentValue
			continue
		}
		if localValue.IsList() || parentValue.IsList() {
			merged[name] = union(localValue.Items(), parentValue.Items())
			continue
		}
		merged[name] = parentValue
	}
	return merged
}

func union(lists ...[]string) markdown.Value {
	var items []string
	for _, list := range lists {
		for _, item := range list {
			if !slices.Contains(items, item) {
				items = append(items, item)
			}
		}
	}
	return markdown.List(items...)
}

// resolvePlaceholders replaces <name> in an include path by the variable values.
// Scopes are searched in order. It returns the names of the substituted variables.
func (s *Session) resolvePlaceholders(raw string, file string, scopes ...markdown.Variables) (string, []string, error) {
	var placeholders []string
	var err error
	resolved := regexPlaceholder.ReplaceAllStringFunc(raw, func(match string) string {
		if err != nil {
			return match
		}
		name := strings.TrimSpace(match[1 : len(match)-1])
		if name == "" {
			err = s.Fail(ErrSyntax, file, "Invalid variable name in include path (%s).", file)
			return match
		}
		value, ok := lookup(name, scopes)
		if !ok {
			err = s.Fail(ErrUndefinedVariable, file, "Variable %q is used but not declared or null (referenced in %s).", name, file)
			return match
		}
		placeholders = append(placeholders, name)
		return value.String()
	})
	if err != nil {
		return "", nil, err
	}
	return resolved, placeholders, nil
}

func lookup(name string, scopes []markdown.Variables) (markdown.Value, bool) {
	for _, scope := range scopes {
		if value, ok := scope.Lookup(name); ok {
			return value, true
		}
	}
	return markdown.Value{}, false
}

// substituteVariable returns the value of a {!var(name)!} directive.
func (s *Session) substituteVariable(token Token, root markdown.Variables, file string) (string, error) {
	name := strings.TrimSpace(token.Arg)
	if name == "" {
		return "", s.Fail(ErrSyntax, file, "Invalid variable name in %s", file)
	}
	value, ok := root.Lookup(name)
	if !ok {
		return "", s.Fail(ErrUndefinedVariable, file, "Variable %q is used but not declared or null (referenced in %s).", name, file)
	}
	return value.String(), nil
}

// CollectVariables walks the whole include graph from path and returns the root scope.
// Includes are visited in order of appearance, whatever the conditional blocks around them.
// Missing includes are recorded but do not stop the walk.
func (s *Session) CollectVariables(path string, stack []string, parent markdown.Variables) (markdown.Variables, error) {
	if slices.Contains(stack, path) {
		return nil, s.circularInclude(stack, path)
	}

	file, err := s.readFile(path)
	if err != nil {
		return nil, err
	}

	accumulated := Merge(file.Variables(), parent)
	nextStack := push(stack, path)

	for _, token := range Tokenize(file.Body) {
		if token.Kind != IncludeToken {
			continue
		}
		directive, err := s.parseIncludeDirective(token, path)
		if err != nil {
			return nil, err
		}
		includePath, placeholders, err := s.resolvePlaceholders(directive.Path, path, accumulated)
		if err != nil {
			return nil, err
		}
		if includePath == "" {
			continue
		}
		childPath := resolvePath(file.Dir(), includePath)
		if !exists(childPath) {
			s.recordMissingInclude(childPath, path, placeholders)
			continue
		}
		childVars, err := s.CollectVariables(childPath, nextStack, accumulated)
		if err != nil {
			return nil, err
		}
		accumulated = Merge(childVars, accumulated)
	}

	core.CurrentLogger().Debugf("Variables collected from %s: %s", s.Rel(path), strings.Join(accumulated.Keys(), ", "))
	return accumulated, nil
}

// readFile loads a document that must exist.
func (s *Session) readFile(path string) (*markdown.File, error) {
	if !exists(path) {
		return nil, s.Fail(ErrFileNotFound, path, "File not found: %s", path)
	}
	file, err := markdown.ParseFile(path)
	if err != nil {
		return nil, s.Wrap(ErrFileNotFound, path, err, "Unable to read %s: %v", path, err)
	}
	core.CurrentLogger().Debugf("Read %s", s.Rel(path))
	return file, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}

// push returns a new stack, leaving the original untouched for siblings.
func push(stack []string, path string) []string {
	result := make([]string, 0, len(stack)+1)
	result = append(result, stack...)
	return append(result, path)
}
