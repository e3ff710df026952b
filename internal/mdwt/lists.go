package mdwt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/julien-sobczak/mdwt/internal/markdown"
)

// DefaultListName is used when a list-add or list-table directive names no list.
const DefaultListName = "items"

var regexListAdd = regexp.MustCompile(`^\s*\{!list-add(?:\s+([^\s!}]+))?\s*(?:!\})?\s*$`)
var regexListAddEnd = regexp.MustCompile(`^\s*!}\s*$`)
var regexListTable = regexp.MustCompile(`\{!list-table\(([\s\S]*?)\)!\}`)

// Attributes are the "key: value" pairs of a list item, in declaration order.
type Attributes struct {
	keys   []string
	values map[string]string
}

func NewAttributes() *Attributes {
	return &Attributes{
		values: make(map[string]string),
	}
}

// Set stores a value. A repeated key keeps its first position.
func (a *Attributes) Set(key, value string) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

func (a *Attributes) Get(key string) (string, bool) {
	value, ok := a.values[key]
	return value, ok
}

func (a *Attributes) Keys() []string {
	return append([]string{}, a.keys...)
}

// ListItem is a record declared by a list-add block.
type ListItem struct {
	Attributes *Attributes
	PathText   string // enclosing headings joined by " / "
	Anchor     string // slug of the innermost enclosing heading
}

// NamedLists groups list items by list name, in capture order.
type NamedLists map[string][]ListItem

// Column is a table column: an attribute name (or "path") and its header.
type Column struct {
	Field string
	Label string
}

type breadcrumb struct {
	level  int
	text   string
	anchor string
}

// ProcessLists collects list items then renders list tables.
// It runs once on the fully expanded entry document.
func (s *Session) ProcessLists(content markdown.Document, file string) (markdown.Document, error) {
	if content == markdown.EmptyDocument {
		return content, nil
	}
	stripped, lists, err := s.collectListItems(content, file)
	if err != nil {
		return "", err
	}
	return s.renderListTables(stripped, lists, file)
}

// collectListItems removes list-add blocks and returns the items they declare.
func (s *Session) collectListItems(content markdown.Document, file string) (markdown.Document, NamedLists, error) {
	lines := content.Lines()
	lists := make(NamedLists)
	slugger := markdown.NewSlugger()
	var result []string
	var headings []breadcrumb
	var fence markdown.Fence

	i := 0
	for i < len(lines) {
		line := lines[i]

		if fence.Scan(line) {
			result = append(result, line)
			i++
			continue
		}

		if ok, title, level := markdown.IsHeading(line); ok {
			anchor := slugger.Slug(title)
			for len(headings) > 0 && headings[len(headings)-1].level >= level {
				headings = headings[:len(headings)-1]
			}
			headings = append(headings, breadcrumb{level: level, text: title, anchor: anchor})
		}

		match := regexListAdd.FindStringSubmatch(line)
		if match == nil {
			result = append(result, line)
			i++
			continue
		}

		listName := strings.TrimSpace(match[1])
		if listName == "" {
			listName = DefaultListName
		}

		j := i + 1
		closed := false
		for j < len(lines) {
			if regexListAddEnd.MatchString(lines[j]) {
				closed = true
				break
			}
			j++
		}
		if !closed {
			return "", nil, s.Fail(ErrSyntax, file, "Missing \"!}\" for list-add starting at line %d in %s.", i+1, file)
		}

		attributes, err := s.parseListAttributes(lines[i+1:j], file, i+2)
		if err != nil {
			return "", nil, err
		}

		item := ListItem{Attributes: attributes}
		var texts []string
		for _, heading := range headings {
			texts = append(texts, heading.text)
		}
		item.PathText = strings.Join(texts, " / ")
		if len(headings) > 0 {
			item.Anchor = headings[len(headings)-1].anchor
		}
		lists[listName] = append(lists[listName], item)

		i = j + 1
	}

	return markdown.Document(strings.Join(result, "\n")), lists, nil
}

// parseListAttributes parses "key: value" lines. firstLine is the line number of lines[0].
func (s *Session) parseListAttributes(lines []string, file string, firstLine int) (*Attributes, error) {
	attributes := NewAttributes()
	for index, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			return nil, s.Fail(ErrSyntax, file, "Invalid attribute line %q in %s (line %d). Expected \"key: value\".", strings.TrimSpace(line), file, firstLine+index)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, s.Fail(ErrSyntax, file, "Empty attribute name in %s (line %d).", file, firstLine+index)
		}
		attributes.Set(key, strings.TrimSpace(value))
	}
	return attributes, nil
}

// renderListTables replaces list-table directives outside code blocks.
func (s *Session) renderListTables(content markdown.Document, lists NamedLists, file string) (markdown.Document, error) {
	var err error
	rendered := content.MapUnfencedLines(func(line markdown.Line) string {
		return regexListTable.ReplaceAllStringFunc(line.Text, func(match string) string {
			if err != nil {
				return match
			}
			rawOptions := regexListTable.FindStringSubmatch(match)[1]
			table, tableErr := s.renderListTable(rawOptions, lists, file)
			if tableErr != nil {
				err = tableErr
				return match
			}
			return table
		})
	})
	if err != nil {
		return "", err
	}
	return rendered, nil
}

type listTableOptions struct {
	list    string
	columns []Column
	others  map[string]string
}

func (s *Session) parseListTableOptions(raw string, file string) (*listTableOptions, error) {
	options := &listTableOptions{
		others: make(map[string]string),
	}
	for _, part := range strings.Split(raw, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, found := strings.Cut(part, "=")
		if !found {
			return nil, s.Fail(ErrSyntax, file, "Invalid list-table option %q in %s. Expected \"key=value\".", part, file)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if key == "" {
			return nil, s.Fail(ErrSyntax, file, "Missing option name in list-table directive (%s).", file)
		}
		switch key {
		case "columns":
			columns, err := s.parseColumnSpec(value, file)
			if err != nil {
				return nil, err
			}
			options.columns = columns
		case "list":
			options.list = value
		default:
			options.others[key] = value
		}
	}
	return options, nil
}

// parseColumnSpec parses "field[:label],...". The label defaults to the field.
func (s *Session) parseColumnSpec(raw string, file string) ([]Column, error) {
	if raw == "" {
		return nil, s.Fail(ErrSyntax, file, "Empty columns specification in list-table directive (%s).", file)
	}
	var columns []Column
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		field, label, found := strings.Cut(entry, ":")
		if !found {
			columns = append(columns, Column{Field: entry, Label: entry})
			continue
		}
		field = strings.TrimSpace(field)
		label = strings.TrimSpace(label)
		if field == "" {
			return nil, s.Fail(ErrSyntax, file, "Invalid column definition %q in %s.", entry, file)
		}
		if label == "" {
			label = field
		}
		columns = append(columns, Column{Field: field, Label: label})
	}
	return columns, nil
}

func (s *Session) renderListTable(rawOptions string, lists NamedLists, file string) (string, error) {
	options, err := s.parseListTableOptions(rawOptions, file)
	if err != nil {
		return "", err
	}

	listName := options.list
	if listName == "" {
		listName = DefaultListName
	}
	items := lists[listName]

	columns := options.columns
	if len(columns) == 0 {
		columns = deriveColumns(items)
	}
	if len(columns) == 0 {
		return "", nil
	}
	if len(items) == 0 {
		return fmt.Sprintf("_No items in list %q._", listName), nil
	}

	var rows []string
	var cells []string
	var separators []string
	for _, column := range columns {
		cells = append(cells, escapeTableCell(column.Label))
		separators = append(separators, "---")
	}
	rows = append(rows, tableRow(cells), tableRow(separators))

	for _, item := range items {
		cells = cells[:0]
		for _, column := range columns {
			cells = append(cells, escapeTableCell(item.Value(column.Field)))
		}
		rows = append(rows, tableRow(cells))
	}

	return strings.Join(rows, "\n"), nil
}

// deriveColumns returns the attribute names in order of first appearance.
func deriveColumns(items []ListItem) []Column {
	var columns []Column
	seen := make(map[string]bool)
	for _, item := range items {
		for _, key := range item.Attributes.Keys() {
			if seen[key] {
				continue
			}
			seen[key] = true
			columns = append(columns, Column{Field: key, Label: key})
		}
	}
	return columns
}

// Value returns the cell content for a field. The "path" field links to the enclosing heading.
func (i ListItem) Value(field string) string {
	if field == "path" {
		if i.PathText == "" {
			return ""
		}
		if i.Anchor != "" {
			return fmt.Sprintf("[%s](#%s)", i.PathText, i.Anchor)
		}
		return i.PathText
	}
	value, _ := i.Attributes.Get(field)
	return value
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func escapeTableCell(value string) string {
	return cellEscaper.Replace(value)
}

func tableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}
