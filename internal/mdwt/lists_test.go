package mdwt

import (
	"testing"

	"github.com/julien-sobczak/mdwt/internal/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processLists(t *testing.T, content markdown.Document) (string, error) {
	t.Helper()
	s := NewSession(t.TempDir())
	actual, err := s.ProcessLists(content, "doc.md")
	return string(actual), err
}

func TestProcessLists(t *testing.T) {

	t.Run("Single item", func(t *testing.T) {
		actual, err := processLists(t, "## Section\n\n{!list-add!}\nname: Alpha\n!}\n\n{!list-table(columns=name:Name,path:Path)!}\n")
		require.NoError(t, err)
		assert.Equal(t, "## Section\n\n\n| Name | Path |\n| --- | --- |\n| Alpha | [Section](#section) |\n", actual)
	})

	t.Run("Breadcrumb and duplicate anchors", func(t *testing.T) {
		content := markdown.Document("" +
			"# Guide\n" +
			"## Setup\n" +
			"{!list-add todo!}\n" +
			"task: Install\n" +
			"owner: Bob\n" +
			"!}\n" +
			"# Écoute\n" +
			"## Setup\n" +
			"{!list-add todo!}\n" +
			"  task  :  Configure | check  \n" +
			"\n" +
			"!}\n" +
			"{!list-table(list=todo)!}\n")

		actual, err := processLists(t, content)
		require.NoError(t, err)
		assert.Equal(t, ""+
			"# Guide\n"+
			"## Setup\n"+
			"# Écoute\n"+
			"## Setup\n"+
			"| task | owner |\n"+
			"| --- | --- |\n"+
			"| Install | Bob |\n"+
			"| Configure \\| check |  |\n", actual)

		actual, err = processLists(t, content+"{!list-table(LIST=todo|Columns=path:Where,task)!}\n")
		require.NoError(t, err)
		assert.Contains(t, actual, ""+
			"| Where | task |\n"+
			"| --- | --- |\n"+
			"| [Guide / Setup](#setup) | Install |\n"+
			"| [Écoute / Setup](#setup-1) | Configure \\| check |\n")
	})

	t.Run("Opener without closing braces", func(t *testing.T) {
		actual, err := processLists(t, "{!list-add todo\ntask: X\n!}\n{!list-table(list=todo)!}")
		require.NoError(t, err)
		assert.Equal(t, "| task |\n| --- |\n| X |", actual)

		// Columns are derived from the attributes of all items
		actual, err = processLists(t, ""+
			"## S\n"+
			"{!list-add todo\n"+
			"name: A\n"+
			"owner: B\n"+
			"!}\n"+
			"{!list-add todo!}\n"+
			"name: C\n"+
			"due: Monday\n"+
			"!}\n"+
			"{!list-table(list=todo)!}\n")
		require.NoError(t, err)
		assert.Equal(t, ""+
			"## S\n"+
			"| name | owner | due |\n"+
			"| --- | --- | --- |\n"+
			"| A | B |  |\n"+
			"| C |  | Monday |\n", actual)
	})

	t.Run("Item without heading", func(t *testing.T) {
		actual, err := processLists(t, "{!list-add!}\nname: Root\n!}\n{!list-table(columns=name,path)!}")
		require.NoError(t, err)
		assert.Equal(t, "| name | path |\n| --- | --- |\n| Root |  |", actual)
	})

	t.Run("Empty list", func(t *testing.T) {
		actual, err := processLists(t, "{!list-table(list=ghost|columns=name)!}")
		require.NoError(t, err)
		assert.Equal(t, `_No items in list "ghost"._`, actual)

		actual, err = processLists(t, "Before {!list-table(list=ghost)!} after")
		require.NoError(t, err)
		assert.Equal(t, "Before  after", actual)
	})

	t.Run("Code blocks are ignored", func(t *testing.T) {
		content := markdown.UnescapeTestDocument("" +
			"# Title\n" +
			"”””\n" +
			"{!list-add!}\n" +
			"name: Hidden\n" +
			"!}\n" +
			"{!list-table()!}\n" +
			"”””\n" +
			"{!list-table(columns=name)!}")
		actual, err := processLists(t, content)
		require.NoError(t, err)
		assert.Equal(t, markdown.UnescapeTestDocument(""+
			"# Title\n"+
			"”””\n"+
			"{!list-add!}\n"+
			"name: Hidden\n"+
			"!}\n"+
			"{!list-table()!}\n"+
			"”””\n"+
			"_No items in list \"items\"._").String(), actual)
	})

	t.Run("Label defaults to field", func(t *testing.T) {
		actual, err := processLists(t, "{!list-add!}\nname: A\n!}\n{!list-table(columns=name: , other:Other)!}")
		require.NoError(t, err)
		assert.Equal(t, "| name | Other |\n| --- | --- |\n| A |  |", actual)
	})
}

func TestProcessListsErrors(t *testing.T) {
	var tests = []struct {
		name    string
		content markdown.Document
		err     string
	}{
		{
			name:    "Unterminated block",
			content: "# Title\n{!list-add!}\nname: A\n",
			err:     `Missing "!}" for list-add starting at line 2 in doc.md.`,
		},
		{
			name:    "Invalid attribute",
			content: "{!list-add!}\nname: A\n  oops  \n!}\n",
			err:     `Invalid attribute line "oops" in doc.md (line 3). Expected "key: value".`,
		},
		{
			name:    "Empty attribute name",
			content: "{!list-add!}\n: A\n!}\n",
			err:     "Empty attribute name in doc.md (line 2).",
		},
		{
			name:    "Invalid option",
			content: "{!list-table(list)!}",
			err:     `Invalid list-table option "list" in doc.md. Expected "key=value".`,
		},
		{
			name:    "Missing option name",
			content: "{!list-table(=todo)!}",
			err:     "Missing option name in list-table directive (doc.md).",
		},
		{
			name:    "Empty columns",
			content: "{!list-table(columns=)!}",
			err:     "Empty columns specification in list-table directive (doc.md).",
		},
		{
			name:    "Invalid column",
			content: "{!list-table(columns=name,:Label)!}",
			err:     `Invalid column definition ":Label" in doc.md.`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := processLists(t, tt.content)
			assert.EqualError(t, err, tt.err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestListItemValue(t *testing.T) {
	attributes := NewAttributes()
	attributes.Set("name", "A")
	attributes.Set("path", "ignored")
	attributes.Set("name", "B")
	assert.Equal(t, []string{"name", "path"}, attributes.Keys())

	item := ListItem{Attributes: attributes, PathText: "Guide / Setup", Anchor: "setup"}
	assert.Equal(t, "B", item.Value("name"))
	assert.Equal(t, "[Guide / Setup](#setup)", item.Value("path"))
	assert.Equal(t, "", item.Value("missing"))

	item.Anchor = ""
	assert.Equal(t, "Guide / Setup", item.Value("path"))
	item.PathText = ""
	assert.Equal(t, "", item.Value("path"))
}

func TestEscapeTableCell(t *testing.T) {
	assert.Equal(t, `a \| b<br>c<br>d`, escapeTableCell("a | b\nc\r\nd"))
}
