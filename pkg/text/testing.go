package text

import "strings"

// UnescapeTestContent supports content using a special character instead of backticks.
func UnescapeTestContent(content string) string {
	// Fenced code blocks need backticks but multiline strings in Golang cannot contain them.
	// We allow the ” character instead as suggested here: https://stackoverflow.com/a/59900008
	//
	// Example: ”””go will become ```go
	result := strings.ReplaceAll(content, "”", "`")

	// We allow the ‛ character
	// Example: ‛code‛ will become `code`
	result = strings.ReplaceAll(result, "‛", "`")

	return result
}
