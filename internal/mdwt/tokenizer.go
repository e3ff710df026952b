package mdwt

import (
	"regexp"

	"github.com/julien-sobczak/mdwt/internal/markdown"
)

// TokenKind identifies a directive recognized in a document body.
type TokenKind int

const (
	TextToken TokenKind = iota
	IncludeToken
	VarToken
	IfToken
	ElseIfToken
	ElseToken
	EndIfToken
)

func (k TokenKind) String() string {
	switch k {
	case IncludeToken:
		return "include"
	case VarToken:
		return "var"
	case IfToken:
		return "if"
	case ElseIfToken:
		return "elseif"
	case ElseToken:
		return "else"
	case EndIfToken:
		return "endif"
	default:
		return "text"
	}
}

const (
	elseDirective  = "{!else!}"
	endIfDirective = "{!endif!}"
)

// Alternatives are tried in order at each position.
var regexDirective = regexp.MustCompile(`\{!include\(([\s\S]*?)\)!\}` +
	`|\{!var\(([\s\S]*?)\)!\}` +
	`|\{!if\s+([\s\S]*?)!\}` +
	`|\{!elseif\s+([\s\S]*?)!\}` +
	`|\{!else!\}` +
	`|\{!endif!\}`)

// Token is a span of a document: either plain text or a single directive.
type Token struct {
	Kind TokenKind
	Raw  string // exact source text
	Arg  string // directive argument, untrimmed
	// Byte offsets in the tokenized document
	Start int
	End   int
}

// Tokenize splits a document into text and directive tokens.
// Fenced code blocks are returned as text, directives inside them are never recognized.
// Concatenating the Raw fields gives back the original document.
func Tokenize(doc markdown.Document) []Token {
	var tokens []Token
	source := string(doc)

	for _, segment := range splitFences(doc) {
		if segment.fenced {
			tokens = appendText(tokens, source, segment.start, segment.end)
			continue
		}
		cursor := segment.start
		text := source[segment.start:segment.end]
		for _, match := range regexDirective.FindAllStringSubmatchIndex(text, -1) {
			start, end := segment.start+match[0], segment.start+match[1]
			tokens = appendText(tokens, source, cursor, start)
			tokens = append(tokens, newDirectiveToken(source, start, end, segment.start, match))
			cursor = end
		}
		tokens = appendText(tokens, source, cursor, segment.end)
	}

	return tokens
}

func newDirectiveToken(source string, start, end, base int, match []int) Token {
	token := Token{
		Raw:   source[start:end],
		Start: start,
		End:   end,
	}
	kinds := []TokenKind{IncludeToken, VarToken, IfToken, ElseIfToken}
	for i, kind := range kinds {
		groupStart, groupEnd := match[2+2*i], match[3+2*i]
		if groupStart >= 0 {
			token.Kind = kind
			token.Arg = source[base+groupStart : base+groupEnd]
			return token
		}
	}
	if token.Raw == elseDirective {
		token.Kind = ElseToken
	} else {
		token.Kind = EndIfToken
	}
	return token
}

// appendText adds source[start:end] as text, merging with a previous text token.
func appendText(tokens []Token, source string, start, end int) []Token {
	if start >= end {
		return tokens
	}
	if n := len(tokens); n > 0 && tokens[n-1].Kind == TextToken && tokens[n-1].End == start {
		tokens[n-1].End = end
		tokens[n-1].Raw = source[tokens[n-1].Start:end]
		return tokens
	}
	return append(tokens, Token{
		Kind:  TextToken,
		Raw:   source[start:end],
		Start: start,
		End:   end,
	})
}

type segment struct {
	fenced bool
	start  int
	end    int
}

// splitFences groups successive lines sharing the same fence status.
// Each segment includes the newline terminating its last line.
func splitFences(doc markdown.Document) []segment {
	var segments []segment
	lines := doc.ClassifyLines()
	for i, line := range lines {
		end := len(doc)
		if i+1 < len(lines) {
			end = lines[i+1].Offset
		}
		if n := len(segments); n > 0 && segments[n-1].fenced == line.Fenced() {
			segments[n-1].end = end
			continue
		}
		segments = append(segments, segment{
			fenced: line.Fenced(),
			start:  line.Offset,
			end:    end,
		})
	}
	return segments
}
