package mdwt

// Node is an element of a parsed document body.
type Node interface {
	node()
}

// TextNode is copied verbatim to the output.
type TextNode struct {
	Text string
}

// IncludeNode is a {!include(...)!} directive.
type IncludeNode struct {
	Token Token
}

// VarNode is a {!var(...)!} directive.
type VarNode struct {
	Token Token
}

// ConditionalNode is a {!if!}...{!endif!} block.
type ConditionalNode struct {
	Branches []Branch
}

// Branch is one arm of a conditional block.
// RawCondition is nil for an {!else!} branch.
type Branch struct {
	RawCondition *string
	Body         []Node
}

func (TextNode) node()        {}
func (IncludeNode) node()     {}
func (VarNode) node()         {}
func (ConditionalNode) node() {}

type parser struct {
	session *Session
	file    string
	tokens  []Token
	pos     int
}

// Parse builds the node tree of a tokenized body.
// Conditional blocks nest. {!else!} and {!elseif!} outside any block are kept as text.
func (s *Session) Parse(tokens []Token, file string) ([]Node, error) {
	p := &parser{
		session: s,
		file:    file,
		tokens:  tokens,
	}
	return p.parseTopLevel()
}

func (p *parser) parseTopLevel() ([]Node, error) {
	var nodes []Node
	for p.pos < len(p.tokens) {
		token := p.tokens[p.pos]
		switch token.Kind {
		case EndIfToken:
			return nil, p.session.Fail(ErrSyntax, p.file, "Unexpected %s without opening {!if...!} in %s.", endIfDirective, p.file)
		case ElseToken, ElseIfToken:
			nodes = appendTextNode(nodes, token.Raw)
			p.pos++
		default:
			node, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

// parseNode parses the token at the current position (never else/elseif/endif).
func (p *parser) parseNode() (Node, error) {
	token := p.tokens[p.pos]
	switch token.Kind {
	case IncludeToken:
		p.pos++
		return IncludeNode{Token: token}, nil
	case VarToken:
		p.pos++
		return VarNode{Token: token}, nil
	case IfToken:
		return p.parseConditional()
	default:
		p.pos++
		return TextNode{Text: token.Raw}, nil
	}
}

func (p *parser) parseConditional() (Node, error) {
	condition := p.tokens[p.pos].Arg
	current := Branch{RawCondition: &condition}
	var branches []Branch
	p.pos++

	for p.pos < len(p.tokens) {
		token := p.tokens[p.pos]
		switch token.Kind {
		case ElseIfToken:
			branches = append(branches, current)
			condition := token.Arg
			current = Branch{RawCondition: &condition}
			p.pos++
		case ElseToken:
			branches = append(branches, current)
			current = Branch{}
			p.pos++
		case EndIfToken:
			branches = append(branches, current)
			p.pos++
			return ConditionalNode{Branches: branches}, nil
		default:
			node, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			if text, ok := node.(TextNode); ok {
				current.Body = appendTextNode(current.Body, text.Text)
			} else {
				current.Body = append(current.Body, node)
			}
		}
	}

	return nil, p.session.Fail(ErrSyntax, p.file, "Missing %s for conditional in %s.", endIfDirective, p.file)
}

func appendTextNode(nodes []Node, text string) []Node {
	if n := len(nodes); n > 0 {
		if previous, ok := nodes[n-1].(TextNode); ok {
			nodes[n-1] = TextNode{Text: previous.Text + text}
			return nodes
		}
	}
	return append(nodes, TextNode{Text: text})
}
