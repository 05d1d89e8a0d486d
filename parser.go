package xml

import (
	"fmt"
	"io"
)

type Parser struct {
	tokens *Tokenizer
}

func Parse(r io.RuneScanner) (*Node, error) {
	return NewParser(r).Parse()
}

func NewParser(r io.RuneScanner) *Parser {
	return &Parser{tokens: NewTokenizer(r)}
}

// Parse builds a document tree from the token stream. The tree is assembled
// exclusively through InsertChild, so the usual structure invariants hold
// for the result.
func (p *Parser) Parse() (*Node, error) {
	doc := NewDocument()
	current := doc

	for {
		t, err := p.tokens.Token()
		if err == io.EOF {
			if current != doc {
				return nil, fmt.Errorf("element %#v is not closed", current.Name)
			}

			return doc, nil
		}

		if err != nil {
			return nil, err
		}

		current, err = p.parse(current, doc, t)
		if err != nil {
			return nil, err
		}
	}
}

// parse attaches the node for a single token under current and returns the
// node subsequent content belongs to
func (p *Parser) parse(current, doc *Node, t any) (*Node, error) {
	switch t := t.(type) {
	case CharData:
		if _, err := current.InsertChild(NewText(string(t))); err != nil {
			return nil, err
		}

		return current, nil

	case CData:
		node, err := NewCData(string(t))
		if err != nil {
			return nil, err
		}

		if _, err := current.InsertChild(node); err != nil {
			return nil, err
		}

		return current, nil

	case Comment:
		node, err := NewComment(string(t))
		if err != nil {
			return nil, err
		}

		if _, err := current.InsertChild(node); err != nil {
			return nil, err
		}

		return current, nil

	case Doctype:
		if _, err := current.InsertChild(NewDoctype(string(t))); err != nil {
			return nil, err
		}

		return current, nil

	case ProcInst:
		node, err := NewProcInst(t.Target, t.Data)
		if err != nil {
			return nil, err
		}

		if _, err := current.InsertChild(node); err != nil {
			return nil, err
		}

		return current, nil

	case Decl:
		if current != doc || len(doc.children) > 0 {
			return nil, fmt.Errorf("declaration must be the first node of the document")
		}

		if _, err := current.InsertChild(&Node{Kind: DeclKind, attr: t.Attr}); err != nil {
			return nil, err
		}

		return current, nil

	case StartTag:
		node, err := NewElement(t.Name)
		if err != nil {
			return nil, err
		}

		for _, a := range t.Attr {
			if _, ok := node.Attr(a.Name); ok {
				return nil, fmt.Errorf("attribute %#v appears twice in element %#v", a.Name, t.Name)
			}

			if err := node.SetAttr(a.Name, a.Value); err != nil {
				return nil, err
			}
		}

		if _, err := current.InsertChild(node); err != nil {
			return nil, err
		}

		if t.Closed {
			return current, nil
		}

		return node, nil

	case EndTag:
		if current == doc {
			return nil, fmt.Errorf("unexpected closing tag %#v", t.Name)
		}

		if current.Name != t.Name {
			return nil, fmt.Errorf("closing tag %#v does not match opening tag %#v", t.Name, current.Name)
		}

		return current.Parent(), nil

	default:
		return nil, fmt.Errorf("unexpected token %#v", t)
	}
}
