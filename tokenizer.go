package xml

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

type Tokenizer struct {
	r io.RuneScanner
}

func NewTokenizer(r io.RuneScanner) *Tokenizer {
	return &Tokenizer{r: r}
}

func (l *Tokenizer) Token() (any, error) {
	char, _, err := l.r.ReadRune()
	if err != nil {
		return nil, err
	}

	if char == '<' {
		return l.readMarkup()
	}

	if err := l.r.UnreadRune(); err != nil {
		return nil, err
	}

	return l.readText()
}

// readText reads character data until the next markup, resolving entity and
// character references along the way
func (l *Tokenizer) readText() (any, error) {
	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return CharData(runes), nil
		}

		if err != nil {
			return nil, err
		}

		if read == '<' {
			return CharData(runes), l.r.UnreadRune()
		}

		if read == '&' {
			decoded, err := l.readEntity()
			if err != nil {
				return nil, err
			}

			runes = append(runes, decoded)
			continue
		}

		runes = append(runes, read)
	}
}

// readEntity reads a reference after & up to the closing ; and resolves it
func (l *Tokenizer) readEntity() (rune, error) {
	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return 0, errors.New("EOF: entity reference is not closed")
		}

		if err != nil {
			return 0, err
		}

		if read == ';' {
			return entity(string(runes))
		}

		runes = append(runes, read)

		if len(runes) > 8 {
			return 0, fmt.Errorf("entity reference &%s is not closed", string(runes))
		}
	}
}

func (l *Tokenizer) readMarkup() (any, error) {
	char, _, err := l.r.ReadRune()
	if err == io.EOF {
		return nil, errors.New("EOF: markup is not closed")
	}

	if err != nil {
		return nil, err
	}

	switch char {
	case '!':
		return l.readBang()
	case '?':
		return l.readProcInst()
	case '/':
		return l.readEndTag()
	default:
		if err := l.r.UnreadRune(); err != nil {
			return nil, err
		}

		return l.readStartTag()
	}
}

// readBang reads markup starting with <! which is a comment, a CDATA
// section or a doctype declaration
func (l *Tokenizer) readBang() (any, error) {
	read, _, err := l.r.ReadRune()
	if err == io.EOF {
		return nil, errors.New("EOF: markup is not closed")
	}

	if err != nil {
		return nil, err
	}

	switch read {
	case '-':
		if err := l.expect('-'); err != nil {
			return nil, err
		}

		return l.readComment()
	case '[':
		for _, e := range "CDATA[" {
			if err := l.expect(e); err != nil {
				return nil, err
			}
		}

		return l.readCData()
	default:
		if err := l.r.UnreadRune(); err != nil {
			return nil, err
		}

		word, err := l.word()
		if err != nil {
			return nil, err
		}

		if word != "DOCTYPE" {
			return nil, fmt.Errorf("markup declaration <!%s is not supported", word)
		}

		return l.readDoctype()
	}
}

func (l *Tokenizer) readComment() (any, error) {
	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return nil, errors.New("EOF: comment is not closed")
		}

		if err != nil {
			return nil, err
		}

		runes = append(runes, read)

		// -- is not allowed inside comments, so it can only start the closing sequence
		if strings.HasSuffix(string(runes), "--") {
			if err := l.expect('>'); err != nil {
				return nil, err
			}

			return Comment(strings.TrimSuffix(string(runes), "--")), nil
		}
	}
}

func (l *Tokenizer) readCData() (any, error) {
	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return nil, errors.New("EOF: CDATA section is not closed")
		}

		if err != nil {
			return nil, err
		}

		runes = append(runes, read)

		if strings.HasSuffix(string(runes), "]]>") {
			return CData(strings.TrimSuffix(string(runes), "]]>")), nil
		}
	}
}

// readDoctype reads a doctype declaration after <!DOCTYPE, keeping an
// internal subset in brackets intact
func (l *Tokenizer) readDoctype() (any, error) {
	if err := l.whitespaces(); err != nil {
		return nil, err
	}

	depth := 0

	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return nil, errors.New("EOF: doctype is not closed")
		}

		if err != nil {
			return nil, err
		}

		if read == '>' && depth == 0 {
			return Doctype(strings.TrimSpace(string(runes))), nil
		}

		if read == '[' {
			depth++
		}

		if read == ']' {
			depth--
		}

		runes = append(runes, read)
	}
}

// readProcInst reads a processing instruction after <? and until ?>, the
// <?xml ...?> declaration is returned as a separate token with its
// pseudo-attributes parsed
func (l *Tokenizer) readProcInst() (any, error) {
	target, err := l.name()
	if err != nil {
		return nil, err
	}

	if target == "" {
		return nil, errors.New("processing instruction target is expected")
	}

	if err := l.whitespaces(); err != nil {
		return nil, err
	}

	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return nil, errors.New("EOF: processing instruction is not closed")
		}

		if err != nil {
			return nil, err
		}

		runes = append(runes, read)

		if strings.HasSuffix(string(runes), "?>") {
			data := strings.TrimSuffix(string(runes), "?>")

			if strings.EqualFold(target, "xml") {
				attrs, err := declAttrs(data)
				if err != nil {
					return nil, err
				}

				return Decl{Attr: attrs}, nil
			}

			return ProcInst{Target: target, Data: strings.TrimSpace(data)}, nil
		}
	}
}

func (l *Tokenizer) readEndTag() (any, error) {
	name, err := l.name()
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, errors.New("element name is expected")
	}

	if err := l.forwardTo('>'); err != nil {
		return nil, err
	}

	return EndTag{Name: name}, nil
}

func (l *Tokenizer) readStartTag() (any, error) {
	name, err := l.name()
	if err != nil {
		return nil, err
	}

	if name == "" {
		return nil, errors.New("element name is expected")
	}

	tag := StartTag{Name: name}

	for {
		if err := l.whitespaces(); err != nil {
			return nil, err
		}

		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return nil, errors.New("EOF: tag is not closed")
		}

		if err != nil {
			return nil, err
		}

		switch read {
		case '>':
			return tag, nil
		case '/':
			if err := l.expect('>'); err != nil {
				return nil, err
			}

			tag.Closed = true
			return tag, nil
		default:
			if err := l.r.UnreadRune(); err != nil {
				return nil, err
			}

			attr, err := l.readAttr()
			if err != nil {
				return nil, err
			}

			tag.Attr = append(tag.Attr, attr)
		}
	}
}

func (l *Tokenizer) readAttr() (Attr, error) {
	name, err := l.name()
	if err != nil {
		return Attr{}, err
	}

	if name == "" {
		return Attr{}, errors.New("attribute name is expected")
	}

	if err := l.forwardTo('='); err != nil {
		return Attr{}, err
	}

	if err := l.whitespaces(); err != nil {
		return Attr{}, err
	}

	quote, _, err := l.r.ReadRune()
	if err == io.EOF {
		return Attr{}, fmt.Errorf("EOF: attribute %s has no value", name)
	}

	if err != nil {
		return Attr{}, err
	}

	if quote != '"' && quote != '\'' {
		return Attr{}, fmt.Errorf("attribute %s value must be quoted", name)
	}

	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return Attr{}, fmt.Errorf("EOF: attribute %s value is not closed", name)
		}

		if err != nil {
			return Attr{}, err
		}

		if read == quote {
			return Attr{Name: name, Value: string(runes)}, nil
		}

		if read == '&' {
			decoded, err := l.readEntity()
			if err != nil {
				return Attr{}, err
			}

			runes = append(runes, decoded)
			continue
		}

		runes = append(runes, read)
	}
}

// whitespaces skips until next non-whitespace symbol
func (l *Tokenizer) whitespaces() error {
	for {
		r, _, err := l.r.ReadRune()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		if !isWhitespace(r) {
			return l.r.UnreadRune()
		}
	}
}

// forwardTo skips whitespaces and makes sure next symbol is "e"
func (l *Tokenizer) forwardTo(e rune) error {
	if err := l.whitespaces(); err != nil {
		return err
	}

	return l.expect(e)
}

// expect verifies that the following symbol is "e"
func (l *Tokenizer) expect(e rune) error {
	r, _, err := l.r.ReadRune()
	if err == io.EOF {
		return fmt.Errorf("expected symbol %c, got EOF", e)
	}

	if err != nil {
		return err
	}

	if r != e {
		return fmt.Errorf("expected symbol %c, got %c instead", e, r)
	}

	return nil
}

// name reads a sequence of XML name characters
func (l *Tokenizer) name() (string, error) {
	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return string(runes), nil
		}

		if err != nil {
			return "", err
		}

		if len(runes) == 0 && !isNameStart(read) || len(runes) > 0 && !isNameChar(read) {
			return string(runes), l.r.UnreadRune()
		}

		runes = append(runes, read)
	}
}

// word reads a sequence of letters
func (l *Tokenizer) word() (string, error) {
	var runes []rune
	for {
		read, _, err := l.r.ReadRune()
		if err == io.EOF {
			return string(runes), nil
		}

		if err != nil {
			return "", err
		}

		if !isLetter(read) {
			return string(runes), l.r.UnreadRune()
		}

		runes = append(runes, read)
	}
}

// isLetter returns true for a letter
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}
