package xml

import (
	"fmt"
	"strings"
)

// Attr is a single attribute of an element or an XML declaration.
type Attr struct {
	Name  string
	Value string
}

// Attrs returns a copy of the node's attributes in the order they were
// first set.
func (n *Node) Attrs() []Attr {
	out := make([]Attr, len(n.attr))
	copy(out, n.attr)
	return out
}

// Attr returns the value of the named attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attr {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// SetAttr sets the named attribute, replacing its value if it is already
// set. The position of a replaced attribute does not change.
func (n *Node) SetAttr(name, value string) error {
	if err := validateName(name); err != nil {
		return err
	}

	for i := range n.attr {
		if n.attr[i].Name == name {
			n.attr[i].Value = value
			return nil
		}
	}

	n.attr = append(n.attr, Attr{Name: name, Value: value})
	return nil
}

// RemoveAttr removes the named attribute, returning false if it is not set.
func (n *Node) RemoveAttr(name string) bool {
	for i := range n.attr {
		if n.attr[i].Name == name {
			n.attr = append(n.attr[:i], n.attr[i+1:]...)
			return true
		}
	}

	return false
}

// declAttrs parses attributes of an XML declaration in this format:
// version="1.0" encoding="UTF-8", as they appear between <?xml and ?>.
func declAttrs(raw string) ([]Attr, error) {
	var attrs []Attr

	rest := strings.TrimSpace(raw)
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("declaration attribute %#v is malformed", rest)
		}

		name := strings.TrimSpace(rest[:eq])
		rest = strings.TrimSpace(rest[eq+1:])

		if len(rest) < 2 || (rest[0] != '"' && rest[0] != '\'') {
			return nil, fmt.Errorf("declaration attribute %#v must have a quoted value", name)
		}

		quote := rest[0]
		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			return nil, fmt.Errorf("declaration attribute %#v value is not closed", name)
		}

		attrs = append(attrs, Attr{Name: name, Value: rest[1 : end+1]})
		rest = strings.TrimSpace(rest[end+2:])
	}

	return attrs, nil
}
