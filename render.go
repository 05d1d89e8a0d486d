package xml

import (
	"fmt"
	"io"
	"strings"
)

func Render(w io.Writer, node *Node) error {
	return render(w, node)
}

func render(w io.Writer, node *Node) error {
	switch node.Kind {
	case DocumentKind:
		return renderChildren(w, node)
	case ElementKind:
		return renderElement(w, node)
	case TextKind:
		_, err := fmt.Fprint(w, escapeText(node.Data))
		return err
	case CDataKind:
		_, err := fmt.Fprint(w, "<![CDATA[", node.Data, "]]>")
		return err
	case CommentKind:
		_, err := fmt.Fprint(w, "<!--", node.Data, "-->")
		return err
	case ProcInstKind:
		if node.Data == "" {
			_, err := fmt.Fprint(w, "<?", node.Name, "?>")
			return err
		}

		_, err := fmt.Fprint(w, "<?", node.Name, " ", node.Data, "?>")
		return err
	case DoctypeKind:
		_, err := fmt.Fprint(w, "<!DOCTYPE ", node.Data, ">")
		return err
	case DeclKind:
		if _, err := fmt.Fprint(w, "<?xml"); err != nil {
			return err
		}

		if err := renderAttrs(w, node.attr); err != nil {
			return err
		}

		_, err := fmt.Fprint(w, "?>")
		return err
	default:
		return fmt.Errorf("%w: node kind %d has no textual form", ErrNotImplemented, node.Kind)
	}
}

func renderChildren(w io.Writer, node *Node) error {
	for _, child := range node.children {
		if err := render(w, child); err != nil {
			return err
		}
	}

	return nil
}

func renderElement(w io.Writer, node *Node) error {
	if err := renderOpenTag(w, node, len(node.children) == 0); err != nil {
		return err
	}

	if len(node.children) == 0 {
		return nil
	}

	if err := renderChildren(w, node); err != nil {
		return err
	}

	_, err := fmt.Fprint(w, "</", node.Name, ">")
	return err
}

func renderOpenTag(w io.Writer, node *Node, closed bool) error {
	if _, err := fmt.Fprint(w, "<", node.Name); err != nil {
		return err
	}

	if err := renderAttrs(w, node.attr); err != nil {
		return err
	}

	if closed {
		_, err := fmt.Fprint(w, "/>")
		return err
	}

	_, err := fmt.Fprint(w, ">")
	return err
}

func renderAttrs(w io.Writer, attrs []Attr) error {
	for _, a := range attrs {
		if _, err := fmt.Fprint(w, " ", a.Name, "=\"", escapeAttr(a.Value), "\""); err != nil {
			return err
		}
	}

	return nil
}

// RenderIndent renders the node reformatted for readability: elements with
// element content are placed on their own lines, elements holding character
// data are kept compact so significant whitespace is not disturbed.
func RenderIndent(w io.Writer, node *Node, indent string) error {
	return renderIndent(w, node, indent, 0)
}

func renderIndent(w io.Writer, node *Node, indent string, depth int) error {
	switch node.Kind {
	case DocumentKind:
		first := true
		for _, child := range node.children {
			if blank(child) {
				continue
			}

			if !first {
				if _, err := fmt.Fprint(w, "\n"); err != nil {
					return err
				}
			}

			first = false

			if err := renderIndent(w, child, indent, depth); err != nil {
				return err
			}
		}

		return nil
	case ElementKind:
		if _, err := fmt.Fprint(w, strings.Repeat(indent, depth)); err != nil {
			return err
		}

		visible := 0
		for _, child := range node.children {
			if !blank(child) {
				visible++
			}
		}

		if visible == 0 || mixed(node) {
			return render(w, node)
		}

		if err := renderOpenTag(w, node, false); err != nil {
			return err
		}

		for _, child := range node.children {
			if blank(child) {
				continue
			}

			if _, err := fmt.Fprint(w, "\n"); err != nil {
				return err
			}

			if err := renderIndent(w, child, indent, depth+1); err != nil {
				return err
			}
		}

		_, err := fmt.Fprint(w, "\n", strings.Repeat(indent, depth), "</", node.Name, ">")
		return err
	default:
		if _, err := fmt.Fprint(w, strings.Repeat(indent, depth)); err != nil {
			return err
		}

		return render(w, node)
	}
}

// mixed reports whether the element holds visible character data and
// therefore must be rendered without reformatting
func mixed(node *Node) bool {
	for _, child := range node.children {
		if child.Kind == CDataKind {
			return true
		}

		if child.Kind == TextKind && strings.TrimSpace(child.Data) != "" {
			return true
		}
	}

	return false
}

// blank reports whether the node is whitespace-only text, which can be
// dropped when reformatting
func blank(node *Node) bool {
	return node.Kind == TextKind && strings.TrimSpace(node.Data) == ""
}
