package xml_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/eolymp/go-xml"
)

func TestParser(t *testing.T) {
	must := func(node *xml.Node, err error) *xml.Node {
		if err != nil {
			t.Fatal(err)
		}

		return node
	}

	attach := func(node *xml.Node, children ...*xml.Node) *xml.Node {
		for _, child := range children {
			if _, err := node.InsertChild(child); err != nil {
				t.Fatal(err)
			}
		}

		return node
	}

	doc := func(children ...*xml.Node) *xml.Node {
		return attach(xml.NewDocument(), children...)
	}

	element := func(name string, children ...*xml.Node) *xml.Node {
		return attach(must(xml.NewElement(name)), children...)
	}

	elementa := func(name string, attrs []xml.Attr, children ...*xml.Node) *xml.Node {
		node := must(xml.NewElement(name))
		for _, a := range attrs {
			if err := node.SetAttr(a.Name, a.Value); err != nil {
				t.Fatal(err)
			}
		}

		return attach(node, children...)
	}

	text := func(data string) *xml.Node {
		return xml.NewText(data)
	}

	tt := []struct {
		name   string
		input  string
		output *xml.Node
	}{
		{
			name:   "simple element",
			input:  "<a>text</a>",
			output: doc(element("a", text("text"))),
		},
		{
			name:  "nested elements with attributes",
			input: "<a x=\"1\"><b/>mid<c y=\"2\">end</c></a>",
			output: doc(elementa("a", []xml.Attr{{Name: "x", Value: "1"}},
				element("b"),
				text("mid"),
				elementa("c", []xml.Attr{{Name: "y", Value: "2"}}, text("end")),
			)),
		},
		{
			name:  "document with prolog",
			input: "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<!DOCTYPE html>\n<html lang=\"en\"><body>hi</body></html>",
			output: doc(
				must(xml.NewDecl("1.0", "UTF-8", "")),
				text("\n"),
				xml.NewDoctype("html"),
				text("\n"),
				elementa("html", []xml.Attr{{Name: "lang", Value: "en"}},
					element("body", text("hi")),
				),
			),
		},
		{
			name:  "comment and cdata",
			input: "<a><!-- note --><![CDATA[1 < 2]]></a>",
			output: doc(element("a",
				must(xml.NewComment(" note ")),
				must(xml.NewCData("1 < 2")),
			)),
		},
		{
			name:  "processing instruction",
			input: "<?stylesheet href=\"x.css\"?><a/>",
			output: doc(
				must(xml.NewProcInst("stylesheet", "href=\"x.css\"")),
				element("a"),
			),
		},
		{
			name:  "references are resolved",
			input: "<a href=\"?x=1&amp;y=2\">fish &amp; chips</a>",
			output: doc(elementa("a", []xml.Attr{{Name: "href", Value: "?x=1&y=2"}},
				text("fish & chips"),
			)),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			parser := xml.NewParser(strings.NewReader(tc.input))

			got, err := parser.Parse()
			if err != nil {
				t.Fatalf("Unable to parse document: %v", err)
			}

			want := tc.output

			if !reflect.DeepEqual(want, got) {
				w, _ := xml.String(want)
				g, _ := xml.String(got)

				t.Errorf("Tree does not match:\nWANT:\n  %s\nGOT:\n  %s\n", w, g)
			}
		})
	}
}

func TestParserErrors(t *testing.T) {
	tt := []struct {
		name  string
		input string
	}{
		{name: "mismatched closing tag", input: "<a></b>"},
		{name: "unclosed element", input: "<a><b></b>"},
		{name: "unexpected closing tag", input: "</a>"},
		{name: "duplicate attribute", input: "<a x=\"1\" x=\"2\"/>"},
		{name: "declaration after content", input: "<a/><?xml version=\"1.0\"?>"},
		{name: "unknown entity", input: "<a>&nope;</a>"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got, err := xml.Parse(strings.NewReader(tc.input)); err == nil {
				out, _ := xml.String(got)
				t.Fatalf("Parsing should fail, got %#v", out)
			}
		})
	}
}
