package xml

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAttrs(t *testing.T) {
	node, err := NewElement("a")
	if err != nil {
		t.Fatal(err)
	}

	if err := node.SetAttr("href", "https://eolymp.com"); err != nil {
		t.Fatal(err)
	}

	if err := node.SetAttr("rel", "nofollow"); err != nil {
		t.Fatal(err)
	}

	// replacing a value must keep the attribute in place
	if err := node.SetAttr("href", "https://basecamp.eolymp.com"); err != nil {
		t.Fatal(err)
	}

	want := []Attr{
		{Name: "href", Value: "https://basecamp.eolymp.com"},
		{Name: "rel", Value: "nofollow"},
	}

	if diff := cmp.Diff(want, node.Attrs()); diff != "" {
		t.Errorf("Attributes do not match (-want +got):\n%s", diff)
	}

	if v, ok := node.Attr("rel"); !ok || v != "nofollow" {
		t.Errorf("Attribute rel does not match: want %v, got %v (set: %v)", "nofollow", v, ok)
	}

	if _, ok := node.Attr("class"); ok {
		t.Errorf("Attribute class should not be set")
	}

	if !node.RemoveAttr("rel") {
		t.Errorf("RemoveAttr should return true for a set attribute")
	}

	if node.RemoveAttr("rel") {
		t.Errorf("RemoveAttr should return false for an unset attribute")
	}

	if err := node.SetAttr("1up", "x"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetAttr should reject invalid names, got %v", err)
	}
}

func TestAttrsCopy(t *testing.T) {
	node, err := NewElement("a")
	if err != nil {
		t.Fatal(err)
	}

	if err := node.SetAttr("href", "x"); err != nil {
		t.Fatal(err)
	}

	attrs := node.Attrs()
	attrs[0].Value = "changed"

	if v, _ := node.Attr("href"); v != "x" {
		t.Errorf("Attrs should return a copy, attribute value changed to %v", v)
	}
}

func TestDeclAttrs(t *testing.T) {
	tt := []struct {
		name  string
		input string
		want  []Attr
		fails bool
	}{
		{
			name:  "version only",
			input: `version="1.0"`,
			want:  []Attr{{Name: "version", Value: "1.0"}},
		},
		{
			name:  "version and encoding",
			input: `version="1.0" encoding="UTF-8"`,
			want: []Attr{
				{Name: "version", Value: "1.0"},
				{Name: "encoding", Value: "UTF-8"},
			},
		},
		{
			name:  "single quotes and spacing",
			input: `  version = '1.1'   standalone = 'yes' `,
			want: []Attr{
				{Name: "version", Value: "1.1"},
				{Name: "standalone", Value: "yes"},
			},
		},
		{
			name:  "empty",
			input: "   ",
			want:  nil,
		},
		{
			name:  "missing value",
			input: `version`,
			fails: true,
		},
		{
			name:  "unquoted value",
			input: `version=1.0`,
			fails: true,
		},
		{
			name:  "unclosed value",
			input: `version="1.0`,
			fails: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := declAttrs(tc.input)
			if tc.fails {
				if err == nil {
					t.Fatalf("Parsing should fail, got %#v", got)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Attributes do not match (-want +got):\n%s", diff)
			}
		})
	}
}
