package xml

type CharData string
type Comment string
type CData string
type Doctype string

type StartTag struct {
	Name   string
	Attr   []Attr
	Closed bool // self-closing tag: <name/>
}

type EndTag struct {
	Name string
}

type ProcInst struct {
	Target string
	Data   string
}

type Decl struct {
	Attr []Attr
}
