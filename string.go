package xml

import "bytes"

// String renders the node to XML markup.
func String(node *Node) (string, error) {
	buffer := bytes.NewBuffer(nil)
	if err := Render(buffer, node); err != nil {
		return "", err
	}

	return buffer.String(), nil
}

// Text collects unescaped character data of the node and its descendants.
func Text(node *Node) (out string) {
	if node.Kind == TextKind || node.Kind == CDataKind {
		return node.Data
	}

	for _, child := range node.children {
		out += Text(child)
	}

	return
}
