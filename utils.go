package xml

import (
	"fmt"
	"strconv"
	"strings"
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")

func escapeText(value string) string {
	return textEscaper.Replace(value)
}

func escapeAttr(value string) string {
	return attrEscaper.Replace(value)
}

// entity resolves a reference between & and ; to its character: one of the
// five predefined entities or a decimal/hexadecimal character reference.
func entity(name string) (rune, error) {
	switch name {
	case "amp":
		return '&', nil
	case "lt":
		return '<', nil
	case "gt":
		return '>', nil
	case "quot":
		return '"', nil
	case "apos":
		return '\'', nil
	}

	if strings.HasPrefix(name, "#x") || strings.HasPrefix(name, "#X") {
		code, err := strconv.ParseUint(name[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("character reference &%s; is malformed", name)
		}

		return rune(code), nil
	}

	if strings.HasPrefix(name, "#") {
		code, err := strconv.ParseUint(name[1:], 10, 32)
		if err != nil {
			return 0, fmt.Errorf("character reference &%s; is malformed", name)
		}

		return rune(code), nil
	}

	return 0, fmt.Errorf("entity &%s; is not defined", name)
}

// validateName checks a string against XML name rules, as used for element
// names, attribute names and processing instruction targets.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidArgument)
	}

	for pos, char := range name {
		if pos == 0 && !isNameStart(char) {
			return fmt.Errorf("%w: name %#v can not start with %#v", ErrInvalidArgument, name, string(char))
		}

		if pos > 0 && !isNameChar(char) {
			return fmt.Errorf("%w: name %#v can not contain %#v", ErrInvalidArgument, name, string(char))
		}
	}

	return nil
}

func isNameStart(r rune) bool {
	switch {
	case r == ':' || r == '_':
		return true
	case 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
		return true
	case 0xC0 <= r && r <= 0xD6 || 0xD8 <= r && r <= 0xF6 || 0xF8 <= r && r <= 0x2FF:
		return true
	case 0x370 <= r && r <= 0x37D || 0x37F <= r && r <= 0x1FFF:
		return true
	case 0x200C <= r && r <= 0x200D || 0x2070 <= r && r <= 0x218F:
		return true
	case 0x2C00 <= r && r <= 0x2FEF || 0x3001 <= r && r <= 0xD7FF:
		return true
	case 0xF900 <= r && r <= 0xFDCF || 0xFDF0 <= r && r <= 0xFFFD:
		return true
	case 0x10000 <= r && r <= 0xEFFFF:
		return true
	default:
		return false
	}
}

func isNameChar(r rune) bool {
	switch {
	case isNameStart(r):
		return true
	case r == '-' || r == '.' || '0' <= r && r <= '9':
		return true
	case r == 0xB7 || 0x300 <= r && r <= 0x36F || 0x203F <= r && r <= 0x2040:
		return true
	default:
		return false
	}
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\n', '\t', '\r':
		return true
	default:
		return false
	}
}
