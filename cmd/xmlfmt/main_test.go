package main

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestHighlight(t *testing.T) {
	defer func(prev bool) { color.NoColor = prev }(color.NoColor)

	color.NoColor = true
	if got, want := highlight("<a href=\"x\">hi</a>"), "<a href=\"x\">hi</a>"; got != want {
		t.Errorf("Markup should be unchanged without colors: want %#v, got %#v", want, got)
	}

	color.NoColor = false
	got := highlight("<a href=\"x\">hi</a>")

	for _, code := range []string{"\x1b[34m", "\x1b[36m", "\x1b[32m"} {
		if !strings.Contains(got, code) {
			t.Errorf("Markup should contain color code %#v, got %#v", code, got)
		}
	}
}
