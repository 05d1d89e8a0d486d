package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/eolymp/go-xml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	indent   string
	compact  bool
	colorize bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "xmlfmt [file]",
		Short: "Reformat an XML document",
		Long: `xmlfmt parses an XML document from a file or standard input and prints it
back reformatted: indented by default, or compact with --compact.`,
		Args: cobra.MaximumNArgs(1),

		// errors are reported below in a uniform way, so cobra should not
		// print usage or the error on its own
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: run,
	}

	cmd.Flags().StringVar(&indent, "indent", "  ", "Indentation for nested elements")
	cmd.Flags().BoolVar(&compact, "compact", false, "Render without extra whitespace instead of indenting")
	cmd.Flags().BoolVar(&colorize, "color", false, "Highlight markup in the output")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var reader io.Reader = cmd.InOrStdin()

	if len(args) == 1 {
		file, err := os.Open(args[0])
		if err != nil {
			return err
		}

		defer file.Close()

		reader = file
	}

	doc, err := xml.Parse(bufio.NewReader(reader))
	if err != nil {
		return err
	}

	buffer := bytes.NewBuffer(nil)

	if compact {
		err = xml.Render(buffer, doc)
	} else {
		err = xml.RenderIndent(buffer, doc, indent)
	}

	if err != nil {
		return err
	}

	out := buffer.String()
	if colorize {
		out = highlight(out)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

var tags = regexp.MustCompile(`<[/!?]?[\w:.-]+|[/?]?>`)
var attributes = regexp.MustCompile(`([\w:.-]+)=("[^"]*")`)

// highlight colors tag delimiters and attributes in rendered markup. The
// color package disables itself when stdout is not a terminal, so piping the
// output stays clean.
func highlight(out string) string {
	tag := color.New(color.FgBlue)
	name := color.New(color.FgCyan)
	value := color.New(color.FgGreen)

	out = tags.ReplaceAllStringFunc(out, func(m string) string {
		return tag.Sprint(m)
	})

	return attributes.ReplaceAllStringFunc(out, func(m string) string {
		parts := attributes.FindStringSubmatch(m)
		return name.Sprint(parts[1]) + "=" + value.Sprint(parts[2])
	})
}
