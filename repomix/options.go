// Package repomix drives the external repomix packaging tool.
package repomix

import (
	"fmt"
	"strings"
)

// Style is the output format of a packed artifact.
type Style string

const (
	StylePlain    Style = "plain"
	StyleMarkdown Style = "markdown"
	StyleXML      Style = "xml"
)

// Styles lists the supported styles in cycle order.
var Styles = []Style{StylePlain, StyleMarkdown, StyleXML}

// ParseStyle validates s. An empty string yields StylePlain.
func ParseStyle(s string) (Style, error) {
	if s == "" {
		return StylePlain, nil
	}
	for _, style := range Styles {
		if strings.EqualFold(s, string(style)) {
			return style, nil
		}
	}
	return "", fmt.Errorf("unknown style %q (want plain, markdown or xml)", s)
}

// Next returns the style after s, wrapping around.
func (s Style) Next() Style {
	for i, style := range Styles {
		if style == s {
			return Styles[(i+1)%len(Styles)]
		}
	}
	return StylePlain
}

// Ext is the conventional file extension for the style.
func (s Style) Ext() string {
	switch s {
	case StyleMarkdown:
		return ".md"
	case StyleXML:
		return ".xml"
	default:
		return ".txt"
	}
}

// Options is one invocation of the tool.
type Options struct {
	Directories       []string
	Include           string
	Ignore            string
	NoGitignore       bool
	NoDefaultPatterns bool
	Style             Style
	Copy              bool
	RemoveComments    bool
	RemoveEmptyLines  bool
	ParsableStyle     bool
	// Output writes the artifact to a file. When empty the artifact is
	// written to stdout and returned by the runner.
	Output string
}

// Args builds the argument list. Values are passed as separate arguments;
// no shell quoting is involved.
func (o Options) Args() []string {
	args := append([]string{}, o.Directories...)

	if o.Include != "" {
		args = append(args, "--include", o.Include)
	}
	if o.Ignore != "" {
		args = append(args, "-i", o.Ignore)
	}
	if o.NoGitignore {
		args = append(args, "--no-gitignore")
	}
	if o.NoDefaultPatterns {
		args = append(args, "--no-default-patterns")
	}
	if o.Style != "" {
		args = append(args, "--style", string(o.Style))
	}
	if o.ParsableStyle {
		args = append(args, "--parsable-style")
	}
	if o.Copy {
		args = append(args, "--copy")
	}
	if o.RemoveComments {
		args = append(args, "--remove-comments")
	}
	if o.RemoveEmptyLines {
		args = append(args, "--remove-empty-lines")
	}
	if o.Output != "" {
		args = append(args, "-o", o.Output)
	} else {
		args = append(args, "--stdout")
	}
	return args
}
