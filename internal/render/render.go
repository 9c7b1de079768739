// Package render prints decoded payloads and errors for the command line:
// a coloured field listing, ordered JSON or ordered YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/mkadit/qris"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

const (
	unknownTag    = "Unknown Tag"
	unknownSubTag = "Unknown Sub Tag"
)

// Renderer writes results to w. Known tags are printed green and unknown
// ones red in text mode.
type Renderer struct {
	w      io.Writer
	format Format
	known  *color.Color
	bad    *color.Color
}

// New returns a renderer. With useColor false, escape codes are never
// written; otherwise fatih/color decides based on the terminal.
func New(w io.Writer, format Format, useColor bool) *Renderer {
	r := &Renderer{
		w:      w,
		format: format,
		known:  color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
	}
	if !useColor {
		r.known.DisableColor()
		r.bad.DisableColor()
	}
	return r
}

// Format returns the output format.
func (r *Renderer) Format() Format {
	return r.format
}

// Payload writes the decoded fields.
func (r *Renderer) Payload(p *qris.Payload) error {
	switch r.format {
	case FormatJSON:
		return r.json(p)
	case FormatYAML:
		return r.yaml(p)
	default:
		return r.describe(p)
	}
}

func (r *Renderer) describe(p *qris.Payload) error {
	for _, f := range p.Fields() {
		label, ok := qris.TagName(f.Tag)
		c := r.known
		if !ok {
			label, c = unknownTag, r.bad
		}

		if !f.IsTemplate() {
			if _, err := c.Fprintf(r.w, "Tag %s (%s): %s\n", f.Tag, label, f.Value); err != nil {
				return err
			}
			continue
		}

		if _, err := c.Fprintf(r.w, "Tag %s (%s):\n", f.Tag, label); err != nil {
			return err
		}
		for _, sub := range f.Nested.Fields() {
			subLabel, ok := qris.SubTagName(sub.Tag)
			sc := r.known
			if !ok {
				subLabel, sc = unknownSubTag, r.bad
			}
			if _, err := sc.Fprintf(r.w, "  Sub Tag %s (%s): %s\n", sub.Tag, subLabel, sub.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) json(p *qris.Payload) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

func (r *Renderer) yaml(p *qris.Payload) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(PayloadNode(p)); err != nil {
		return err
	}
	return enc.Close()
}

// PayloadNode builds an ordered YAML mapping of p, templates as nested
// mappings. Every value is tagged as a string so "01" stays "01".
func PayloadNode(p *qris.Payload) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range p.Fields() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Tag}
		if f.IsTemplate() {
			n.Content = append(n.Content, key, PayloadNode(f.Nested))
			continue
		}
		n.Content = append(n.Content, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value})
	}
	return n
}

// Valid writes the success banner.
func (r *Renderer) Valid() error {
	if r.format != FormatText {
		return nil
	}
	_, err := fmt.Fprintln(r.w, "QRIS string is valid. Parsed values:")
	return err
}

// Invalid writes a validation failure in red.
func (r *Renderer) Invalid(err error) error {
	_, werr := r.bad.Fprintf(r.w, "QRIS string is invalid: %v\n", err)
	return werr
}

// Static writes a converted payload. A non-nil err marks it as failing
// self-verification.
func (r *Renderer) Static(s string, err error) error {
	if err != nil {
		if _, werr := r.bad.Fprintf(r.w, "CRC validation failed for the generated static QRIS string: %v\n", err); werr != nil {
			return werr
		}
	}
	if r.format == FormatText {
		_, werr := fmt.Fprintf(r.w, "\nConverted to Static QRIS:\n%s\n", s)
		return werr
	}
	_, werr := fmt.Fprintln(r.w, s)
	return werr
}
