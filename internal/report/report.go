package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/screensplit/internal/docker"
	"github.com/shinji-kodama/screensplit/internal/layout"
)

// Format selects how a plan is rendered.
type Format string

const (
	// FormatText is the line-per-server table.
	FormatText Format = "text"

	// FormatJSON is the table as an indented JSON document.
	FormatJSON Format = "json"

	// FormatYAML is the table as a YAML document.
	FormatYAML Format = "yaml"

	// FormatCompose is a docker compose networks fragment.
	FormatCompose Format = "compose"

	// FormatDocker is a JSON array of Engine API network-create bodies.
	FormatDocker Format = "docker"
)

// String returns the string representation of Format.
func (f Format) String() string {
	return string(f)
}

// IsValid checks whether the Format value is one of the predefined formats.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatCompose, FormatDocker:
		return true
	default:
		return false
	}
}

// ParseFormat converts a string to a Format.
// Returns an error if the string does not match any valid format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid format: %q (valid: text, json, yaml, compose, docker)", s)
	}
	return f, nil
}

// documentJSON is the json/yaml output structure.
type documentJSON struct {
	Width      int          `json:"width" yaml:"width"`
	Height     int          `json:"height" yaml:"height"`
	Network    string       `json:"network" yaml:"network"`
	ChunkWidth int          `json:"chunkWidth" yaml:"chunkWidth"`
	Servers    []serverJSON `json:"servers" yaml:"servers"`
}

// serverJSON is one server row in the json/yaml output.
type serverJSON struct {
	Index  int    `json:"index" yaml:"index"`
	Subnet string `json:"subnet" yaml:"subnet"`
	XStart int    `json:"xStart" yaml:"xStart"`
	XEnd   int    `json:"xEnd" yaml:"xEnd"`
}

// Render returns the complete rendering of p in format f.
func Render(p *layout.Plan, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return renderText(p), nil
	case FormatJSON:
		data, err := json.MarshalIndent(document(p), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize JSON report: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(document(p))
		if err != nil {
			return nil, fmt.Errorf("failed to serialize YAML report: %w", err)
		}
		return data, nil
	case FormatCompose:
		return GenerateComposeNetworks(p)
	case FormatDocker:
		reqs, err := docker.NetworkRequests(p)
		if err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(reqs, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize network requests: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("invalid format: %q", f)
	}
}

// Write renders p and writes it to w in a single call.
func Write(w io.Writer, p *layout.Plan, f Format) error {
	data, err := Render(p, f)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// renderText produces one line per server in index order.
func renderText(p *layout.Plan) []byte {
	var buf bytes.Buffer
	for _, a := range p.Assignments {
		buf.WriteString(a.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// document converts a plan into the json/yaml output structure.
func document(p *layout.Plan) documentJSON {
	doc := documentJSON{
		Width:      p.Layout.Width,
		Height:     p.Layout.Height,
		Network:    p.Layout.Network.String(),
		ChunkWidth: p.ChunkWidth,
		// Use an empty slice instead of nil so JSON shows [] rather than null.
		Servers: make([]serverJSON, 0, len(p.Assignments)),
	}
	for _, a := range p.Assignments {
		doc.Servers = append(doc.Servers, serverJSON{
			Index:  a.Index,
			Subnet: a.Subnet.String(),
			XStart: a.X.Start,
			XEnd:   a.X.End,
		})
	}
	return doc
}
