package output

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/logkit/pkg/jsonvalue"
)

// YAMLFormatter formats the records as a YAML sequence, keeping member order.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Name returns the format name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Format renders the report as a YAML document.
func (f *YAMLFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(toNode(report.Array())); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return encoder.Close()
}

// toNode converts a JSON value into a yaml.Node tree. Mapping nodes keep their
// content in member order, which a map[string]any round trip would lose.
func toNode(v jsonvalue.Value) *yaml.Node {
	switch tv := v.(type) {
	case jsonvalue.Bool:
		return scalar("!!bool", strconv.FormatBool(bool(tv)))
	case jsonvalue.Number:
		switch tv {
		case "NaN":
			return scalar("!!float", ".nan")
		case "Infinity":
			return scalar("!!float", ".inf")
		case "-Infinity":
			return scalar("!!float", "-.inf")
		}
		tag := "!!int"
		if strings.ContainsAny(string(tv), ".eE") {
			tag = "!!float"
		}
		return scalar(tag, string(tv))
	case jsonvalue.String:
		return scalar("!!str", string(tv))
	case jsonvalue.Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range tv {
			node.Content = append(node.Content, toNode(item))
		}
		return node
	case *jsonvalue.Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range tv.Members() {
			node.Content = append(node.Content, scalar("!!str", m.Key), toNode(m.Value))
		}
		return node
	default:
		return scalar("!!null", "null")
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
