package convert

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SplitDocTypes parses a comma-separated type list as typed at the prompt.
// Blank input means all types and returns nil.
func SplitDocTypes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var types []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			types = append(types, part)
		}
	}
	return types
}

// DocTypesFromYAML converts a doc_types configuration value to a type list.
// An absent value returns nil (all types). Anything but a sequence of
// scalars is rejected with ErrInvalidArgument.
func DocTypesFromYAML(node yaml.Node) ([]string, error) {
	if node.IsZero() {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: doc_types must be a list of document types (line %d)", ErrInvalidArgument, node.Line)
	}

	types := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: doc_types entries must be strings (line %d)", ErrInvalidArgument, item.Line)
		}
		types = append(types, item.Value)
	}
	return types, nil
}
