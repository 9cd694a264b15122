package tokens

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	tserrors "github.com/alexisbeaulieu97/tokenscope/pkg/errors"
)

// Decode parses a YAML or JSON token module. Key order is preserved. Token
// definitions that are not mappings are skipped and counted in Module.Skipped.
// The name is used for error reporting only.
func Decode(name string, data []byte) (*Module, error) {
	root, err := decodeRoot(data)
	if err != nil {
		return nil, tserrors.NewParseError(name, errorLine(data, err), err)
	}

	module := &Module{}
	if root == nil {
		return module, nil
	}

	if root.Kind != yaml.MappingNode {
		return nil, tserrors.NewParseError(name, root.Line, fmt.Errorf("token module must be a mapping of components, got %s", kindName(root.Kind)))
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		file := File{Component: root.Content[i].Value}
		file.Groups = module.decodeGroups(root.Content[i+1])
		module.Files = append(module.Files, file)
	}

	return module, nil
}

func (m *Module) decodeGroups(node *yaml.Node) []Group {
	node = resolve(node)
	if node.Kind != yaml.MappingNode {
		return nil
	}

	groups := make([]Group, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		group := Group{Selector: node.Content[i].Value}
		value := resolve(node.Content[i+1])
		if value.Kind != yaml.MappingNode {
			group.Missing = true
			groups = append(groups, group)
			continue
		}
		for j := 0; j+1 < len(value.Content); j += 2 {
			def, ok := decodeDefinition(value.Content[j+1])
			if !ok {
				m.Skipped++
				continue
			}
			group.Tokens = append(group.Tokens, Token{Key: value.Content[j].Value, Definition: def})
		}
		groups = append(groups, group)
	}
	return groups
}

func decodeDefinition(node *yaml.Node) (Definition, bool) {
	node = resolve(node)
	if node.Kind != yaml.MappingNode {
		return Definition{}, false
	}

	var def Definition
	for i := 0; i+1 < len(node.Content); i += 2 {
		value := resolve(node.Content[i+1])
		switch node.Content[i].Value {
		case "name":
			def.Name = scalar(value)
		case "value":
			def.Value = scalar(value)
		case "values":
			if value.Kind != yaml.SequenceNode {
				continue
			}
			def.Values = make([]string, 0, len(value.Content))
			literals := make([]bool, len(value.Content))
			anyLiteral := false
			for i, item := range value.Content {
				item = resolve(item)
				def.Values = append(def.Values, scalar(item))
				literals[i] = isLiteral(item)
				anyLiteral = anyLiteral || literals[i]
			}
			if anyLiteral {
				def.Literals = literals
			}
		}
	}
	return def, true
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node == nil {
		return &yaml.Node{}
	}
	return node
}

func scalar(node *yaml.Node) string {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return ""
	}
	return node.Value
}

// isLiteral reports whether a scalar is a number or boolean whose text is
// also valid JSON, so it serialises without quotes.
func isLiteral(node *yaml.Node) bool {
	if node.Kind != yaml.ScalarNode {
		return false
	}
	switch node.Tag {
	case "!!int", "!!float", "!!bool":
		return json.Valid([]byte(node.Value))
	}
	return false
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "kind " + strconv.Itoa(int(kind))
	}
}

// decodeRoot returns the document's top-level node, or nil for an empty
// document. Input starting with '{' or '[' goes through encoding/json since
// yaml.v3 rejects some valid JSON, such as the \/ escape. YAML flow
// documents that are not JSON still fall back to yaml.v3.
func decodeRoot(data []byte) (*yaml.Node, error) {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		root, jsonErr := decodeJSON(data)
		if jsonErr == nil {
			return root, nil
		}
		if root, err := decodeYAML(data); err == nil {
			return root, nil
		}
		return nil, jsonErr
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}

// errorLine finds the line a decode error points at.
func errorLine(data []byte, err error) int {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return lineAt(data, syntaxErr.Offset)
	}
	return tserrors.ExtractLine(err)
}
