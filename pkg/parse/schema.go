package parse

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/typeparse/pkg/types"
)

// Parser names accepted in schema files.
const (
	ParserNumber = "number"
	ParserString = "string"
	ParserAuto   = "auto"
)

// builtinParsers maps schema names to parsers.
var builtinParsers = map[string]Parser{
	ParserNumber: Number,
	ParserString: String,
	ParserAuto:   Auto,
}

// Lookup returns the built-in parser registered under name.
func Lookup(name string) (Parser, error) {
	p, ok := builtinParsers[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, types.ErrUnknownParser)
	}
	return p, nil
}

// ParseSchema decodes a YAML schema. Each key maps either to a parser name
// or to a nested mapping describing an object field:
//
//	dog: number
//	cat: string
//	obj:
//	  sup: number
//
// An empty document yields an empty schema.
func ParseSchema(data []byte) (Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return Schema{}, nil
		}
		doc = doc.Content[0]
	}
	if doc.Kind == 0 || (doc.Kind == yaml.ScalarNode && doc.ShortTag() == "!!null") {
		return Schema{}, nil
	}
	return schemaFromNode(doc, "")
}

// LoadSchema reads and decodes a YAML schema from r.
func LoadSchema(r io.Reader) (Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return ParseSchema(data)
}

// LoadSchemaFile reads and decodes the YAML schema at path.
func LoadSchemaFile(path string) (Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()
	return LoadSchema(f)
}

func schemaFromNode(n *yaml.Node, path string) (Schema, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: expected mapping at line %d: %w", pathOrRoot(path), n.Line, types.ErrInvalidSchema)
	}

	schema := make(Schema, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		key := keyNode.Value
		fieldPath := joinPath(path, key)
		if _, dup := schema[key]; dup {
			return nil, fmt.Errorf("%s: duplicate key at line %d: %w", fieldPath, keyNode.Line, types.ErrInvalidSchema)
		}

		switch valNode.Kind {
		case yaml.ScalarNode:
			p, err := Lookup(valNode.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fieldPath, err)
			}
			schema[key] = p
		case yaml.MappingNode:
			sub, err := schemaFromNode(valNode, fieldPath)
			if err != nil {
				return nil, err
			}
			schema[key] = ObjectOf(sub)
		default:
			return nil, fmt.Errorf("%s: expected parser name or mapping at line %d: %w", fieldPath, valNode.Line, types.ErrInvalidSchema)
		}
	}
	return schema, nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func pathOrRoot(path string) string {
	if path == "" {
		return "$"
	}
	return path
}
