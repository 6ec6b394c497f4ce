// Package descriptor reads, renders and edits CWL tool descriptors.
//
// Descriptors are kept as a YAML node tree, so editing a descriptor preserves
// key order and comments of the document as it was read.
package descriptor

import (
	"bytes"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Descriptor is a parsed tool descriptor.
type Descriptor struct {
	root *yaml.Node
}

// Parse parses a YAML or JSON tool descriptor. The document must be a mapping.
func Parse(data []byte) (*Descriptor, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 ||
		resolve(root.Content[0]).Kind != yaml.MappingNode {
		return nil, MalformedError{Path: "document"}
	}
	return &Descriptor{root: &root}, nil
}

// ReadFile reads and parses the descriptor at path.
func ReadFile(fs afero.Fs, path string) (*Descriptor, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Encode serializes the descriptor as YAML with a two space indent.
func (d *Descriptor) Encode() (out []byte, err error) {
	yamlBuffer := &bytes.Buffer{}
	yamlEncoder := yaml.NewEncoder(yamlBuffer)
	yamlEncoder.SetIndent(2)
	err = yamlEncoder.Encode(d.root)
	if err != nil {
		return
	}
	err = yamlEncoder.Close()
	if err != nil {
		return
	}
	out = yamlBuffer.Bytes()
	return
}

func (d *Descriptor) section(section Section) *yaml.Node {
	return mappingValue(resolve(d.root.Content[0]), string(section))
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return resolve(node.Content[i+1])
		}
	}
	return nil
}

func resolve(node *yaml.Node) *yaml.Node {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
