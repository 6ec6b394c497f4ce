package descriptor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const dockerRequirementClass = "DockerRequirement"

// Section is a top-level descriptor key that may hold a DockerRequirement.
type Section string

const (
	// Hints is the "hints" section of a descriptor.
	Hints Section = "hints"
	// Requirements is the "requirements" section of a descriptor.
	Requirements Section = "requirements"
)

// Sections are searched in this order.
var searchOrder = []Section{Hints, Requirements}

// Encoding describes how a section lists its requirements.
type Encoding uint32

const (
	// Mapping maps requirement class names to requirement bodies.
	Mapping Encoding = iota
	// Sequence lists requirement objects that carry a "class" field.
	Sequence
)

func (e Encoding) String() string {
	switch e {
	case Mapping:
		return "mapping"
	case Sequence:
		return "sequence"
	}
	return fmt.Sprintf("Encoding(%d)", uint32(e))
}

// Location describes where the DockerRequirement of a descriptor was found
// and holds its image reference.
type Location struct {
	Section    Section
	Encoding   Encoding
	DockerPull string
}

// Locate finds the DockerRequirement of the descriptor, looking in the hints
// first and in the requirements second.
func (d *Descriptor) Locate() (loc Location, err error) {
	var requirement *yaml.Node
	for _, section := range searchOrder {
		body := d.section(section)
		if body == nil {
			continue
		}

		var encoding Encoding
		encoding, err = encodingOf(body, string(section))
		if err != nil {
			return
		}
		requirement, err = lookup(body, encoding, string(section))
		if err != nil {
			return
		}
		if requirement != nil {
			loc.Section = section
			loc.Encoding = encoding
			break
		}
	}
	if requirement == nil {
		err = ErrMissingRequirement
		return
	}

	dockerPull := mappingValue(requirement, "dockerPull")
	if dockerPull == nil || dockerPull.Kind != yaml.ScalarNode ||
		isNull(dockerPull) || dockerPull.Value == "" {
		loc = Location{}
		err = ErrMissingDockerPull
		return
	}
	loc.DockerPull = dockerPull.Value

	return
}

func encodingOf(body *yaml.Node, path string) (Encoding, error) {
	switch body.Kind {
	case yaml.MappingNode:
		return Mapping, nil
	case yaml.SequenceNode:
		return Sequence, nil
	}
	return 0, MalformedError{Path: path}
}

// lookup returns the DockerRequirement body of a section, or nil if the
// section has none.
func lookup(body *yaml.Node, encoding Encoding, path string) (*yaml.Node, error) {
	switch encoding {
	case Mapping:
		requirement := mappingValue(body, dockerRequirementClass)
		if requirement == nil || isNull(requirement) {
			return nil, nil
		}
		if requirement.Kind != yaml.MappingNode {
			return nil, MalformedError{Path: path + "." + dockerRequirementClass}
		}
		return requirement, nil

	case Sequence:
		for i, item := range body.Content {
			item = resolve(item)
			if item.Kind != yaml.MappingNode {
				return nil, MalformedError{Path: fmt.Sprintf("%s[%d]", path, i)}
			}
			class := mappingValue(item, "class")
			if class != nil && class.Value == dockerRequirementClass {
				return item, nil
			}
		}
		return nil, nil
	}
	return nil, MalformedError{Path: path}
}
