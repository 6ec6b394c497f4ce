package descriptor

import (
	_ "crypto/sha256" // registers sha256 for digest references
	"fmt"
	"regexp"
	"strings"

	"github.com/cwlbump/cwlbump/internal/sysutil"
	"github.com/docker/distribution/reference"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var tagPattern = regexp.MustCompile(`^` + reference.TagRegexp.String() + `$`)

// ReplaceTag returns image with its tag replaced by version. Everything up to
// the last colon is kept as is, so registry ports survive. An untagged image
// gets the version appended as its tag. Images that are not valid docker
// references, such as expressions or names with capitals, are rewritten the
// same way without further checks.
func ReplaceTag(image, version string) (string, error) {
	if !tagPattern.MatchString(version) {
		return "", fmt.Errorf("invalid image tag %q", version)
	}

	var tagged bool
	named, err := reference.ParseNormalizedNamed(image)
	if err == nil {
		if _, ok := named.(reference.Digested); ok {
			return "", fmt.Errorf("%s: %w", image, ErrDigestPinned)
		}
		_, tagged = named.(reference.Tagged)
	} else {
		if strings.Contains(image, "@") {
			return "", fmt.Errorf("%s: %w", image, ErrDigestPinned)
		}
		tagged = strings.Contains(image[strings.LastIndex(image, "/")+1:], ":")
	}

	if !tagged {
		return image + ":" + version, nil
	}
	parts := strings.Split(image, ":")
	parts[len(parts)-1] = version
	return strings.Join(parts, ":"), nil
}

// SetDockerPull writes value to the dockerPull field of the DockerRequirement
// at loc. loc must come from Locate on the same descriptor.
func (d *Descriptor) SetDockerPull(loc Location, value string) error {
	body := d.section(loc.Section)
	if body == nil {
		return ErrMissingRequirement
	}
	encoding, err := encodingOf(body, string(loc.Section))
	if err != nil {
		return err
	}
	if encoding != loc.Encoding {
		return fmt.Errorf(
			"%s is a %s, expected a %s", loc.Section, encoding, loc.Encoding,
		)
	}
	requirement, err := lookup(body, loc.Encoding, string(loc.Section))
	if err != nil {
		return err
	}
	if requirement == nil {
		return ErrMissingRequirement
	}

	dockerPull := mappingValue(requirement, "dockerPull")
	if dockerPull == nil {
		requirement.Content = append(requirement.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "dockerPull"},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
		return nil
	}
	dockerPull.Kind = yaml.ScalarNode
	dockerPull.Tag = "!!str"
	dockerPull.Value = value

	return nil
}

// EditResult describes the outcome of EditFile.
type EditResult struct {
	Path     string
	Location Location
	OldImage string
	NewImage string
	Changed  bool
}

// EditFile sets the image tag of the descriptor at path to version and writes
// the descriptor back. The file is left untouched if the tag already matches.
func EditFile(
	fs afero.Fs, logger logrus.FieldLogger, path string, version string,
) (result EditResult, err error) {
	result.Path = path

	info, err := fs.Stat(path)
	if err != nil {
		return
	}
	d, err := ReadFile(fs, path)
	if err != nil {
		return
	}

	result.Location, err = d.Locate()
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		return
	}
	result.OldImage = result.Location.DockerPull

	result.NewImage, err = ReplaceTag(result.OldImage, version)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
		return
	}
	logger.WithFields(logrus.Fields{
		"path":     path,
		"section":  result.Location.Section,
		"encoding": result.Location.Encoding,
	}).Debugf("%s -> %s", result.OldImage, result.NewImage)

	if result.NewImage == result.OldImage {
		return
	}

	err = d.SetDockerPull(result.Location, result.NewImage)
	if err != nil {
		return
	}
	out, err := d.Encode()
	if err != nil {
		return
	}
	err = sysutil.WriteFile(fs, path, out, info.Mode().Perm())
	if err != nil {
		return
	}
	result.Location.DockerPull = result.NewImage
	result.Changed = true

	return
}
