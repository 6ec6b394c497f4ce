package descriptor

import "errors"

var (
	// ErrMissingRequirement is returned when neither the hints nor the
	// requirements of a tool contain a DockerRequirement.
	ErrMissingRequirement = errors.New("tool is missing DockerRequirement")

	// ErrMissingDockerPull is returned when the DockerRequirement has no
	// dockerPull image reference.
	ErrMissingDockerPull = errors.New(`please specify "dockerPull" in your DockerRequirement`)

	// ErrDigestPinned is returned when the image reference is pinned by digest
	// and therefore has no tag that could be replaced.
	ErrDigestPinned = errors.New("image is pinned by digest")
)

// MalformedError is returned when a part of a descriptor is neither a mapping
// nor a list. Path names the offending part, e.g. "hints" or "requirements[1]".
type MalformedError struct {
	Path string
}

func (e MalformedError) Error() string {
	return e.Path + " is neither a list nor a mapping"
}
