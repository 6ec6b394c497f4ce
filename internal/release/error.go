package release

import "errors"

// ErrNoReleaseTags is returned when the repository has no v<semver> tags.
var ErrNoReleaseTags = errors.New("no release tags found")

// PreconditionError is returned when a release check fails.
type PreconditionError struct {
	Check  string
	Reason string
}

func (e PreconditionError) Error() string {
	return "cannot create a release: " + e.Reason
}
