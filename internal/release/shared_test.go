package release_test

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cwlbump/cwlbump/internal/release"
	"github.com/sirupsen/logrus"
)

// fakeRepo records every call so tests can assert which operations ran.
type fakeRepo struct {
	dirty    bool
	branch   string
	behind   int
	tracking string
	tags     []release.Tag

	fetchErr  error
	commitErr error
	pushErr   error

	calls []string
}

func (r *fakeRepo) record(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *fakeRepo) IsDirty() (bool, error) {
	r.record("IsDirty")
	return r.dirty, nil
}

func (r *fakeRepo) CurrentBranch() (string, error) {
	r.record("CurrentBranch")
	return r.branch, nil
}

func (r *fakeRepo) Fetch(ctx context.Context) error {
	r.record("Fetch")
	return r.fetchErr
}

func (r *fakeRepo) CommitsBehind(branch string) (int, error) {
	r.record("CommitsBehind %s", branch)
	return r.behind, nil
}

func (r *fakeRepo) TrackingBranch(branch string) (string, error) {
	r.record("TrackingBranch %s", branch)
	return r.tracking, nil
}

func (r *fakeRepo) Tags() ([]release.Tag, error) {
	r.record("Tags")
	return r.tags, nil
}

func (r *fakeRepo) Commit(paths []string, message string) error {
	r.record("Commit %s %q", strings.Join(paths, ","), message)
	return r.commitErr
}

func (r *fakeRepo) Push(ctx context.Context, branch string) error {
	r.record("Push %s", branch)
	return r.pushErr
}

func (r *fakeRepo) CreateTag(name string, message string) error {
	r.record("CreateTag %s %q", name, message)
	return nil
}

func (r *fakeRepo) PushTag(ctx context.Context, name string) error {
	r.record("PushTag %s", name)
	return nil
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

var testSettings = release.Settings{
	MainBranch:     "main",
	RemoteName:     "origin",
	ToolsDir:       "/repo/cwl",
	TemplatesDir:   "/repo/template",
	TemplateSuffix: ".mustache",
}
