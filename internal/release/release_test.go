package release_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cwlbump/cwlbump/internal/release"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

const (
	toolTemplate = `class: CommandLineTool
hints:
  DockerRequirement:
    dockerPull: example/tool:{{version}}
`
	upToDateTool = `class: CommandLineTool
hints:
  DockerRequirement:
    dockerPull: example/tool:1.3.0
`
)

func setupFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	localFS := afero.NewMemMapFs()
	for path, contents := range files {
		if err := afero.WriteFile(localFS, path, []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return localFS
}

func releasedRepo() *fakeRepo {
	return &fakeRepo{
		branch:   "main",
		tracking: "origin/main",
		tags: []release.Tag{
			{Name: "v1.2.0", Commit: "bbb", CommitDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			{Name: "v1.1.0", Commit: "aaa", CommitDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

var checkCalls = []string{
	"IsDirty",
	"CurrentBranch",
	"Fetch",
	"CommitsBehind main",
	"TrackingBranch main",
}

func TestReleaser_Run(t *testing.T) {
	tests := []struct {
		name        string
		repo        *fakeRepo
		files       map[string]string
		opts        release.Options
		wantVersion string
		wantErr     string
		wantCalls   []string
		wantOut     string
		wantTool    string
	}{
		{
			name:        "minor release",
			repo:        releasedRepo(),
			files:       map[string]string{"/repo/template/tool.cwl.mustache": toolTemplate},
			wantVersion: "1.3.0",
			wantCalls: append(append([]string{}, checkCalls...),
				"Tags",
				`Commit /repo/cwl "Update docker image version in CWL tool to 1.3.0 [skip-ci]"`,
				"Push main",
				`CreateTag v1.3.0 ""`,
				"PushTag v1.3.0",
			),
			wantOut: `🏷  v1.2.0 -> v1.3.0 (minor)
👷 Regenerating tools in /repo/cwl ...
👷 Committing 1 updated tools ...
👷 Tagging v1.3.0 ...
🎉 Released v1.3.0
`,
			wantTool: upToDateTool,
		},
		{
			name:        "annotated major release",
			repo:        releasedRepo(),
			files:       map[string]string{"/repo/template/tool.cwl.mustache": toolTemplate},
			opts:        release.Options{Bump: release.Major, Annotate: true},
			wantVersion: "2.0.0",
			wantCalls: append(append([]string{}, checkCalls...),
				"Tags",
				`Commit /repo/cwl "Update docker image version in CWL tool to 2.0.0 [skip-ci]"`,
				"Push main",
				`CreateTag v2.0.0 "Release v2.0.0"`,
				"PushTag v2.0.0",
			),
			wantTool: strings.Replace(upToDateTool, "1.3.0", "2.0.0", 1),
		},
		{
			name: "tools already up-to-date",
			repo: releasedRepo(),
			files: map[string]string{
				"/repo/template/tool.cwl.mustache": toolTemplate,
				"/repo/cwl/tool.cwl":               upToDateTool,
			},
			wantVersion: "1.3.0",
			wantCalls: append(append([]string{}, checkCalls...),
				"Tags",
				`CreateTag v1.3.0 ""`,
				"PushTag v1.3.0",
			),
			wantOut: `🏷  v1.2.0 -> v1.3.0 (minor)
👷 Regenerating tools in /repo/cwl ...
✅ tools already up-to-date
👷 Tagging v1.3.0 ...
🎉 Released v1.3.0
`,
			wantTool: upToDateTool,
		},
		{
			name:        "dry run",
			repo:        releasedRepo(),
			files:       map[string]string{"/repo/template/tool.cwl.mustache": toolTemplate},
			opts:        release.Options{DryRun: true},
			wantVersion: "1.3.0",
			wantCalls:   append(append([]string{}, checkCalls...), "Tags"),
			wantOut: `🏷  v1.2.0 -> v1.3.0 (minor)
`,
		},
		{
			name: "dirty repo aborts before any change",
			repo: func() *fakeRepo {
				r := releasedRepo()
				r.dirty = true
				return r
			}(),
			files:     map[string]string{"/repo/template/tool.cwl.mustache": toolTemplate},
			wantErr:   "cannot create a release: repo is dirty. Commit first, then rerun",
			wantCalls: []string{"IsDirty"},
		},
		{
			name: "no release tags",
			repo: func() *fakeRepo {
				r := releasedRepo()
				r.tags = nil
				return r
			}(),
			wantErr:   "no release tags found",
			wantCalls: append(append([]string{}, checkCalls...), "Tags"),
		},
		{
			name: "next tag exists",
			repo: func() *fakeRepo {
				r := releasedRepo()
				r.tags = append(r.tags, release.Tag{Name: "v1.3.0", CommitDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)})
				return r
			}(),
			wantErr:   "tag v1.3.0 already exists",
			wantCalls: append(append([]string{}, checkCalls...), "Tags"),
		},
		{
			name: "push failure keeps the commit and skips the tag",
			repo: func() *fakeRepo {
				r := releasedRepo()
				r.pushErr = errors.New("rejected")
				return r
			}(),
			files:   map[string]string{"/repo/template/tool.cwl.mustache": toolTemplate},
			wantErr: "rejected",
			wantCalls: append(append([]string{}, checkCalls...),
				"Tags",
				`Commit /repo/cwl "Update docker image version in CWL tool to 1.3.0 [skip-ci]"`,
				"Push main",
			),
			wantTool: upToDateTool,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			localFS := setupFS(t, tt.files)
			buf := new(bytes.Buffer)

			releaser := &release.Releaser{
				Repo:     tt.repo,
				FS:       localFS,
				Settings: testSettings,
				Writer:   buf,
				Logger:   discardLogger(),
			}

			got, err := releaser.Run(context.Background(), tt.opts)
			if (err == nil) != (tt.wantErr == "") {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Error() != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got.String() != tt.wantVersion {
				t.Errorf("Run() = %v, want %v", got, tt.wantVersion)
			}

			if diff := cmp.Diff(tt.wantCalls, tt.repo.calls); diff != "" {
				t.Errorf("Run() calls mismatch (-want +got):\n%s", diff)
			}
			if tt.wantOut != "" {
				if diff := cmp.Diff(tt.wantOut, buf.String()); diff != "" {
					t.Errorf("Run() output mismatch (-want +got):\n%s", diff)
				}
			}

			tool, err := afero.ReadFile(localFS, "/repo/cwl/tool.cwl")
			if tt.wantTool == "" {
				if err == nil {
					t.Errorf("Run() unexpectedly wrote tool.cwl:\n%s", tool)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.wantTool, string(tool)); diff != "" {
				t.Errorf("tool.cwl mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
