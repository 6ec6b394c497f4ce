package cmd_test

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/cwlbump/cwlbump/internal/cmd"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

const globalFlags = `Global Flags:
      --config string   path of the config file (default is $HOME/.config/cwlbump/config.yaml)
  -v, --verbose         print debug logs
`

type repoFile struct {
	Path     string
	Contents string
}

type test struct {
	name         string
	files        []repoFile
	cliArgs      []string
	wantErr      bool
	wantOut      string
	wantOutRegex string
	wantFiles    []repoFile
	wantMissing  []string
}

func setupFS(t *testing.T, files []repoFile) afero.Fs {
	t.Helper()
	localFS := afero.NewMemMapFs()
	for _, f := range files {
		if err := afero.WriteFile(localFS, f.Path, []byte(f.Contents), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return localFS
}

// runTests runs every test as the given subcommand of a fresh root command.
func runTests(t *testing.T, subcommand []string, tests []test) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			localFS := setupFS(t, tt.files)
			buf := new(bytes.Buffer)

			command := cmd.NewRootCmd(buf, localFS)
			command.SetArgs(append(append([]string{}, subcommand...), tt.cliArgs...))

			// Redirect Cobra output
			command.SetOut(buf)
			command.SetErr(buf)

			err := command.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("%s: Execute() error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}

			checkWantOut(t, tt, buf)
			checkWantFiles(t, tt, localFS)
		})
	}
}

func checkWantOut(t *testing.T, tt test, buf *bytes.Buffer) {
	t.Helper()
	if tt.wantOutRegex != "" {
		re := regexp.MustCompile(tt.wantOutRegex)
		if !re.MatchString(buf.String()) {
			t.Errorf("%s: output does not match %q:\n%s", tt.name, tt.wantOutRegex, buf.String())
		}
		return
	}
	if diff := cmp.Diff(tt.wantOut, buf.String()); diff != "" {
		t.Errorf("%s: output mismatch (-want +got):\n%s", tt.name, diff)
	}
}

func checkWantFiles(t *testing.T, tt test, localFS afero.Fs) {
	t.Helper()
	for _, path := range tt.wantMissing {
		if exists, _ := afero.Exists(localFS, path); exists {
			t.Errorf("%s: %s exists, want it missing", tt.name, path)
		}
	}
	for _, want := range tt.wantFiles {
		got, err := afero.ReadFile(localFS, want.Path)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if diff := cmp.Diff(want.Contents, string(got)); diff != "" {
			t.Errorf("%s: %s mismatch (-want +got):\n%s", tt.name, want.Path, diff)
		}
	}
}
