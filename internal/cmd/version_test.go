package cmd_test

import (
	"testing"
)

func TestVersionCmd(t *testing.T) {
	usage := `Usage:
  cwlbump version [flags]

Flags:
  -h, --help    help for version
      --short   display only the version number

` + globalFlags

	runTests(t, []string{"version"}, []test{
		{
			name:    "no cli args",
			cliArgs: []string{},
			wantOut: `{"GitVersion":"v0.0.0-dev","GitCommit":"da39a3ee5e6b4b0d3255bfef95601890afd80709","BuildDate":"0000-00-00T00:00:00Z"}
`,
		},
		{
			name:    "help flag",
			cliArgs: []string{"--help"},
			wantOut: `Display the version of cwlbump

` + usage,
		},
		{
			name:    "short flag",
			cliArgs: []string{"--short"},
			wantOut: `v0.0.0-dev
`,
		},
	})
}
