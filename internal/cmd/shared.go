package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cwlbump/cwlbump/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// noLimit lets checkArgs accept any number of trailing arguments.
const noLimit = -1

func checkArgs(minArgs, maxArgs int, missing string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) (err error) {
		switch {
		case len(args) < minArgs:
			err = fmt.Errorf("%s", missing)
		case maxArgs != noLimit && len(args) > maxArgs:
			err = fmt.Errorf("unexpected argument %q", args[maxArgs])
		}
		return
	}
}

// newLogger logs to the command's error output.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	return utils.NewLogger(cmd.ErrOrStderr(), verboseFlag)
}

// prependName prefixes message with the name of the file it is about, padded
// to the longest name. A single file gets no prefix.
func prependName(path string, allPaths []string, message ...string) string {
	if len(allPaths) == 1 {
		return strings.Join(message, " ")
	}

	longestNameLength := 0
	for _, p := range allPaths {
		if len(filepath.Base(p)) > longestNameLength {
			longestNameLength = len(filepath.Base(p))
		}
	}

	name := filepath.Base(path)
	return "[" + name +
		strings.Repeat(" ", longestNameLength-len(name)) +
		"] " +
		strings.Join(message, " ")
}
