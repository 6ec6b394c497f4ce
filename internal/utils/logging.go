package utils

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger that writes to w. Debug output is only enabled
// when verbose is set.
func NewLogger(w io.Writer, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}
