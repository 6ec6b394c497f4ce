// Package cmd contains the Cobra CLI.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/cwlbump/cwlbump/internal/utils"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cwlbumpWriter is a writer that prints to stdout. When testing, we replace
// this with a writer that prints to a buffer.
type cwlbumpWriter struct{}

func (w cwlbumpWriter) Write(p []byte) (n int, err error) {
	fmt.Print(string(p))
	return len(p), nil
}

// Execute uses the default settings and executes the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd(cwlbumpWriter{}, afero.NewOsFs()).ExecuteContext(ctx)
	if err != nil {
		// Cobra prints the error message
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig reads in the config file if it exists.
func initConfig() {
	utils.SetConfigDefaults()

	viper.SetEnvPrefix("CWLBUMP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "cwlbump"))
		viper.SetConfigName("config")
	}

	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("Error reading config file: %s", err)
		}
	}
}
