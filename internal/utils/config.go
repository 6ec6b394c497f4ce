package utils

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Configuration keys.
const (
	MainBranchKey     = "MainBranch"
	RemoteNameKey     = "RemoteName"
	ToolsDirKey       = "ToolsDir"
	TemplatesDirKey   = "TemplatesDir"
	TemplateSuffixKey = "TemplateSuffix"
	GitTokenKey       = "GitToken"
	GitAuthorNameKey  = "GitAuthorName"
	GitAuthorEmailKey = "GitAuthorEmail"
)

// SetConfigDefaults registers the default value of every configuration key.
func SetConfigDefaults() {
	viper.SetDefault(MainBranchKey, "main")
	viper.SetDefault(RemoteNameKey, "origin")
	viper.SetDefault(ToolsDirKey, "cwl")
	viper.SetDefault(TemplatesDirKey, "template")
	viper.SetDefault(TemplateSuffixKey, ".mustache")
	viper.SetDefault(GitTokenKey, "")
	viper.SetDefault(GitAuthorNameKey, "")
	viper.SetDefault(GitAuthorEmailKey, "")
}

// RequireConfigString returns the value of key, or an error if it is empty.
func RequireConfigString(key string) (value string, err error) {
	value = viper.GetString(key)
	if value == "" {
		err = fmt.Errorf("config key '%s' could not be found", key)
	}
	return
}

// RequireConfigStrings returns the values of keys in order. The error names
// every key that is empty.
func RequireConfigStrings(keys ...string) (values []string, err error) {
	var missing []string
	for _, key := range keys {
		value := viper.GetString(key)
		if value == "" {
			missing = append(missing, "'"+key+"'")
		}
		values = append(values, value)
	}
	switch len(missing) {
	case 0:
		return
	case 1:
		err = fmt.Errorf("config key %s could not be found", missing[0])
	default:
		err = fmt.Errorf("config keys %s could not be found", strings.Join(missing, ", "))
	}
	values = nil
	return
}
