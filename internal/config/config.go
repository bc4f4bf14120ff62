// Package config loads tool configuration from file, environment, and
// defaults via viper. Custom standards profiles can override the line
// length limit, output mode, and forensic opt-in.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Repository    string `mapstructure:"repository"`
	Output        string `mapstructure:"output"`
	MaxLineLength int    `mapstructure:"max_line_length"`
	Forensic      bool   `mapstructure:"forensic"`
	Strict        bool   `mapstructure:"strict"`
}

// C is the global config instance
var C Config

// Init initializes configuration with viper. configFile, when non-empty,
// names an explicit standards profile to load instead of the discovery
// paths.
func Init(configFile string) error {
	viper.SetDefault("repository", ".")
	viper.SetDefault("output", "text")
	viper.SetDefault("max_line_length", 79)
	viper.SetDefault("forensic", false)
	viper.SetDefault("strict", false)

	if configFile != "" {
		viper.SetConfigFile(expandTilde(configFile))
	} else {
		viper.SetConfigName("positronikal-check")
		viper.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "positronikal-check"))
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("POSCHECK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// An explicit profile must exist; discovery paths are optional.
		if configFile != "" {
			return err
		}
	}

	return viper.Unmarshal(&C)
}

// GetRepository returns the repository path with tilde expansion
func GetRepository() string {
	return expandTilde(viper.GetString("repository"))
}

// GetOutput returns the output mode (text, json, interactive)
func GetOutput() string {
	return viper.GetString("output")
}

// GetMaxLineLength returns the line length limit for code checks
func GetMaxLineLength() int {
	return viper.GetInt("max_line_length")
}

// GetForensic returns whether forensic tool standards are included
func GetForensic() bool {
	return viper.GetBool("forensic")
}

// GetStrict returns whether a failing report exits nonzero
func GetStrict() bool {
	return viper.GetBool("strict")
}

// SetOutput sets the output mode at runtime
func SetOutput(mode string) {
	viper.Set("output", mode)
	C.Output = mode
}

// SetForensic sets the forensic opt-in at runtime
func SetForensic(on bool) {
	viper.Set("forensic", on)
	C.Forensic = on
}

// SetStrict sets strict mode at runtime
func SetStrict(on bool) {
	viper.Set("strict", on)
	C.Strict = on
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if len(path) == 0 {
		return path
	}
	if path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
