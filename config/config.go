package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pyscope/constants/lipgloss"
)

// Config represents the structure of the configuration file.
type Config struct {
	Theme       string   `mapstructure:"theme"`
	EnableCache bool     `mapstructure:"enable_cache"`
	ExcludeDirs []string `mapstructure:"exclude_dirs"`
}

// DefaultConfig values.
var DefaultConfig = Config{
	Theme:       "dracula",
	EnableCache: true,
	ExcludeDirs: []string{"venv", ".git", "__pycache__", ".pytest_cache"},
}

// cfgFile holds the path to the configuration file (set via CLI).
var cfgFile string

// RegisterFlags declares the persistent flags that feed the configuration.
func RegisterFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to the configuration file")
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "chroma theme used for source snippets")
}

// LoadConfigs initializes the configuration from file, flags, and environment
// variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	setDefaults()

	viper.AutomaticEnv()
	bindEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		viper.SetConfigName("pyscope-config")
		viper.AddConfigPath(cwd)

		// Support both YAML and JSON formats.
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			// Missing config files are fine; defaults apply.
			_ = viper.ReadInConfig()
		}
	}

	bindFlags(rootCmd)

	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

func setDefaults() {
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("enable_cache", DefaultConfig.EnableCache)
	viper.SetDefault("exclude_dirs", DefaultConfig.ExcludeDirs)
}

func bindEnv() {
	_ = viper.BindEnv("theme", "PYSCOPE_THEME")
	_ = viper.BindEnv("enable_cache", "PYSCOPE_ENABLE_CACHE")
}

func bindFlags(rootCmd *cobra.Command) {
	if flag := rootCmd.PersistentFlags().Lookup("theme"); flag != nil {
		_ = viper.BindPFlag("theme", flag)
	}
}
