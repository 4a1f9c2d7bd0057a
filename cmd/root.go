package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyscope/analyzer"
	"pyscope/config"
	"pyscope/constants/lipgloss"
)

// RootDependencies holds the shared dependencies built once per invocation.
type RootDependencies struct {
	Cwd    string
	Config *config.Config
	Cache  *analyzer.CacheManager
}

var rootCmd = &cobra.Command{
	Use:   "pyscope",
	Short: "Static insight into Python codebases from the command line.",
	Long: `pyscope inspects Python source files with tree-sitter and reports function
signatures, docstrings, call dependencies, and class attributes. It also ships
a small directory tree renderer for getting a quick lay of the land.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	config.RegisterFlags(rootCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(err.Error()))
		os.Exit(1)
	}
}

// handleRootCommand loads the configuration and builds the shared dependencies.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}

	cfg := config.LoadConfigs(cmd.Root(), cwd)

	var cache *analyzer.CacheManager
	if cfg.EnableCache {
		cache, err = analyzer.NewCacheManager("")
		if err != nil {
			// Fall back to uncached analysis.
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: failed to initialize cache: %v", err)))
			cache = nil
		}
	}

	return &RootDependencies{
		Cwd:    cwd,
		Config: cfg,
		Cache:  cache,
	}
}
