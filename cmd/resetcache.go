package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pyscope/constants/lipgloss"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Reset the analysis report cache",
	Long: `The 'reset-cache' command removes every cached analysis report from the
'.pyscope-cache' directory. Use it to clear corrupted cache entries or to force
a full reparse of a project.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		stats, _ := cmd.Flags().GetBool("stats")

		handleResetCacheCommand(force, stats, cmd)
	},
}

func init() {
	resetCacheCmd.Flags().BoolP("force", "f", false, "force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "show cache statistics instead of resetting")

	rootCmd.AddCommand(resetCacheCmd)
}

func handleResetCacheCommand(force bool, showStats bool, cmd *cobra.Command) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		return
	}

	if rootDependencies.Cache == nil {
		fmt.Println(lipgloss.Yellow.Render("Cache is disabled. No cache to reset."))
		return
	}

	if showStats {
		files, totalSize, err := rootDependencies.Cache.Stats()
		if err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: could not read statistics: %v", err)))
			return
		}
		fmt.Println(lipgloss.Info.Render("Cache Statistics:"))
		fmt.Printf("  Cache Directory: %s\n", rootDependencies.Cache.Dir())
		fmt.Printf("  Cached Reports: %d\n", files)
		fmt.Printf("  Total Size: %.2f KB\n", float64(totalSize)/1024)
		return
	}

	if !force {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Are you sure you want to reset the report cache? (y/N): ")
		response, _ := reader.ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println(lipgloss.Yellow.Render("Cache reset cancelled."))
			return
		}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)

	spinnerInstance, _ := spinner.Start("Resetting report cache...")

	err := rootDependencies.Cache.Clear()
	spinnerInstance.Stop()
	fmt.Print("\r")
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error resetting cache: %v", err)))
		return
	}

	fmt.Println(lipgloss.Green.Render("✓ Report cache has been successfully reset!"))
}
