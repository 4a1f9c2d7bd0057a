package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"pyscope/dirtree"
)

var treeCmd = &cobra.Command{
	Use:   "tree [startpath]",
	Short: "Print a filtered, annotated directory tree",
	Long: `The 'tree' subcommand prints the directory structure beneath a start path
(the current directory by default). Output can be filtered by directory name
and file glob, limited in depth, annotated with file sizes and modification
times, and ordered by modification time instead of name.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleTreeCommand(cmd, args)
	},
}

func init() {
	treeCmd.Flags().StringSliceP("exclude", "e", nil, "directory names to exclude (defaults to the configured vendor directories)")
	treeCmd.Flags().StringP("filter", "f", "", "file name filter (e.g. '*.py' for Python files)")
	treeCmd.Flags().IntP("depth", "d", -1, "max depth of the displayed tree")
	treeCmd.Flags().BoolP("sizes", "s", false, "include file sizes in the output")
	treeCmd.Flags().BoolP("times", "t", false, "include file modification times in the output")
	treeCmd.Flags().Bool("sort", false, "sort files by modification time")

	rootCmd.AddCommand(treeCmd)
}

func handleTreeCommand(cmd *cobra.Command, args []string) {
	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		os.Exit(1)
	}

	startPath := "."
	if len(args) > 0 {
		startPath = args[0]
	}

	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	if !cmd.Flags().Changed("exclude") {
		exclude = rootDependencies.Config.ExcludeDirs
	}
	filter, _ := cmd.Flags().GetString("filter")
	depth, _ := cmd.Flags().GetInt("depth")
	sizes, _ := cmd.Flags().GetBool("sizes")
	times, _ := cmd.Flags().GetBool("times")
	sortByTime, _ := cmd.Flags().GetBool("sort")

	err := dirtree.Render(os.Stdout, startPath, dirtree.Options{
		ExcludeDirs:  exclude,
		FileFilter:   filter,
		MaxDepth:     depth,
		IncludeSizes: sizes,
		IncludeTimes: times,
		SortByTime:   sortByTime,
	})
	if err != nil {
		fatal(err)
	}
}
