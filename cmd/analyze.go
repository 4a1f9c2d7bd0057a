package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pyscope/analyzer"
	"pyscope/analyzer/models"
	"pyscope/constants/lipgloss"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report functions, docstrings, and call dependencies of Python files",
	Long: `The 'analyze' subcommand parses Python source with tree-sitter and prints one
report block per function or method: its signature, docstring, called names,
and whether it is an entry point. A single file or a whole directory can be
analyzed; in directory mode one broken file never stops the batch.`,
	Run: func(cmd *cobra.Command, args []string) {
		handleAnalyzeCommand(cmd)
	},
}

func init() {
	analyzeCmd.Flags().String("file", "", "the Python file to analyze")
	analyzeCmd.Flags().String("directory", "", "the directory of Python files to analyze")
	analyzeCmd.Flags().Bool("classattrs", false, "include class attribute assignments in each report")
	analyzeCmd.Flags().Bool("include-venv", false, "do not skip the venv directory in directory mode")
	analyzeCmd.Flags().Bool("exclude-docstrings", false, "omit docstrings from each report")
	analyzeCmd.Flags().Bool("focus-docstrings", false, "print only names and docstrings")
	analyzeCmd.Flags().Bool("print-docstring", false, "print only the module-level docstring of each target")
	analyzeCmd.Flags().String("filter", "", "glob applied to file names in directory mode (e.g. '*.py')")

	rootCmd.AddCommand(analyzeCmd)
}

// validateAnalyzeFlags rejects conflicting or incomplete flag combinations
// before any file is opened.
func validateAnalyzeFlags(file, directory string, excludeDocstrings, focusDocstrings bool) error {
	if excludeDocstrings && focusDocstrings {
		return &analyzer.ConflictingOptionsError{First: "--exclude-docstrings", Second: "--focus-docstrings"}
	}
	if file != "" && directory != "" {
		return &analyzer.ConflictingOptionsError{First: "--file", Second: "--directory"}
	}
	if file == "" && directory == "" {
		return fmt.Errorf("one of --file or --directory is required")
	}
	return nil
}

func handleAnalyzeCommand(cmd *cobra.Command) {
	file, _ := cmd.Flags().GetString("file")
	directory, _ := cmd.Flags().GetString("directory")
	classAttrs, _ := cmd.Flags().GetBool("classattrs")
	includeVenv, _ := cmd.Flags().GetBool("include-venv")
	excludeDocstrings, _ := cmd.Flags().GetBool("exclude-docstrings")
	focusDocstrings, _ := cmd.Flags().GetBool("focus-docstrings")
	printDocstring, _ := cmd.Flags().GetBool("print-docstring")
	filter, _ := cmd.Flags().GetString("filter")

	if err := validateAnalyzeFlags(file, directory, excludeDocstrings, focusDocstrings); err != nil {
		fatal(err)
	}

	rootDependencies := handleRootCommand(cmd)
	if rootDependencies == nil {
		os.Exit(1)
	}

	an := analyzer.NewAnalyzer(analyzer.Options{
		IncludeVenv: includeVenv,
		ClassAttrs:  classAttrs,
		FileFilter:  filter,
		ExcludeDirs: rootDependencies.Config.ExcludeDirs,
	}, rootDependencies.Cache)

	renderer := &analyzer.Renderer{
		Mode:      docstringMode(excludeDocstrings, focusDocstrings),
		Theme:     rootDependencies.Config.Theme,
		Highlight: true,
	}

	if printDocstring {
		handlePrintDocstring(an, file, directory)
		return
	}

	if file != "" {
		report, err := an.AnalyzeFile(file)
		if err != nil {
			fatal(err)
		}
		_ = renderer.Render(os.Stdout, report)
		return
	}

	// Collect behind a spinner, then print once the scan is done.
	type fileResult struct {
		path   string
		report *models.FileReport
		err    error
	}
	var results []fileResult

	spinnerInstance := startScanSpinner("Analyzing Python files...")
	err := an.AnalyzeDirectory(directory, func(path string, report *models.FileReport, err error) {
		results = append(results, fileResult{path: path, report: report, err: err})
	})
	stopScanSpinner(spinnerInstance)
	if err != nil {
		fatal(err)
	}

	for _, result := range results {
		if result.err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error with %s: %v", result.path, result.err)))
			continue
		}
		fmt.Println(lipgloss.Info.Render(result.path + ":"))
		_ = renderer.Render(os.Stdout, result.report)
	}
}

// handlePrintDocstring short-circuits the analysis and prints only the
// module-level docstring of each target file.
func handlePrintDocstring(an *analyzer.Analyzer, file, directory string) {
	if file != "" {
		docstring, err := an.ModuleDocstring(file)
		if err != nil {
			fatal(err)
		}
		fmt.Println(docstring)
		return
	}

	type docResult struct {
		path      string
		docstring string
		err       error
	}
	var results []docResult

	spinnerInstance := startScanSpinner("Collecting module docstrings...")
	err := an.ModuleDocstrings(directory, func(path, docstring string, err error) {
		results = append(results, docResult{path: path, docstring: docstring, err: err})
	})
	stopScanSpinner(spinnerInstance)
	if err != nil {
		fatal(err)
	}

	for _, result := range results {
		if result.err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error with %s: %v", result.path, result.err)))
			continue
		}
		fmt.Println(lipgloss.Info.Render(result.path + ":"))
		fmt.Println(result.docstring)
	}
}

func startScanSpinner(message string) *pterm.SpinnerPrinter {
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true)

	spinnerInstance, _ := spinner.Start(message)
	return spinnerInstance
}

func stopScanSpinner(spinnerInstance *pterm.SpinnerPrinter) {
	if spinnerInstance != nil {
		_ = spinnerInstance.Stop()
	}
	fmt.Print("\r")
}

func docstringMode(exclude, focus bool) analyzer.DocstringMode {
	switch {
	case exclude:
		return analyzer.DocstringExclude
	case focus:
		return analyzer.DocstringFocus
	default:
		return analyzer.DocstringInclude
	}
}

func fatal(err error) {
	fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error: %v", err)))
	os.Exit(1)
}
