package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/jski/python-container-builder/internal/config"
	"github.com/jski/python-container-builder/internal/utils"
)

var (
	anaOutputPath string
	anaSettings   runSettings
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a CSV/TSV/XLSX file and print a descriptive report",
	Long: `Analyze a data file and print a descriptive report.

Without a file argument, the configured custom data path is used when it exists,
otherwise the default (sample) data path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		out := cmd.OutOrStdout()
		lopt, aopt, preview, err := anaSettings.resolve(cmd.Flags(), c)
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			var note string
			path, note = resolveDataPath(c)
			fmt.Fprintln(out, note)
		}

		rep, err := runAnalysis(out, path, lopt, aopt, preview)
		if err != nil {
			return err
		}
		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, []byte(rep.String())); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprintln(out)
		return rep.Render(out)
	},
}

// resolveDataPath applies the custom-over-default path policy and returns
// the chosen path with a line describing the choice.
func resolveDataPath(c *cfgpkg.Global) (string, string) {
	path, idx := utils.FirstExisting(c.CustomDataPath, c.DefaultDataPath)
	if idx == 0 {
		return path, fmt.Sprintf("Using custom data file: %s", path)
	}
	return path, fmt.Sprintf("Using sample data file: %s", path)
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report instead of stdout")
	anaSettings.bind(analyzeCmd.Flags())
}
