package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jski/python-container-builder/internal/utils"
)

var (
	abOutputDir string
	abKeepGoing bool
	abQuiet     bool
	abSettings  runSettings
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch <files...>",
	Short: "Analyze multiple CSV/TSV/XLSX files one after another",
	Long: `Analyze each matched file independently and print its report, or write it to
--output-dir as <name>.report.txt. Files are never combined.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var files []string
		seen := map[string]struct{}{}
		for _, arg := range args {
			matches, _ := filepath.Glob(arg)
			if len(matches) == 0 {
				// treat as literal path so the loader reports why it is unusable
				matches = []string{arg}
			}
			for _, m := range matches {
				if _, ok := seen[m]; ok {
					continue
				}
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
		sort.Strings(files)

		lopt, aopt, preview, err := abSettings.resolve(cmd.Flags(), activeConfig())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		progress := out
		if abQuiet {
			progress = io.Discard
		}

		var failed []error
		total := len(files)
		for i, path := range files {
			fmt.Fprintf(progress, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			rep, err := runAnalysis(progress, path, lopt, aopt, preview)
			if err != nil {
				if !abKeepGoing {
					return err
				}
				failed = append(failed, err)
				continue
			}
			if abOutputDir == "" {
				fmt.Fprintln(out)
				if err := rep.Render(out); err != nil {
					return err
				}
				continue
			}
			outFile := reportPath(abOutputDir, path)
			if err := utils.SafeWriteFile(outFile, []byte(rep.String())); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			log.Info().Str("path", path).Str("report", outFile).Msg("report written")
			fmt.Fprintf(progress, "✓ Wrote analysis to %s\n", outFile)
		}
		if len(failed) > 0 {
			return fmt.Errorf("%d of %d file(s) failed: %w", len(failed), total, errors.Join(failed...))
		}
		return nil
	},
}

// reportPath picks <dir>/<base>.report.txt, adding a __N suffix instead of
// overwriting an existing report.
func reportPath(dir, src string) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	out := filepath.Join(dir, stem+".report.txt")
	if _, err := os.Stat(out); err != nil {
		return out
	}
	for idx := 2; ; idx++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d.report.txt", stem, idx))
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			log.Warn().Str("report", filepath.Base(cand)).Msg("existing report detected, writing alongside it")
			return cand
		}
	}
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVar(&abOutputDir, "output-dir", "", "directory for <name>.report.txt files (stdout if omitted)")
	analyzeBatchCmd.Flags().BoolVar(&abKeepGoing, "keep-going", false, "continue with the remaining files after a load failure")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress output")
	abSettings.bind(analyzeBatchCmd.Flags())
}
