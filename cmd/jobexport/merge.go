package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jobexport/internal/merge"
)

func newMergeCmd(root *rootOpts) *cobra.Command {
	var dir, out string
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge every CSV in a directory into one file, dropping duplicate links",
		Long:  `Merge every *.csv in --dir (in name order, skipping the output file itself)
into one file whose columns are the union of all headers.

Rows are deduplicated on the Link column, keeping the first occurrence.
Rows with an empty Link are never treated as duplicates of each other and
are all kept. Without a Link column nothing is deduplicated.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := root.loadConfig()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if dir == "" {
				dir = cfg.Merge.InputDir
			}
			if out == "" {
				out = cfg.Merge.OutputFile
			}

			sum, err := merge.Run(cmd.Context(), merge.Options{Dir: dir, OutputFile: out})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "merged %d files: %d rows, %d duplicates removed, %d unique -> %s\n",
				sum.Files, sum.TotalRows, sum.Duplicates, sum.Final, sum.OutputPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory of CSV files (default merge.input_dir)")
	cmd.Flags().StringVar(&out, "out", "", "merged file name, relative to --dir (default merge.output_file)")
	return cmd
}
