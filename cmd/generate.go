package cmd

import (
	"fmt"
	"os"

	"github.com/vivek2589/bangalore-graph-package/internal/dataset"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic traffic dataset CSV",
	Long: `Writes a synthetic but plausible Bangalore traffic dataset in the same
shape as the real one, useful for trying the pipeline without the Kaggle
download.`,
	Run: func(cmd *cobra.Command, args []string) {
		rows, _ := cmd.Flags().GetInt("rows")
		out, _ := cmd.Flags().GetString("out")
		seed, _ := cmd.Flags().GetInt64("seed")

		if err := dataset.Generate(dataset.GeneratorConfig{
			Rows: rows,
			Seed: seed,
		}, out); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating dataset: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	generateCmd.Flags().Int("rows", 1000, "Number of rows to generate")
	generateCmd.Flags().String("out", "Banglore_traffic_Dataset.csv", "Output CSV path")
	generateCmd.Flags().Int64("seed", 42, "Random seed")

	rootCmd.AddCommand(generateCmd)
}
