package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/vivek2589/bangalore-graph-package/internal/models"
	"github.com/vivek2589/bangalore-graph-package/internal/pipeline"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis pipeline",
	Long: `Loads the traffic dataset, builds the street graph, maps traffic metrics
onto edges, computes centralities and writes every export artifact into the
output directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		logger := newLogger(cfg.LogLevel)
		p := pipeline.New(cfg, logger)
		if err := p.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Pipeline failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().String("csv", "Banglore_traffic_Dataset.csv", "Path to traffic dataset CSV")
	runCmd.Flags().String("output-dir", "outputs", "Directory to save outputs")
	runCmd.Flags().String("osm-file", "", "Local OSM extract (.osm, .xml or .osm.pbf) instead of Overpass")
	runCmd.Flags().String("place", "Bangalore, India", "Place name used for output titles")
	runCmd.Flags().String("network-type", "drive", "Street network type (drive or all)")
	runCmd.Flags().Bool("parquet", false, "Also export the edge list as Parquet")

	viper.BindPFlag("csv_path", runCmd.Flags().Lookup("csv"))
	viper.BindPFlag("output_dir", runCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("osm_file", runCmd.Flags().Lookup("osm-file"))
	viper.BindPFlag("place", runCmd.Flags().Lookup("place"))
	viper.BindPFlag("network_type", runCmd.Flags().Lookup("network-type"))
	viper.BindPFlag("parquet_enabled", runCmd.Flags().Lookup("parquet"))

	rootCmd.AddCommand(runCmd)
}
