package export

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/vivek2589/bangalore-graph-package/internal/graph"
)

// ExportEdgeParquet writes the edge list as a Parquet file for pipelines
// that prefer columnar input.
func ExportEdgeParquet(g *graph.StreetGraph, path string) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(EdgeRow), 4)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}

	for _, row := range EdgeRows(g) {
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("write parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finalize parquet: %w", err)
	}
	return nil
}
