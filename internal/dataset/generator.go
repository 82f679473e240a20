package dataset

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
)

// Roads that appear in the real Kaggle dataset. The generator samples from
// these so generated names exercise the alias and fuzzy matching paths.
var generatorRoads = []string{
	"MG Road",
	"Outer Ring Road",
	"Ballari Road",
	"Hosur Road",
	"Bannerghatta Road",
	"Old Madras Road",
	"Airport Road",
	"Sarjapur Road",
	"Mysore Road",
	"Tumkur Road",
	"100 Feet Road",
	"CMH Road",
	"Hebbal Flyover",
	"Silk Board Junction",
	"Trinity Circle",
}

var generatorAreas = []string{
	"Indiranagar", "Koramangala", "Whitefield", "Jayanagar",
	"Hebbal", "Yeshwanthpur", "Electronic City", "M.G. Road",
}

type GeneratorConfig struct {
	Rows int
	Seed int64
}

// Generate writes a synthetic traffic dataset CSV with the same header shape
// as the real Bangalore dataset.
func Generate(cfg GeneratorConfig, outPath string) error {
	if cfg.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got %d", cfg.Rows)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	fake := faker.NewWithSeed(rand.NewSource(cfg.Seed))
	rng := rand.New(rand.NewSource(cfg.Seed))

	w := csv.NewWriter(f)
	header := []string{"Record ID", "Date", "Area Name", "Road/Intersection Name", "Traffic Volume", "Average Speed", "Congestion Level"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	bar := progressbar.Default(int64(cfg.Rows), "generating rows")

	for i := 0; i < cfg.Rows; i++ {
		date := start.AddDate(0, 0, rng.Intn(730))
		row := []string{
			cuid.New(),
			date.Format("2006-01-02"),
			generatorAreas[rng.Intn(len(generatorAreas))],
			generatorRoads[rng.Intn(len(generatorRoads))],
			strconv.Itoa(fake.IntBetween(2000, 72000)),
			strconv.FormatFloat(fake.Float64(1, 5, 60), 'f', 1, 64),
			strconv.Itoa(fake.IntBetween(5, 100)),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
		bar.Add(1)
	}

	w.Flush()
	return w.Error()
}
