package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traffic.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("one record per row", func(t *testing.T) {
		path := writeCSV(t, "Date,Road/Intersection Name,Traffic Volume,Average Speed,Congestion Level\n"+
			"2023-05-01,MG Road,45000,22.5,80\n"+
			"2023-05-06,Outer Ring Road,61000,18.0,95\n"+
			"2023-05-07,Hosur Road,30000,30.2,40\n")

		records, err := Load(path)
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, "MG Road", records[0].RoadName)
		assert.Equal(t, 45000.0, records[0].Volume)
		assert.Equal(t, 22.5, records[0].Speed)
		assert.Equal(t, 80.0, records[0].Congestion)
		assert.True(t, records[0].HasDate)
		assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
	})

	t.Run("header normalization", func(t *testing.T) {
		path := writeCSV(t, "  Road/Intersection Name , TRAFFIC VOLUME\nMG Road,100\n")

		records, err := Load(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 100.0, records[0].Volume)
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeCSV(t, "Date,Average Speed\n2023-05-01,20\n")

		_, err := Load(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
	})

	t.Run("optional columns default to zero", func(t *testing.T) {
		path := writeCSV(t, "Road/Intersection Name,Traffic Volume\nMG Road,100\n")

		records, err := Load(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Zero(t, records[0].Speed)
		assert.Zero(t, records[0].Congestion)
		assert.False(t, records[0].HasDate)
	})

	t.Run("unparseable date is tolerated", func(t *testing.T) {
		path := writeCSV(t, "Date,Road/Intersection Name,Traffic Volume\nnot-a-date,MG Road,100\n")

		records, err := Load(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.False(t, records[0].HasDate)
	})
}

func TestNormalizeColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Road/Intersection Name", "road_intersection_name"},
		{" Traffic Volume ", "traffic_volume"},
		{"date", "date"},
		{"Congestion Level", "congestion_level"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeColumn(tt.in))
	}
}

func TestSplitByWeekend(t *testing.T) {
	saturday := time.Date(2023, 5, 6, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

	weekday, weekend := SplitByWeekend([]TrafficRecord{
		{RoadName: "a", Date: monday, HasDate: true},
		{RoadName: "b", Date: saturday, HasDate: true},
		{RoadName: "c"}, // no date, counts as weekday
	})

	require.Len(t, weekday, 2)
	require.Len(t, weekend, 1)
	assert.Equal(t, "b", weekend[0].RoadName)
}
