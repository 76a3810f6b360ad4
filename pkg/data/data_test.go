package data

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendviz/pkg/stats"
)

func TestStreamCSVReturnsHeaderAndRows(t *testing.T) {
	rows := make(chan []string, 64)
	header, _, err := StreamCSV(filepath.Join("testdata", "diamonds_sample.csv"), rows)
	require.NoError(t, err)
	assert.Equal(t, "carat", header[0])
	assert.Equal(t, "price", header[6])

	n := 0
	for range rows {
		n++
	}
	assert.Equal(t, 16, n)
}

func TestStreamCSVEarlyStop(t *testing.T) {
	rows := make(chan []string) // unbuffered so the reader blocks
	_, done, err := StreamCSV(filepath.Join("testdata", "diamonds_sample.csv"), rows)
	require.NoError(t, err)

	<-rows
	close(done)
	// Drain whatever was in flight; the channel must close.
	for range rows {
	}
}

func TestLoadDiamonds(t *testing.T) {
	f, err := LoadDiamonds(filepath.Join("testdata", "diamonds_sample.csv"))
	require.NoError(t, err)
	assert.Equal(t, 16, f.Len())

	cut, err := f.Strings(ColCut)
	require.NoError(t, err)
	assert.Equal(t, "Ideal", cut[0])

	price, err := f.Numeric(ColPrice)
	require.NoError(t, err)
	assert.Equal(t, 326.0, price[0])
}

func TestPrepDiamondsFiltersAndLogs(t *testing.T) {
	f, err := LoadDiamonds(filepath.Join("testdata", "diamonds_sample.csv"))
	require.NoError(t, err)

	prepped, err := PrepDiamonds(f)
	require.NoError(t, err)
	// One diamond in the sample is above 2 carats.
	assert.Equal(t, 15, prepped.Len())

	carat, _ := prepped.Numeric(ColCarat)
	lcarat, err := prepped.Numeric("lcarat")
	require.NoError(t, err)
	for i := range carat {
		assert.InDelta(t, math.Log2(carat[i]), lcarat[i], 1e-12)
	}
	assert.True(t, prepped.Has("lprice"))
}

func TestTrimPriceTail(t *testing.T) {
	f, err := LoadDiamonds(filepath.Join("testdata", "diamonds_sample.csv"))
	require.NoError(t, err)
	prepped, err := PrepDiamonds(f)
	require.NoError(t, err)

	price, _ := prepped.Numeric(ColPrice)
	cut := stats.Quantile(price, 0.5)

	trimmed, err := TrimPriceTail(prepped, 0.5)
	require.NoError(t, err)
	assert.Less(t, trimmed.Len(), prepped.Len())
	left, _ := trimmed.Numeric(ColPrice)
	for _, p := range left {
		assert.LessOrEqual(t, p, cut)
	}

	// q >= 1 is a no-op.
	same, err := TrimPriceTail(prepped, 1)
	require.NoError(t, err)
	assert.Equal(t, prepped.Len(), same.Len())
}

func TestLoadHousingKeepsNA(t *testing.T) {
	f, err := LoadHousing(filepath.Join("testdata", "txhousing_sample.csv"))
	require.NoError(t, err)
	assert.Equal(t, 18, f.Len())

	sales, err := f.Numeric(ColSales)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(sales[12])) // Galveston January is NA
	assert.Equal(t, 167.0, sales[13])
}

func TestLoadHousingNAStringCellsAreMissing(t *testing.T) {
	// String cells follow the same NA policy as numeric ones: an "NA"
	// city is missing, not a real city named NA.
	path := filepath.Join(t.TempDir(), "tx.csv")
	csv := "city,year,month,sales,volume,median,listings,inventory\n" +
		"NA,2000,1,5,100,50,10,1\n" +
		"Austin,2000,2,6,120,51,11,1.1\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	f, err := LoadHousing(path)
	require.NoError(t, err)
	city, err := f.Strings(ColCity)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "Austin"}, city)
}

func TestPrepHousing(t *testing.T) {
	f, err := LoadHousing(filepath.Join("testdata", "txhousing_sample.csv"))
	require.NoError(t, err)

	prepped, err := PrepHousing(f)
	require.NoError(t, err)

	date, err := prepped.Numeric(ColDate)
	require.NoError(t, err)
	assert.InDelta(t, 2000.0, date[0], 1e-12)
	assert.InDelta(t, 2000+5.0/12, date[5], 1e-12)

	lsales, err := prepped.Numeric("lsales")
	require.NoError(t, err)
	assert.InDelta(t, math.Log(72), lsales[0], 1e-12)
	assert.True(t, math.IsNaN(lsales[12]))
}
