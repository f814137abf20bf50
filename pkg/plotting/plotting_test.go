package plotting

import (
	"math"
	"testing"

	"dskit/pkg/table"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *table.Table {
	return table.MustNew(
		table.NewNumeric("price", []float64{10, 12, math.NaN(), 15, 30, 11}),
		table.NewNumeric("area", []float64{50, 60, 70, 80, 150, 55}),
		table.NewText("city", []string{"oslo", "rome", "oslo", "", "paris", "rome"}),
	)
}

func TestStyle(t *testing.T) {
	t.Run("Should apply fonts and labels from the style", func(t *testing.T) {
		s := DefaultStyle()
		s.TitleSize = 20

		p, err := Histogram(s, sample(), "price", 5, "")

		require.NoError(t, err)
		assert.Equal(t, "Histogram of price", p.Title.Text)
		assert.Equal(t, s.TitleSize, p.Title.TextStyle.Font.Size)
		assert.Equal(t, s.LabelSize, p.X.Label.TextStyle.Font.Size)
		assert.Equal(t, "Count", p.Y.Label.Text)
	})

	t.Run("Should leave other styles untouched", func(t *testing.T) {
		a, b := DefaultStyle(), DefaultStyle()
		a.Grid = false

		assert.True(t, b.Grid)
	})
}

func TestCharts(t *testing.T) {
	s := DefaultStyle()

	t.Run("Should build every chart with default titles", func(t *testing.T) {
		kde, err := HistogramKDE(s, sample(), "price", 0, "")
		require.NoError(t, err)
		assert.Equal(t, "price Distribution (KDE)", kde.Title.Text)
		assert.Equal(t, "Density", kde.Y.Label.Text)

		sc, err := Scatter(s, sample(), "area", "price", "")
		require.NoError(t, err)
		assert.Equal(t, "price vs. area", sc.Title.Text)

		box, err := Box(s, sample(), "area", "")
		require.NoError(t, err)
		assert.Equal(t, "Box Plot of area", box.Title.Text)

		bar, err := Bar(s, sample(), "city", "Cities")
		require.NoError(t, err)
		assert.Equal(t, "Cities", bar.Title.Text)
	})

	t.Run("Should reject text columns for numeric charts", func(t *testing.T) {
		_, err := Histogram(s, sample(), "city", 10, "")
		assert.ErrorIs(t, err, table.ErrKindMismatch)

		_, err = Scatter(s, sample(), "nope", "price", "")
		assert.ErrorIs(t, err, table.ErrColumnNotFound)
	})

	t.Run("Should report columns with no values", func(t *testing.T) {
		empty := table.MustNew(table.NewNumeric("x", []float64{math.NaN()}))

		_, err := Box(s, empty, "x", "")

		assert.ErrorIs(t, err, ErrNoData)
	})
}

func TestValueCounts(t *testing.T) {
	t.Run("Should count most frequent first and skip missing", func(t *testing.T) {
		counts, err := ValueCounts(sample(), "city")

		require.NoError(t, err)
		assert.Equal(t, []Count{{"oslo", 2}, {"rome", 2}, {"paris", 1}}, counts)
	})
}

func TestSave(t *testing.T) {
	t.Run("Should render by extension and create directories", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		s := DefaultStyle()
		p, err := Scatter(s, sample(), "area", "price", "")
		require.NoError(t, err)

		require.NoError(t, Save(fs, s, p, "figs/out/scatter.png"))
		require.NoError(t, Save(fs, s, p, "figs/scatter.svg"))

		png, err := afero.ReadFile(fs, "figs/out/scatter.png")
		require.NoError(t, err)
		assert.Equal(t, "\x89PNG", string(png[:4]))
		svg, err := afero.ReadFile(fs, "figs/scatter.svg")
		require.NoError(t, err)
		assert.Contains(t, string(svg), "<svg")
	})

	t.Run("Should reject unknown image formats", func(t *testing.T) {
		s := DefaultStyle()
		p, err := Box(s, sample(), "area", "")
		require.NoError(t, err)

		assert.Error(t, Save(afero.NewMemMapFs(), s, p, "plot.docx"))
		assert.Error(t, Save(afero.NewMemMapFs(), s, p, "plot"))
	})
}
