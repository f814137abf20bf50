// Package plotting draws quick exploratory charts of table columns with
// gonum/plot. Appearance comes from an explicit Style passed to every call;
// there is no package-level plot state.
package plotting

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
	"strings"

	"dskit/pkg/stats"
	"dskit/pkg/table"

	"github.com/spf13/afero"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when a column has no plottable values.
var ErrNoData = errors.New("no plottable values")

// DefaultBins is the histogram bin count used when none is given.
const DefaultBins = 30

// Style holds figure size, fonts and colors. Create it once and pass the same
// pointer to every chart.
type Style struct {
	Width      vg.Length
	Height     vg.Length
	TitleSize  vg.Length
	LabelSize  vg.Length
	Grid       bool
	Background color.Color
	Series     color.Color
	Accent     color.Color
}

// DefaultStyle is a 10x6 inch figure on a dark grid.
func DefaultStyle() *Style {
	return &Style{
		Width:      10 * vg.Inch,
		Height:     6 * vg.Inch,
		TitleSize:  vg.Points(14),
		LabelSize:  vg.Points(12),
		Grid:       true,
		Background: color.RGBA{R: 234, G: 234, B: 242, A: 255},
		Series:     color.RGBA{R: 76, G: 114, B: 176, A: 255},
		Accent:     color.RGBA{R: 221, G: 132, B: 82, A: 255},
	}
}

func (s *Style) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = s.TitleSize
	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = s.LabelSize
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = s.LabelSize
	if s.Background != nil {
		p.BackgroundColor = s.Background
	}
	if s.Grid {
		grid := plotter.NewGrid()
		grid.Vertical.Color = color.White
		grid.Horizontal.Color = color.White
		p.Add(grid)
	}
	return p
}

func orDefault(title, fallback string) string {
	if title == "" {
		return fallback
	}
	return title
}

func values(t *table.Table, column string) (plotter.Values, error) {
	x, err := t.Floats(column)
	if err != nil {
		return nil, err
	}
	vals := stats.Present(x)
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: column %q", ErrNoData, column)
	}
	return plotter.Values(vals), nil
}

// Histogram plots the distribution of a numeric column.
func Histogram(s *Style, t *table.Table, column string, bins int, title string) (*plot.Plot, error) {
	vals, err := values(t, column)
	if err != nil {
		return nil, err
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = s.Series
	p := s.newPlot(orDefault(title, "Histogram of "+column), column, "Count")
	p.Add(h)
	return p, nil
}

// HistogramKDE plots a density-normalized histogram with a Gaussian kernel
// density curve on top.
func HistogramKDE(s *Style, t *table.Table, column string, bins int, title string) (*plot.Plot, error) {
	vals, err := values(t, column)
	if err != nil {
		return nil, err
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return nil, err
	}
	h.Normalize(1)
	h.FillColor = s.Series

	density := plotter.NewFunction(stats.GaussianKDE(vals, 0))
	lo, hi := stats.MinMax(vals)
	pad := stats.SilvermanBandwidth(vals) * 3
	density.XMin, density.XMax = lo-pad, hi+pad
	density.Samples = 200
	density.Color = s.Accent
	density.Width = vg.Points(2)

	p := s.newPlot(orDefault(title, column+" Distribution (KDE)"), column, "Density")
	p.Add(h, density)
	return p, nil
}

// Scatter plots y against x over rows where both are present.
func Scatter(s *Style, t *table.Table, x, y, title string) (*plot.Plot, error) {
	xs, err := t.Floats(x)
	if err != nil {
		return nil, err
	}
	ys, err := t.Floats(y)
	if err != nil {
		return nil, err
	}
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if xs[i] != xs[i] || ys[i] != ys[i] {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: columns %q and %q", ErrNoData, x, y)
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = s.Series
	sc.GlyphStyle.Radius = vg.Points(3)
	p := s.newPlot(orDefault(title, y+" vs. "+x), x, y)
	p.Add(sc)
	return p, nil
}

// Box draws a horizontal box plot of a numeric column.
func Box(s *Style, t *table.Table, column, title string) (*plot.Plot, error) {
	vals, err := values(t, column)
	if err != nil {
		return nil, err
	}
	b, err := plotter.NewBoxPlot(vg.Points(40), 0, vals)
	if err != nil {
		return nil, err
	}
	b.Horizontal = true
	b.FillColor = s.Series
	p := s.newPlot(orDefault(title, "Box Plot of "+column), column, "")
	p.Add(b)
	p.HideY()
	return p, nil
}

// Count is one bar of a value-count chart.
type Count struct {
	Value string
	N     int
}

// ValueCounts counts non-missing values of any column, most frequent first;
// ties keep first-seen order.
func ValueCounts(t *table.Table, column string) ([]Count, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	index := map[string]int{}
	var counts []Count
	for i := range c.Len() {
		if c.IsMissing(i) {
			continue
		}
		v := c.Cell(i)
		k, ok := index[v]
		if !ok {
			k = len(counts)
			index[v] = k
			counts = append(counts, Count{Value: v})
		}
		counts[k].N++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].N > counts[j].N })
	return counts, nil
}

// Bar draws the value counts of a column.
func Bar(s *Style, t *table.Table, column, title string) (*plot.Plot, error) {
	counts, err := ValueCounts(t, column)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: column %q", ErrNoData, column)
	}
	heights := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		heights[i] = float64(c.N)
		labels[i] = c.Value
	}
	bars, err := plotter.NewBarChart(heights, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = s.Series
	bars.LineStyle.Width = 0
	p := s.newPlot(orDefault(title, "Counts of "+column), column, "Count")
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

// Save renders p at the style's size to path; the extension picks the image
// format (png, svg, pdf, jpg, eps, tif). Parent directories are created.
func Save(fs afero.Fs, s *Style, p *plot.Plot, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("no image format in %q", path)
	}
	w, err := p.WriterTo(s.Width, s.Height, format)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
