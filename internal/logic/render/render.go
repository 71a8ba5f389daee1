// Package render draws the review figures from the derived tables.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"scireview/internal/aggregate"
	"scireview/internal/logic/figures"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var formats = []string{"png", "svg"}

// Renderer writes every figure as PNG and SVG into Dir.
type Renderer struct {
	Dir string
}

func New(dir string) *Renderer {
	return &Renderer{Dir: dir}
}

func (r *Renderer) save(p *plot.Plot, name string, w, h vg.Length) error {
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return err
	}
	for _, ext := range formats {
		path := filepath.Join(r.Dir, fmt.Sprintf("%s.%s", name, ext))
		if err := p.Save(w, h, path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	log.Infof("render %s", name)
	return nil
}

func (r *Renderer) All(set *figures.Set) error {
	steps := []func() error{
		func() error { return r.Figure2(set.Figure2) },
		func() error { return r.Figure3(set.Figure3) },
		func() error { return r.Figure4(set.Figure4) },
		func() error { return r.Figure5a(set.Figure5a) },
		func() error { return r.Figure5b(set.Figure5b) },
		func() error { return r.Figure6(set.Figure6) },
		func() error { return r.Figure7(set.Figure7) },
		func() error { return r.Figure8(set.Figure8) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// Figure2 stacks COVID-19 related articles on the others, per 100,000
// published articles, labelled with the review count.
func (r *Renderer) Figure2(t figures.Figure2Table) error {
	if empty("figure_2", len(t)) {
		return nil
	}
	nonCovid := make(plotter.Values, len(t))
	covid := make(plotter.Values, len(t))
	years := make([]string, len(t))
	labels := plotter.XYLabels{}
	for i, row := range t {
		nonCovid[i] = row.NormalizedNonCovid
		covid[i] = row.NormalizedCovid
		years[i] = row.Year
		labels.XYs = append(labels.XYs, plotter.XY{X: float64(i), Y: row.NormalizedNonCovid + row.NormalizedCovid})
		labels.Labels = append(labels.Labels, strconv.Itoa(int(row.Total)))
	}

	p := plot.New()
	p.Y.Label.Text = "Articles included per\n100,000 published articles"
	p.X.Label.Text = "Year of publication"
	bottom, err := plotter.NewBarChart(nonCovid, vg.Points(20))
	if err != nil {
		return err
	}
	bottom.Color = plotutil.Color(0)
	top, err := plotter.NewBarChart(covid, vg.Points(20))
	if err != nil {
		return err
	}
	top.Color = plotutil.Color(1)
	top.StackOn(bottom)
	p.Add(bottom, top)
	if len(labels.XYs) > 0 {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return err
		}
		p.Add(l)
	}
	p.Legend.Add("Other focus", bottom)
	p.Legend.Add("COVID-19 related", top)
	p.Legend.Top = true
	p.NominalX(years...)
	return r.save(p, "figure_2", 4.5*vg.Inch, 2.5*vg.Inch)
}

// Figure3 compares first author and data origin distributions per country.
func (r *Renderer) Figure3(t figures.Figure3Table) error {
	if empty("figure_3", len(t)) {
		return nil
	}
	names := make([]string, len(t))
	authors := make(plotter.Values, len(t))
	origins := make(plotter.Values, len(t))
	for i, row := range t {
		names[i] = row.Name
		authors[i] = row.DistFirstAuthor
		origins[i] = row.DistDataOrigin
	}
	p, err := groupedBars(names, []string{"First author", "Data origin"}, authors, origins)
	if err != nil {
		return err
	}
	p.Y.Label.Text = "Fraction of articles"
	return r.save(p, "figure_3", 6*vg.Inch, 3*vg.Inch)
}

func (r *Renderer) Figure4(t figures.Figure4Table) error {
	if empty("figure_4", len(t)) {
		return nil
	}
	names := make([]string, len(t))
	rates := make(plotter.Values, len(t))
	for i, row := range t {
		names[i] = row.Name
		rates[i] = row.Rate
	}
	p, err := bars(names, rates)
	if err != nil {
		return err
	}
	p.Y.Label.Text = "Articles per 1000\ncitable documents"
	return r.save(p, "figure_4", 6*vg.Inch, 3*vg.Inch)
}

func (r *Renderer) Figure5a(t figures.Figure5aTable) error {
	if empty("figure_5a", len(t)) {
		return nil
	}
	names := make([]string, len(t))
	cross := make(plotter.Values, len(t))
	domestic := make(plotter.Values, len(t))
	for i, row := range t {
		names[i] = row.Name
		cross[i] = row.DistCrossBorder
		domestic[i] = row.DistDomestic
	}
	p, err := groupedBars(names, []string{"Cross-border sharing", "Domestic usage"}, cross, domestic)
	if err != nil {
		return err
	}
	p.Y.Label.Text = "Fraction of data flows"
	return r.save(p, "figure_5a", 5*vg.Inch, 3.5*vg.Inch)
}

// Figure5b draws cross-border flows from data origin to first author.
func (r *Renderer) Figure5b(t figures.Figure5bTable) error {
	pairs := make([][2]string, len(t))
	for i, row := range t {
		pairs[i] = [2]string{row.NameDataOrigin, row.NameFirstAuthor}
	}
	return r.sankey("figure_5b", pairs, 5.5*vg.Inch, 3*vg.Inch)
}

func (r *Renderer) Figure6(t figures.Figure6Table) error {
	if empty("figure_6", len(t)) {
		return nil
	}
	names := make([]string, len(t))
	dist := make(plotter.Values, len(t))
	for i, row := range t {
		names[i] = row.Name
		dist[i] = row.Distribution
	}
	p, err := bars(names, dist)
	if err != nil {
		return err
	}
	p.Y.Label.Text = "Fraction of articles"
	return r.save(p, "figure_6", 6*vg.Inch, 3*vg.Inch)
}

func (r *Renderer) Figure7(t figures.Figure7Table) error {
	if empty("figure_7", len(t)) {
		return nil
	}
	names := make([]string, len(t))
	counts := make(plotter.Values, len(t))
	for i, row := range t {
		names[i] = row.Abbreviation
		if names[i] == "" {
			names[i] = row.Source
		}
		counts[i] = float64(row.Count)
	}
	p := plot.New()
	b, err := plotter.NewBarChart(counts, vg.Points(10))
	if err != nil {
		return err
	}
	b.Horizontal = true
	b.Color = plotutil.Color(0)
	p.Add(b)
	p.NominalY(names...)
	p.X.Label.Text = "Number of articles"
	return r.save(p, "figure_7", 4*vg.Inch, 5*vg.Inch)
}

// Figure8 draws data sources flowing into ICD-10 chapters.
func (r *Renderer) Figure8(t figures.Figure8Table) error {
	pairs := make([][2]string, len(t))
	for i, row := range t {
		pairs[i] = [2]string{row.SourceName, row.ChapterName}
	}
	return r.sankey("figure_8", pairs, 6*vg.Inch, 5*vg.Inch)
}

func (r *Renderer) sankey(name string, pairs [][2]string, w, h vg.Length) error {
	if empty(name, len(pairs)) {
		return nil
	}
	counts := aggregate.CountBy(pairs, func(p [2]string) string { return p[0] + "\x00" + p[1] })
	seen := make(map[string]bool)
	var flows []plotter.Flow
	for _, p := range pairs {
		key := p[0] + "\x00" + p[1]
		if seen[key] {
			continue
		}
		seen[key] = true
		flows = append(flows, plotter.Flow{
			SourceCategory:   0,
			SourceLabel:      p[0],
			ReceptorCategory: 1,
			ReceptorLabel:    p[1],
			Value:            float64(counts.Of(key)),
		})
	}
	s, err := plotter.NewSankey(flows...)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Add(s)
	p.HideAxes()
	return r.save(p, name, w, h)
}

func empty(name string, n int) bool {
	if n == 0 {
		log.Warnf("render %s skipped: empty table", name)
	}
	return n == 0
}

func bars(names []string, values plotter.Values) (*plot.Plot, error) {
	p := plot.New()
	b, err := plotter.NewBarChart(values, vg.Points(15))
	if err != nil {
		return nil, err
	}
	b.Color = plotutil.Color(0)
	p.Add(b)
	p.NominalX(names...)
	return p, nil
}

func groupedBars(names, legend []string, series ...plotter.Values) (*plot.Plot, error) {
	p := plot.New()
	width := vg.Points(10)
	for i, values := range series {
		b, err := plotter.NewBarChart(values, width)
		if err != nil {
			return nil, err
		}
		b.Color = plotutil.Color(i)
		b.Offset = width * vg.Length(2*i-len(series)+1) / 2
		p.Add(b)
		p.Legend.Add(legend[i], b)
	}
	p.Legend.Top = true
	p.NominalX(names...)
	return p, nil
}
