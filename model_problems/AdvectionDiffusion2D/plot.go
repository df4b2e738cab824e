package AdvectionDiffusion2D

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/notargets/gofem2d/FEM2D"
	"github.com/notargets/gofem2d/types"
	"github.com/notargets/gofem2d/utils"
)

// PlotMeta controls the heat map of the solution
type PlotMeta struct {
	GridSize      int // Samples along each axis
	Width, Height vg.Length
	Colors        int
	Contours      int // Contour lines over the heat map, 0 for none
	ShowBoundary  bool
}

func DefaultPlotMeta() PlotMeta {
	return PlotMeta{
		GridSize:     200,
		Width:        6 * vg.Inch,
		Height:       5 * vg.Inch,
		Colors:       255,
		Contours:     10,
		ShowBoundary: true,
	}
}

// SolutionGrid is T sampled on a regular grid over the mesh bounding box,
// NaN where the grid point lies outside the mesh
type SolutionGrid struct {
	x, y     []float64
	z        [][]float64 // z[row][col]
	min, max float64
}

func (g *SolutionGrid) Dims() (c, r int)   { return len(g.x), len(g.y) }
func (g *SolutionGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g *SolutionGrid) X(c int) float64    { return g.x[c] }
func (g *SolutionGrid) Y(r int) float64    { return g.y[r] }
func (g *SolutionGrid) Min() float64       { return g.min }
func (g *SolutionGrid) Max() float64       { return g.max }

// SampleSolution interpolates T onto an n by n grid, rows are computed in
// parallel
func SampleSolution(p *FEM2D.Problem, T []float64, n, parallelDegree int) (g *SolutionGrid) {
	var (
		xmin, xmax, ymin, ymax = p.Mesh.Bounds()
		loc                    = FEM2D.NewLocator(p)
		NP                     = utils.LimitParallelDegree(parallelDegree, n)
		pm                     = utils.NewPartitionMap(NP, n)
		wg                     = sync.WaitGroup{}
	)
	if n < 2 {
		panic(fmt.Errorf("grid size %d, need at least 2", n))
	}
	g = &SolutionGrid{
		x:   make([]float64, n),
		y:   make([]float64, n),
		z:   make([][]float64, n),
		min: math.Inf(1),
		max: math.Inf(-1),
	}
	for i := 0; i < n; i++ {
		g.x[i] = xmin + float64(i)*(xmax-xmin)/float64(n-1)
		g.y[i] = ymin + float64(i)*(ymax-ymin)/float64(n-1)
	}
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			rMin, rMax := pm.GetBucketRange(np)
			for r := rMin; r < rMax; r++ {
				g.z[r] = make([]float64, n)
				for c := 0; c < n; c++ {
					g.z[r][c] = loc.Interpolate(T, g.x[c], g.y[r])
				}
			}
		}(np)
	}
	wg.Wait()
	for r := range g.z {
		for _, v := range g.z[r] {
			if !math.IsNaN(v) {
				g.min, g.max = math.Min(g.min, v), math.Max(g.max, v)
			}
		}
	}
	if math.IsInf(g.min, 1) {
		g.min, g.max = 0, 0
	}
	if g.max == g.min {
		g.max = g.min + 1
	}
	return
}

// PlotSolution writes a PNG heat map of the solution with contour lines and
// a color bar
func (c *AD2D) PlotSolution(filename string, pm PlotMeta) (err error) {
	var (
		file *os.File
		barW = pm.Width / 8
	)
	if c.T == nil {
		return types.NewConfigurationError("no solution to plot")
	}
	if c.verbose {
		fmt.Printf(" * Plotting solution on a %dx%d grid to %s...\n", pm.GridSize, pm.GridSize, filename)
	}
	g := SampleSolution(c.Problem, c.T, pm.GridSize, c.ParallelDegree)
	cm := moreland.SmoothBlueRed()
	cm.SetMin(g.min)
	cm.SetMax(g.max)

	pl := plot.New()
	pl.Title.Text = c.Problem.Title
	pl.X.Label.Text = "x"
	pl.Y.Label.Text = "y"
	hm := plotter.NewHeatMap(g, cm.Palette(pm.Colors))
	hm.NaN = color.Transparent
	pl.Add(hm)
	if pm.Contours > 0 {
		ct := plotter.NewContour(g, ContourLevels(g.min, g.max, pm.Contours), nil)
		ct.LineStyles[0].Width = vg.Points(0.5)
		pl.Add(ct)
	}
	if pm.ShowBoundary {
		nodes := c.Problem.Mesh.Nodes
		for _, e := range c.Problem.Mesh.BoundaryEdges() {
			var line *plotter.Line
			if line, err = plotter.NewLine(plotter.XYs{
				{X: nodes[e[0]].X, Y: nodes[e[0]].Y},
				{X: nodes[e[1]].X, Y: nodes[e[1]].Y},
			}); err != nil {
				return
			}
			line.Color = color.Black
			line.Width = vg.Points(0.5)
			pl.Add(line)
		}
	}

	bar := plot.New()
	bar.Title.Text = "T"
	bar.HideX()
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: pm.Colors})

	img := vgimg.New(pm.Width, pm.Height)
	dc := draw.New(img)
	pl.Draw(draw.Crop(dc, 0, -barW, 0, 0))
	bar.Draw(draw.Crop(dc, pm.Width-barW, 0, 0, 0))

	if file, err = os.Create(filename); err != nil {
		return types.NewInputError("unable to create plot file %s: %v", filename, err)
	}
	if _, err = (vgimg.PngCanvas{Canvas: img}).WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("writing plot: %w", err)
	}
	if err = file.Close(); err != nil {
		return types.NewInputError("unable to close plot file %s: %v", filename, err)
	}
	return
}

// ContourLevels are n values evenly spaced strictly inside (min, max)
func ContourLevels(min, max float64, n int) (levels []float64) {
	levels = make([]float64, n)
	for i := range levels {
		levels[i] = min + float64(i+1)*(max-min)/float64(n+1)
	}
	return
}
