package chart

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteSVG renders the chart. N runs left to right and Z bottom to top;
// cells outside the grid are not drawn.
func WriteSVG(w io.Writer, c Chart) error {
	s := c.CellSize
	width := float64(c.MaxN+1) * s
	height := float64(c.MaxZ+1) * s
	x := func(n float64) float64 { return (n + 0.5) * s }
	y := func(z float64) float64 { return (float64(c.MaxZ) + 0.5 - z) * s }

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		width, height, width, height)
	fmt.Fprintf(bw, `<rect width="%g" height="%g" fill="white"/>`+"\n", width, height)

	for _, g := range c.Gridlines {
		switch g.Axis {
		case AxisN:
			fmt.Fprintf(bw, `<line x1="%g" y1="0" x2="%g" y2="%g" stroke="blue" stroke-width="0.2" stroke-dasharray="2,2"/>`+"\n",
				x(g.Pos), x(g.Pos), height)
		case AxisZ:
			fmt.Fprintf(bw, `<line x1="0" y1="%g" x2="%g" y2="%g" stroke="blue" stroke-width="0.2" stroke-dasharray="2,2"/>`+"\n",
				y(g.Pos), width, y(g.Pos))
		}
	}

	for _, cell := range c.Cells {
		if cell.N < 0 || cell.N > c.MaxN || cell.Z < 0 || cell.Z > c.MaxZ {
			continue
		}
		stroke := "none"
		if cell.Outline {
			stroke = "black"
		}
		fmt.Fprintf(bw, `<rect class="%s" x="%g" y="%g" width="%g" height="%g" fill="%s" fill-opacity="%g" stroke="%s" stroke-width="0.05"/>`+"\n",
			cell.Category, x(float64(cell.N)-0.5), y(float64(cell.Z)+0.5), s, s, cell.Fill, cell.Opacity, stroke)
		if cell.Label != "" {
			fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="%g">%s</text>`+"\n",
				x(float64(cell.N)-0.3), y(float64(cell.Z)-0.2), s/4, cell.Label)
		}
	}

	fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="%g" text-anchor="middle">Neutron number, N</text>`+"\n",
		width/2, height-s, 3*s)
	fmt.Fprintf(bw, `<text x="%g" y="%g" font-size="%g" transform="rotate(-90 %g %g)" text-anchor="middle">Proton number, Z</text>`+"\n",
		3*s, height/2, 3*s, 3*s, height/2)
	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}

// WriteFile renders the chart to path, creating its directory.
func WriteFile(path string, c Chart) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteSVG(f, c); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}
