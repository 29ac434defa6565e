package export

import (
	"fmt"
	"io"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"

	"Canopy/internal/calc/canopy"
)

// DXF layer names.
const (
	LayerMembers    = "MEMBERS"
	LayerColumns    = "COLUMNS"
	LayerDimensions = "DIMENSIONS"
)

// dimOffset places the dimension annotations clear of the structure, mm.
const dimOffset = 500.0

// WriteDXF draws the truss on top of its columns, the truss bottom chord at
// y = 0 and the column bases at y = -column height.
func WriteDXF(w io.Writer, res *canopy.Result) error {
	d := dxf.NewDrawing()
	for _, l := range []struct {
		name string
		cl   color.ColorNumber
	}{
		{LayerMembers, color.White},
		{LayerColumns, color.Cyan},
		{LayerDimensions, color.Green},
	} {
		if _, err := d.AddLayer(l.name, l.cl, table.LT_CONTINUOUS, false); err != nil {
			return fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}

	if err := d.ChangeLayer(LayerMembers); err != nil {
		return err
	}
	for _, m := range res.Members {
		a, b := res.Nodes[m.Start], res.Nodes[m.End]
		if _, err := d.Line(a.X, a.Y, 0, b.X, b.Y, 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerColumns); err != nil {
		return err
	}
	for _, c := range res.Columns {
		half := c.Choice.Profile.Width / 2
		outline := [][4]float64{
			{c.X - half, 0, c.X - half, -c.HeightMM},
			{c.X + half, 0, c.X + half, -c.HeightMM},
			{c.X - half, -c.HeightMM, c.X + half, -c.HeightMM},
		}
		for _, s := range outline {
			if _, err := d.Line(s[0], s[1], 0, s[2], s[3], 0); err != nil {
				return err
			}
		}
	}

	if err := d.ChangeLayer(LayerDimensions); err != nil {
		return err
	}
	span, rise := res.Config.Span, res.Config.Rise
	base := -dimOffset
	if len(res.Columns) > 0 {
		base -= res.Columns[0].HeightMM
	}
	if _, err := d.Line(0, base, 0, span, base, 0); err != nil {
		return err
	}
	if _, err := d.Text(fmt.Sprintf("%.0f", span), span/2, base+50, 0, 100); err != nil {
		return err
	}
	if _, err := d.Line(span+dimOffset, 0, 0, span+dimOffset, rise, 0); err != nil {
		return err
	}
	if _, err := d.Text(fmt.Sprintf("%.0f", rise), span+dimOffset+50, rise/2, 0, 100); err != nil {
		return err
	}

	_, err := d.WriteTo(w)
	return err
}
