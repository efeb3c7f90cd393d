package export

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/xolan/lifelog/internal/stats"
	"github.com/xolan/lifelog/internal/timeutil"
)

// Rasterizer renders the statistics dashboard to an image
type Rasterizer interface {
	Rasterize(d stats.Dashboard) (image.Image, error)
}

var (
	colorBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorText       = color.RGBA{0x22, 0x22, 0x2a, 0xff}
	colorMuted      = color.RGBA{0x80, 0x80, 0x8c, 0xff}
	colorAccent     = color.RGBA{0x7c, 0x5c, 0xd6, 0xff}
	colorTrack      = color.RGBA{0xee, 0xec, 0xf6, 0xff}
)

const (
	rasterLineHeight  = 18
	rasterMargin      = 32
	rasterBarWidth    = 320
	rasterTrendHeight = 140
)

// DashboardRasterizer draws the dashboard with the fixed 7x13 bitmap font.
// Characters outside printable ASCII are drawn as '?'.
type DashboardRasterizer struct {
	Width int // Logical width in pixels, 800 when zero
	Scale int // Integer upscale applied after drawing, 2 when zero
}

// canvas tracks a drawing cursor over an RGBA image
type canvas struct {
	img  *image.RGBA
	face font.Face
	y    int
}

func (c *canvas) text(x int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(x, c.y+c.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(printable(s))
}

func (c *canvas) fill(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) newline(n int) {
	c.y += n * rasterLineHeight
}

func (r DashboardRasterizer) Rasterize(d stats.Dashboard) (image.Image, error) {
	width := r.Width
	if width <= 0 {
		width = 800
	}
	scale := r.Scale
	if scale <= 0 {
		scale = 2
	}
	if width < 2*rasterMargin+rasterBarWidth {
		return nil, fmt.Errorf("rasterizer width %d is too small", width)
	}

	rows := 4 + 2 + max(1, len(d.Categories.Items)) + 2 + max(1, len(d.Locations)) + 2
	height := 2*rasterMargin + rows*rasterLineHeight + rasterTrendHeight + 2*rasterLineHeight

	c := &canvas{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
		y:    rasterMargin,
	}
	c.fill(c.img.Bounds(), colorBackground)

	x := rasterMargin
	c.text(x, "Statistics - "+d.Range.Label(), colorAccent)
	c.newline(1)
	c.text(x, "Generated "+d.GeneratedAt.Format("2006-01-02 15:04"), colorMuted)
	c.newline(2)
	c.text(x, fmt.Sprintf("Records: %d    Categories: %d    All records: %d",
		d.Categories.Total, d.Categories.Distinct, d.AllRecords), colorText)
	c.newline(2)

	c.text(x, "Categories", colorAccent)
	c.newline(1)
	if len(d.Categories.Items) == 0 {
		c.text(x, "No records in this range", colorMuted)
		c.newline(1)
	}
	for _, item := range d.Categories.Items {
		c.text(x, fmt.Sprintf("%-9s %4d %5.1f%%", item.Category, item.Count, item.Percent), colorText)
		barX := x + 22*7
		top := c.y + 2
		c.fill(image.Rect(barX, top, barX+rasterBarWidth, top+11), colorTrack)
		c.fill(image.Rect(barX, top, barX+int(item.Bar/100*rasterBarWidth), top+11), colorAccent)
		c.newline(1)
	}
	c.newline(1)

	c.text(x, "Top locations", colorAccent)
	c.newline(1)
	if len(d.Locations) == 0 {
		c.text(x, "No locations recorded", colorMuted)
		c.newline(1)
	}
	for i, loc := range d.Locations {
		c.text(x, fmt.Sprintf("%d. %s (%d)", i+1, loc.Location, loc.Count), colorText)
		c.newline(1)
	}
	c.newline(1)

	c.text(x, fmt.Sprintf("Last %d days", len(d.Trend)), colorAccent)
	c.newline(1)
	drawTrend(c, d.Trend, x, width-2*rasterMargin)

	if scale == 1 {
		return c.img, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	draw.NearestNeighbor.Scale(out, out.Bounds(), c.img, c.img.Bounds(), draw.Src, nil)
	return out, nil
}

func drawTrend(c *canvas, trend []stats.TrendDay, x, span int) {
	if len(trend) == 0 {
		return
	}
	col := span / len(trend)
	barW := col * 3 / 5
	bottom := c.y + rasterTrendHeight

	for i, day := range trend {
		left := x + i*col + (col-barW)/2
		h := int(day.Height / 100 * float64(rasterTrendHeight-rasterLineHeight))
		c.fill(image.Rect(left, bottom-h, left+barW, bottom), colorAccent)

		saved := c.y
		c.y = bottom - h - rasterLineHeight + 2
		c.text(left, fmt.Sprintf("%d", day.Count), colorText)
		c.y = bottom + 4
		c.text(left, timeutil.FormatDate(day.Date)[5:], colorMuted)
		c.y = saved
	}
	c.y = bottom + 2*rasterLineHeight
}

// printable maps every rune outside printable ASCII to '?'
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '?'
		}
		return r
	}, s)
}
