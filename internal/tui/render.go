package tui

import (
	"math"
	"strings"

	"speedmap/internal/geom"
	"speedmap/internal/speedtest"
)

const (
	sidebarWidth = 28
	statsWidth   = 38
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	sidebarW, statsW   int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	var lo layout
	lo.contentH = max(4, m.height-headerHeight-footerHeight)
	lo.contentW = max(10, m.width)
	if m.showSidebar {
		lo.sidebarW = sidebarWidth
		lo.mapX = sidebarWidth + 1
	}
	if m.showStats {
		lo.statsW = statsWidth
	}
	lo.mapY = headerHeight
	lo.mapW = max(10, lo.contentW-lo.sidebarW-lo.statsW-1)
	lo.mapH = lo.contentH
	return lo
}

// inMap reports whether screen cell (x, y) falls on the map canvas.
func (lo layout) inMap(x, y int) bool {
	return x >= lo.mapX && x < lo.mapX+lo.mapW && y >= lo.mapY && y < lo.mapY+lo.mapH
}

// cellToLonLat converts a map cell coordinate back to lon/lat using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if m.bbox.Empty() {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

// screenXYMicro maps a coordinate into the 2x4 microgrid per cell used for braille rendering.
func (m Model) screenXYMicro(p geom.LatLng, w, h int) (int, int, bool) {
	if m.bbox.Empty() || !p.Valid() {
		return 0, 0, false
	}
	nx := (p.Lng - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (p.Lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(math.Round(zx*float64(w*2-1))) + m.offsetX*2
	sy := int(math.Round((1.0-zy)*float64(h*4-1))) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps a coordinate to screen cells considering zoom and pan.
func (m Model) screenXY(p geom.LatLng, w, h int) (int, int, bool) {
	if m.bbox.Empty() || !p.Valid() {
		return 0, 0, false
	}
	nx := (p.Lng - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (p.Lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	// Apply zoom around center (0.5, 0.5)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	sx := int(math.Round(zx*float64(w-1))) + m.offsetX
	sy := int(math.Round((1.0-zy)*float64(h-1))) + m.offsetY
	return sx, sy, true
}

func (m Model) renderMap(w, h int) string {
	points := newBrailleBuf(w, h)
	for _, r := range m.sess.Visible() {
		mx, my, ok := m.screenXYMicro(r.Point(), w, h)
		if !ok {
			continue
		}
		points.setPixel(mx, my)
	}

	// selection rectangles live on their own layer so they can be colored
	rects := newBrailleBuf(w, h)
	g := m.sess.Gesture()
	regions := g.Drawn()
	if r, ok := g.Active(); ok {
		regions = append(regions, r)
	}
	for _, r := range regions {
		x0, y0, ok0 := m.screenXYMicro(geom.LatLng{Lat: r.MaxLat, Lng: r.MinLng}, w, h)
		x1, y1, ok1 := m.screenXYMicro(geom.LatLng{Lat: r.MinLat, Lng: r.MaxLng}, w, h)
		if !ok0 || !ok1 {
			continue
		}
		rects.drawRectMicro(x0, y0, x1, y1)
	}

	var sb strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			if m.hovering && !g.Tracking() && x == m.hoverCellX && y == m.hoverCellY {
				sb.WriteString(hoverStyle.Render("◯"))
				continue
			}
			if rm := rects.m[y][x]; rm != 0 {
				sb.WriteString(m.selStyle.Render(string(maskGlyph(rm | points.m[y][x]))))
				continue
			}
			sb.WriteRune(points.glyph(x, y))
		}
	}
	return sb.String()
}

// inspectNearest finds the visible record closest to the hovered cell, or to
// the viewport center when the pointer is off the map.
func (m Model) inspectNearest() (speedtest.TestRecord, bool) {
	recs := m.sess.Visible()
	if len(recs) == 0 {
		return speedtest.TestRecord{}, false
	}
	lo := m.layout()
	w, h := lo.mapW, lo.mapH
	cx, cy := w/2, h/2
	if m.hovering {
		cx, cy = m.hoverCellX, m.hoverCellY
	}
	bestD := -1
	var best speedtest.TestRecord
	for _, r := range recs {
		sx, sy, ok := m.screenXY(r.Point(), w, h)
		if !ok {
			continue
		}
		dx := sx - cx
		dy := sy - cy
		d := dx*dx + dy*dy
		if bestD < 0 || d < bestD {
			bestD = d
			best = r
		}
	}
	return best, bestD >= 0
}
