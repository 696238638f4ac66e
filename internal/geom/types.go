package geom

import "math"

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Valid reports whether both components are finite numbers.
func (p LatLng) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lng) && !math.IsInf(p.Lat, 0) && !math.IsInf(p.Lng, 0)
}

// BBox is the lon/lat extent used to project data onto the map canvas.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Empty reports whether the box has no positive area.
func (b BBox) Empty() bool {
	return !(b.MaxX > b.MinX && b.MaxY > b.MinY)
}

// Padded grows a degenerate box so a single point (or a line of points)
// still projects onto the canvas.
func (b BBox) Padded(pad float64) BBox {
	if b.MaxX <= b.MinX {
		b.MinX -= pad
		b.MaxX += pad
	}
	if b.MaxY <= b.MinY {
		b.MinY -= pad
		b.MaxY += pad
	}
	return b
}

// Extent returns the bbox of the valid points, ok=false when there are none.
func Extent(pts []LatLng) (bbox BBox, ok bool) {
	n := 0
	for _, p := range pts {
		if !p.Valid() {
			continue
		}
		if n == 0 {
			bbox = BBox{MinX: p.Lng, MinY: p.Lat, MaxX: p.Lng, MaxY: p.Lat}
		} else {
			if p.Lng < bbox.MinX {
				bbox.MinX = p.Lng
			}
			if p.Lat < bbox.MinY {
				bbox.MinY = p.Lat
			}
			if p.Lng > bbox.MaxX {
				bbox.MaxX = p.Lng
			}
			if p.Lat > bbox.MaxY {
				bbox.MaxY = p.Lat
			}
		}
		n++
	}
	return bbox, n > 0
}
