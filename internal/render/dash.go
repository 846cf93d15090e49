package render

import "math"

// Segment is a straight piece of a stroked line.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// DashSegments splits a line into its visible pieces for the given dash
// pattern. A nil or all-zero pattern returns the whole line.
func DashSegments(x0, y0, x1, y1 float64, dash []float64) []Segment {
	total := 0.0
	for _, d := range dash {
		total += math.Max(d, 0)
	}
	length := math.Hypot(x1-x0, y1-y0)
	if total == 0 || length == 0 {
		return []Segment{{x0, y0, x1, y1}}
	}

	ux, uy := (x1-x0)/length, (y1-y0)/length
	segs := make([]Segment, 0, int(length/total)*len(dash)/2+1)
	pos, i := 0.0, 0
	for pos < length {
		d := math.Max(dash[i%len(dash)], 0)
		end := math.Min(pos+d, length)
		if i%2 == 0 && end > pos {
			segs = append(segs, Segment{
				X0: x0 + ux*pos, Y0: y0 + uy*pos,
				X1: x0 + ux*end, Y1: y0 + uy*end,
			})
		}
		pos = end
		i++
	}
	return segs
}
