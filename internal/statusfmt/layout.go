package statusfmt

import "strings"

// Layout distributes the free space of a line of the given width over its
// separation points. With no separation point the segments are returned as
// they are; a painter clips whatever does not fit.
func Layout(in Info, width int) []Segment {
	out := make([]Segment, 0, len(in.Segments))
	fills := in.Fills()
	free := width - in.Width
	if fills == 0 || free <= 0 {
		for _, s := range in.Segments {
			if !s.Fill {
				out = append(out, s)
			}
		}
		return out
	}

	each, extra := free/fills, free%fills
	k := 0
	for _, s := range in.Segments {
		if !s.Fill {
			out = append(out, s)
			continue
		}
		n := each
		if k < extra {
			n++
		}
		k++
		if n > 0 {
			out = append(out, Segment{Text: strings.Repeat(" ", n), Group: s.Group})
		}
	}
	return out
}
