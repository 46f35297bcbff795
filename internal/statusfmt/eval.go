package statusfmt

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const maxDepth = 8

// Context supplies the buffer values items expand to.
type Context struct {
	FileName  string
	Line      int
	Col       int
	LineCount int
	Modified  bool
	ReadOnly  bool
	Filetype  string

	// Eval evaluates %{expr} and %! expressions.
	Eval func(expr string) (string, error)
}

// Segment is a run of text drawn with one highlight group.
// An empty Group means the line's base group.
type Segment struct {
	Text  string
	Group string
	// Fill marks a %= separation point. Fill segments carry no text until Layout.
	Fill bool
}

// Info is the result of evaluating a format string.
type Info struct {
	// Str is the visible text with every item expanded and separators removed.
	Str string
	// Width is the display width of Str in cells.
	Width    int
	Segments []Segment
}

// Fills returns the number of separation points.
func (in Info) Fills() int {
	n := 0
	for _, s := range in.Segments {
		if s.Fill {
			n++
		}
	}
	return n
}

// Width returns the display width of s in cells.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Evaluate expands a format string.
func Evaluate(format string, ctx Context) (Info, error) {
	if strings.HasPrefix(format, "%!") {
		if ctx.Eval == nil {
			return Info{}, &SyntaxError{Format: format, Offset: 0, Err: ErrNoEvaluator}
		}
		res, err := ctx.Eval(format[2:])
		if err != nil {
			return Info{}, fmt.Errorf("evaluating %q: %w", format[2:], err)
		}
		format = res
	}

	b := &builder{}
	if err := b.parse(format, ctx, 0); err != nil {
		return Info{}, err
	}
	return b.info(), nil
}

type builder struct {
	segments []Segment
	group    string
}

func (b *builder) write(text string) {
	if text == "" {
		return
	}
	if n := len(b.segments); n > 0 {
		last := &b.segments[n-1]
		if !last.Fill && last.Group == b.group {
			last.Text += text
			return
		}
	}
	b.segments = append(b.segments, Segment{Text: text, Group: b.group})
}

func (b *builder) fill() {
	b.segments = append(b.segments, Segment{Group: b.group, Fill: true})
}

func (b *builder) info() Info {
	var sb strings.Builder
	for _, s := range b.segments {
		sb.WriteString(s.Text)
	}
	str := sb.String()
	return Info{Str: str, Width: Width(str), Segments: b.segments}
}

func (b *builder) parse(format string, ctx Context, depth int) error {
	if depth > maxDepth {
		return &SyntaxError{Format: format, Err: ErrRecursion}
	}

	i := 0
	for i < len(format) {
		if format[i] != '%' {
			j := strings.IndexByte(format[i:], '%')
			if j < 0 {
				j = len(format) - i
			}
			b.write(format[i : i+j])
			i += j
			continue
		}

		start := i
		i++
		if i >= len(format) {
			return &SyntaxError{Format: format, Offset: start, Err: ErrTrailingPercent}
		}

		switch format[i] {
		case '%':
			b.write("%")
			i++
		case '*':
			b.group = ""
			i++
		case '=':
			b.fill()
			i++
		case '#':
			end := strings.IndexByte(format[i+1:], '#')
			if end < 0 {
				return &SyntaxError{Format: format, Offset: start, Err: ErrUnterminated}
			}
			b.group = format[i+1 : i+1+end]
			i += end + 2
		case '{':
			n, err := b.expr(format, i, ctx, depth)
			if err != nil {
				return err
			}
			i = n
		default:
			n, err := b.item(format, i, ctx)
			if err != nil {
				return err
			}
			i = n
		}
	}
	return nil
}

// expr handles %{expr} and %{%expr%}. i points at '{'.
func (b *builder) expr(format string, i int, ctx Context, depth int) (int, error) {
	start := i - 1
	recursive := i+1 < len(format) && format[i+1] == '%'

	var body string
	var next int
	if recursive {
		end := strings.Index(format[i+2:], "%}")
		if end < 0 {
			return 0, &SyntaxError{Format: format, Offset: start, Err: ErrUnterminated}
		}
		body = format[i+2 : i+2+end]
		next = i + 2 + end + 2
	} else {
		end := strings.IndexByte(format[i+1:], '}')
		if end < 0 {
			return 0, &SyntaxError{Format: format, Offset: start, Err: ErrUnterminated}
		}
		body = format[i+1 : i+1+end]
		next = i + 1 + end + 1
	}

	if ctx.Eval == nil {
		return 0, &SyntaxError{Format: format, Offset: start, Err: ErrNoEvaluator}
	}
	res, err := ctx.Eval(body)
	if err != nil {
		return 0, fmt.Errorf("evaluating %q: %w", body, err)
	}

	if recursive {
		if err := b.parse(res, ctx, depth+1); err != nil {
			return 0, err
		}
	} else {
		b.write(res)
	}
	return next, nil
}

// item handles a flagged item such as %-3.l. i points just after '%'.
func (b *builder) item(format string, i int, ctx Context) (int, error) {
	start := i - 1
	left := false
	zero := false

	for i < len(format) && (format[i] == '-' || format[i] == '0') {
		if format[i] == '-' {
			left = true
		} else {
			zero = true
		}
		i++
	}

	minwid, i := readNumber(format, i)
	maxwid := 0
	if i < len(format) && format[i] == '.' {
		maxwid, i = readNumber(format, i+1)
	}

	if i >= len(format) {
		return 0, &SyntaxError{Format: format, Offset: start, Err: ErrTrailingPercent}
	}

	value, numeric, err := expand(format[i], ctx)
	if err != nil {
		return 0, &SyntaxError{Format: format, Offset: start, Err: err}
	}

	b.write(pad(value, minwid, maxwid, left, zero && numeric))
	return i + 1, nil
}

func readNumber(s string, i int) (int, int) {
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i {
		return 0, i
	}
	n, _ := strconv.Atoi(s[i:j])
	return n, j
}

func expand(c byte, ctx Context) (string, bool, error) {
	switch c {
	case 't':
		if ctx.FileName == "" {
			return "[No Name]", false, nil
		}
		return filepath.Base(ctx.FileName), false, nil
	case 'f':
		if ctx.FileName == "" {
			return "[No Name]", false, nil
		}
		return ctx.FileName, false, nil
	case 'c':
		return strconv.Itoa(ctx.Col), true, nil
	case 'l':
		return strconv.Itoa(ctx.Line), true, nil
	case 'L':
		return strconv.Itoa(ctx.LineCount), true, nil
	case 'm':
		if ctx.Modified {
			return "[+]", false, nil
		}
		return "", false, nil
	case 'r':
		if ctx.ReadOnly {
			return "[RO]", false, nil
		}
		return "", false, nil
	case 'y':
		if ctx.Filetype == "" {
			return "", false, nil
		}
		return "[" + ctx.Filetype + "]", false, nil
	default:
		return "", false, fmt.Errorf("%w: %q", ErrUnknownItem, c)
	}
}

func pad(value string, minwid, maxwid int, left, zero bool) string {
	w := Width(value)
	if maxwid > 0 && w > maxwid {
		value = "<" + truncateLeft(value, maxwid-1)
		w = Width(value)
	}
	if w >= minwid {
		return value
	}
	n := minwid - w
	switch {
	case left:
		return value + strings.Repeat(" ", n)
	case zero:
		return strings.Repeat("0", n) + value
	default:
		return strings.Repeat(" ", n) + value
	}
}

// truncateLeft keeps the rightmost cells of s that fit in width.
func truncateLeft(s string, width int) string {
	runes := []rune(s)
	w := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > width {
			break
		}
		w += rw
		i--
	}
	return string(runes[i:])
}
