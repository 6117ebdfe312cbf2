package pathdata

import (
	"fmt"
	"math"
	"strconv"

	"github.com/svgshrink/svgshrink/svgerr"
)

// Parse parses an SVG path `d` (or `points`, via ParsePoints) command
// string per the grammar in SVG 1.1 §8 / SVG 2 paths. Whitespace and
// commas are equivalent separators. Implicit repetition of the previous
// command (a MoveTo continuing as LineTo, or any "To"/"By" command
// continuing with more operand groups) is materialized into explicit
// Commands, per §4.B. On malformed input it returns a *svgerr.Error of
// kind PathSyntax reporting the byte offset.
func Parse(s string) ([]Command, error) {
	p := &parser{s: s}
	p.skipWhitespace()

	var commands []Command
	for !p.eof() {
		startPos := p.pos
		b := p.s[p.pos]

		if b == 'Z' || b == 'z' {
			p.pos++
			commands = append(commands, Command{Kind: ClosePath})
			p.skipWhitespace()
			continue
		}

		letter, isAbsolute, ok := commandLetter(b)
		if !ok {
			return nil, p.errorf(startPos, "unexpected command letter %q", string(b))
		}
		p.pos++
		p.skipWhitespace()

		group, err := p.parseCommandGroup(letter, isAbsolute)
		if err != nil {
			return nil, err
		}
		commands = append(commands, group...)
		p.skipWhitespace()
	}

	return commands, nil
}

// ParsePoints parses a `points` attribute (used by <polyline>/<polygon>):
// a bare coordinate-pair sequence with no leading command letter. Per §9,
// this is the same underlying sequence as a path's MoveTo/LineTo pairs,
// viewed without a leading M.
func ParsePoints(s string) ([]Command, error) {
	p := &parser{s: s}
	p.skipWhitespace()

	var commands []Command
	first := true
	for !p.eof() {
		pt, err := p.parseCoordinatePair()
		if err != nil {
			return nil, err
		}
		kind := LineTo
		if first {
			kind = MoveTo
			first = false
		}
		commands = append(commands, Command{Kind: kind, X: pt.x, Y: pt.y})
		p.skipOptionalComma()
	}
	return commands, nil
}

func commandLetter(b byte) (letter byte, isAbsolute bool, ok bool) {
	switch b {
	case 'M', 'm':
		return 'M', b == 'M', true
	case 'L', 'l':
		return 'L', b == 'L', true
	case 'H', 'h':
		return 'H', b == 'H', true
	case 'V', 'v':
		return 'V', b == 'V', true
	case 'C', 'c':
		return 'C', b == 'C', true
	case 'S', 's':
		return 'S', b == 'S', true
	case 'Q', 'q':
		return 'Q', b == 'Q', true
	case 'T', 't':
		return 'T', b == 'T', true
	case 'A', 'a':
		return 'A', b == 'A', true
	}
	return 0, false, false
}

type point struct{ x, y float64 }

type parser struct {
	s   string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.s) }

func (p *parser) errorf(at int, format string, args ...any) error {
	return svgerr.At(svgerr.PathSyntax, fmt.Sprintf(format, args...), at, p.pos)
}

func isWhitespace(b byte) bool {
	switch b {
	case 0x09, 0x0a, 0x0c, 0x0d, 0x20:
		return true
	}
	return false
}

func (p *parser) skipWhitespace() {
	for !p.eof() && isWhitespace(p.s[p.pos]) {
		p.pos++
	}
}

// skipOptionalComma consumes whitespace, an optional comma, and more
// whitespace, matching the grammar's comma_wsp production.
func (p *parser) skipOptionalComma() {
	p.skipWhitespace()
	if !p.eof() && p.s[p.pos] == ',' {
		p.pos++
		p.skipWhitespace()
	}
}

func startsCoordinate(b byte) bool {
	return b == '-' || b == '+' || b == '.' || (b >= '0' && b <= '9')
}

func (p *parser) parseFlag() (bool, error) {
	if p.eof() {
		return false, p.errorf(p.pos, "expected a flag (0 or 1)")
	}
	b := p.s[p.pos]
	if b != '0' && b != '1' {
		return false, p.errorf(p.pos, "expected a flag (0 or 1), got %q", string(b))
	}
	p.pos++
	return b == '1', nil
}

func (p *parser) parseCoordinate() (float64, error) {
	start := p.pos
	if !p.eof() && (p.s[p.pos] == '+' || p.s[p.pos] == '-') {
		p.pos++
	}
	sawDigit := false
	for !p.eof() && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
		sawDigit = true
	}
	if !p.eof() && p.s[p.pos] == '.' {
		p.pos++
		for !p.eof() && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
			sawDigit = true
		}
	}
	if !sawDigit {
		return 0, p.errorf(start, "expected a number")
	}
	if !p.eof() && (p.s[p.pos] == 'e' || p.s[p.pos] == 'E') {
		save := p.pos
		p.pos++
		if !p.eof() && (p.s[p.pos] == '+' || p.s[p.pos] == '-') {
			p.pos++
		}
		expStart := p.pos
		for !p.eof() && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
			p.pos++
		}
		if p.pos == expStart {
			p.pos = save
		}
	}
	f, err := strconv.ParseFloat(p.s[start:p.pos], 64)
	if err != nil {
		return 0, p.errorf(start, "invalid number %q", p.s[start:p.pos])
	}
	return f, nil
}

func (p *parser) parseCoordinatePair() (point, error) {
	x, err := p.parseCoordinate()
	if err != nil {
		return point{}, err
	}
	p.skipOptionalComma()
	y, err := p.parseCoordinate()
	if err != nil {
		return point{}, err
	}
	return point{x: x, y: y}, nil
}

// parseCommandGroup parses all repeated operand groups following one
// command letter, materializing each repetition into its own Command —
// except that a repeated MoveTo group becomes LineTo commands per §4.B.
func (p *parser) parseCommandGroup(letter byte, isAbsolute bool) ([]Command, error) {
	var out []Command
	first := true
	for {
		var (
			cmd Command
			err error
		)
		switch letter {
		case 'M':
			pt, e := p.parseCoordinatePair()
			err = e
			kind := MoveTo
			if !isAbsolute {
				kind = MoveBy
			}
			if !first {
				kind = LineTo
				if !isAbsolute {
					kind = LineBy
				}
			}
			cmd = Command{Kind: kind, X: pt.x, Y: pt.y}
		case 'L':
			pt, e := p.parseCoordinatePair()
			err = e
			kind := LineTo
			if !isAbsolute {
				kind = LineBy
			}
			cmd = Command{Kind: kind, X: pt.x, Y: pt.y}
		case 'H':
			v, e := p.parseCoordinate()
			err = e
			kind := HorizontalLineTo
			if !isAbsolute {
				kind = HorizontalLineBy
			}
			cmd = Command{Kind: kind, X: v, Y: math.NaN()}
		case 'V':
			v, e := p.parseCoordinate()
			err = e
			kind := VerticalLineTo
			if !isAbsolute {
				kind = VerticalLineBy
			}
			cmd = Command{Kind: kind, X: math.NaN(), Y: v}
		case 'C':
			c1, e := p.parseCoordinatePair()
			if e != nil {
				err = e
				break
			}
			p.skipOptionalComma()
			c2, e := p.parseCoordinatePair()
			if e != nil {
				err = e
				break
			}
			p.skipOptionalComma()
			end, e := p.parseCoordinatePair()
			err = e
			kind := CubicBezierTo
			if !isAbsolute {
				kind = CubicBezierBy
			}
			cmd = Command{Kind: kind, X1: c1.x, Y1: c1.y, X2: c2.x, Y2: c2.y, X: end.x, Y: end.y}
		case 'S':
			c2, e := p.parseCoordinatePair()
			if e != nil {
				err = e
				break
			}
			p.skipOptionalComma()
			end, e := p.parseCoordinatePair()
			err = e
			kind := SmoothBezierTo
			if !isAbsolute {
				kind = SmoothBezierBy
			}
			cmd = Command{Kind: kind, X2: c2.x, Y2: c2.y, X: end.x, Y: end.y}
		case 'Q':
			c1, e := p.parseCoordinatePair()
			if e != nil {
				err = e
				break
			}
			p.skipOptionalComma()
			end, e := p.parseCoordinatePair()
			err = e
			kind := QuadraticBezierTo
			if !isAbsolute {
				kind = QuadraticBezierBy
			}
			cmd = Command{Kind: kind, X1: c1.x, Y1: c1.y, X: end.x, Y: end.y}
		case 'T':
			end, e := p.parseCoordinatePair()
			err = e
			kind := SmoothQuadraticBezierTo
			if !isAbsolute {
				kind = SmoothQuadraticBezierBy
			}
			cmd = Command{Kind: kind, X: end.x, Y: end.y}
		case 'A':
			rx, e := p.parseCoordinate()
			if e != nil {
				err = e
				break
			}
			p.skipOptionalComma()
			ry, e := p.parseCoordinate()
			if e != nil {
				err = e
				break
			}
			p.skipOptionalComma()
			rot, e := p.parseCoordinate()
			if e != nil {
				err = e
				break
			}
			p.skipOptionalComma()
			large, e := p.parseFlag()
			if e != nil {
				err = e
				break
			}
			p.skipOptionalComma()
			sweep, e := p.parseFlag()
			if e != nil {
				err = e
				break
			}
			p.skipOptionalComma()
			end, e := p.parseCoordinatePair()
			err = e
			kind := ArcTo
			if !isAbsolute {
				kind = ArcBy
			}
			cmd = Command{Kind: kind, Rx: rx, Ry: ry, XRotation: rot, LargeArc: large, Sweep: sweep, X: end.x, Y: end.y}
		}
		if err != nil {
			if first {
				return nil, err
			}
			break
		}
		out = append(out, cmd)
		first = false

		save := p.pos
		p.skipOptionalComma()
		if p.eof() || !startsCoordinate(p.s[p.pos]) {
			p.pos = save
			break
		}
	}
	if len(out) == 0 {
		return nil, p.errorf(p.pos, "command %q requires at least one operand group", string(letter))
	}
	return out, nil
}

