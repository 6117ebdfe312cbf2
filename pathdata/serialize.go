package pathdata

import (
	"strconv"
	"strings"
)

// Form selects which textual view Serialize produces, resolving the
// Path-vs-Points Open Question from §9.
type Form int

const (
	// FormPath emits a conventional `d` attribute value, with command
	// letters.
	FormPath Form = iota
	// FormPoints emits a `points` attribute value: a bare coordinate-pair
	// sequence with no leading "M" and no other command letters. Serialize
	// writes each command's X,Y pair; command kinds are not checked, so
	// callers pass only a move followed by lines.
	FormPoints
)

// Serialize renders commands in the given Form using the shortest
// grammatical encoding: the command letter is elided when it repeats the
// previous command's letter (never for Move or ClosePath), leading zeros
// on fractional numbers are dropped, and separators are omitted wherever
// the grammar permits (a new number starting with '-' needs no preceding
// separator, nor does one starting with '.' when the previous number
// already has a decimal point).
func Serialize(commands []Command, form Form) string {
	var b strings.Builder

	if form == FormPoints {
		for i, c := range commands {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeNumber(&b, c.X)
			b.WriteByte(',')
			writeNumber(&b, c.Y)
		}
		return b.String()
	}

	var lastLetter byte
	haveLast := false
	for _, c := range commands {
		letter := c.Kind.Letter()
		// An elided Move letter would reparse as an implicit LineTo, and
		// an elided ClosePath letter would write nothing, so those
		// letters are always written.
		if !haveLast || letter != lastLetter || c.Kind == MoveTo || c.Kind == MoveBy || c.Kind == ClosePath {
			b.WriteByte(letter)
		} else if needsSeparatorBeforeCommand(c) {
			b.WriteByte(',')
		}
		haveLast = true
		lastLetter = letter
		writeOperands(&b, c)
	}

	return b.String()
}

// needsSeparatorBeforeCommand reports whether, when a command letter is
// elided because it repeats the previous one, a separator must still be
// written before this command's first operand to avoid it running into
// the previous command's last digit. A leading '-' needs none; a
// leading '.' gets one, since the previous number may have no decimal
// point of its own.
func needsSeparatorBeforeCommand(c Command) bool {
	var first float64
	switch c.Kind {
	case ClosePath:
		return false
	case HorizontalLineTo, HorizontalLineBy:
		first = c.X
	case VerticalLineTo, VerticalLineBy:
		first = c.Y
	case CubicBezierTo, CubicBezierBy:
		first = c.X1
	case SmoothBezierTo, SmoothBezierBy:
		first = c.X2
	case QuadraticBezierTo, QuadraticBezierBy:
		first = c.X1
	case ArcTo, ArcBy:
		first = c.Rx
	default:
		first = c.X
	}
	s := formatNumber(first)
	return !(len(s) > 0 && s[0] == '-')
}

func writeOperands(b *strings.Builder, c Command) {
	switch c.Kind {
	case ClosePath:
	case HorizontalLineTo, HorizontalLineBy:
		writeNumber(b, c.X)
	case VerticalLineTo, VerticalLineBy:
		writeNumber(b, c.Y)
	case CubicBezierTo, CubicBezierBy:
		writeNumber(b, c.X1)
		writeSep(b, c.X1, c.Y1)
		writeNumber(b, c.Y1)
		writeSepComma(b)
		writeNumber(b, c.X2)
		writeSep(b, c.X2, c.Y2)
		writeNumber(b, c.Y2)
		writeSepComma(b)
		writeNumber(b, c.X)
		writeSep(b, c.X, c.Y)
		writeNumber(b, c.Y)
	case SmoothBezierTo, SmoothBezierBy:
		writeNumber(b, c.X2)
		writeSep(b, c.X2, c.Y2)
		writeNumber(b, c.Y2)
		writeSepComma(b)
		writeNumber(b, c.X)
		writeSep(b, c.X, c.Y)
		writeNumber(b, c.Y)
	case QuadraticBezierTo, QuadraticBezierBy:
		writeNumber(b, c.X1)
		writeSep(b, c.X1, c.Y1)
		writeNumber(b, c.Y1)
		writeSepComma(b)
		writeNumber(b, c.X)
		writeSep(b, c.X, c.Y)
		writeNumber(b, c.Y)
	case ArcTo, ArcBy:
		writeNumber(b, c.Rx)
		writeSepComma(b)
		writeNumber(b, c.Ry)
		writeSepComma(b)
		writeNumber(b, c.XRotation)
		b.WriteByte(' ')
		writeFlag(b, c.LargeArc)
		writeFlag(b, c.Sweep)
		writeSep(b, 0, c.X)
		writeNumber(b, c.X)
		writeSep(b, c.X, c.Y)
		writeNumber(b, c.Y)
	default: // Move/Line/SmoothQuadratic
		writeNumber(b, c.X)
		writeSep(b, c.X, c.Y)
		writeNumber(b, c.Y)
	}
}

func writeFlag(b *strings.Builder, f bool) {
	if f {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
}

// writeSep writes a separator before the next number only when one is
// grammatically required: a following negative number acts as its own
// separator, and so does a bare-dot number when prev already contains a
// decimal point.
func writeSep(b *strings.Builder, prev, next float64) {
	s := formatNumber(next)
	if len(s) > 0 && (s[0] == '-' || (s[0] == '.' && strings.Contains(formatNumber(prev), "."))) {
		return
	}
	b.WriteByte(',')
}

func writeSepComma(b *strings.Builder) {
	b.WriteByte(',')
}

func writeNumber(b *strings.Builder, f float64) {
	b.WriteString(formatNumber(f))
}

// formatNumber renders f with the shortest round-tripping decimal
// representation, then elides a leading "0" before the decimal point
// (".5" not "0.5", "-.5" not "-0.5").
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, "eE") {
		// Path grammar has no exponent notation; fall back to a fixed
		// representation trimmed of trailing zeros.
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if strings.HasPrefix(s, "0.") {
		s = s[1:]
	} else if strings.HasPrefix(s, "-0.") {
		s = "-" + s[2:]
	}
	return s
}
