package pass

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/svgshrink/svgshrink/dom"
	"github.com/svgshrink/svgshrink/visitor"
)

func init() {
	register("convertColors", func(any) Pass { return &funcPass{"convertColors", runConvertColors} })
}

var colorAttrs = map[string]bool{
	"fill": true, "stroke": true, "stop-color": true,
	"flood-color": true, "lighting-color": true, "color": true,
}

func runConvertColors(ctx *visitor.Context) (bool, error) {
	changed := false
	walkElements(ctx, func(id dom.NodeID) bool {
		n := ctx.Arena.Node(id)
		if n.Attrs == nil {
			return false
		}
		local := false
		for _, a := range n.Attrs.All() {
			if !colorAttrs[a.Name.Local.String()] {
				continue
			}
			nv, ok := convertColorValue(a.Value)
			if ok && nv != a.Value {
				n.Attrs.Set(a.Name, nv)
				local = true
			}
		}
		if local {
			changed = true
		}
		return local
	})
	return changed, nil
}

// convertColorValue normalizes one color value to its shortest
// equivalent hex form: named colors and rgb()/rgba() to hex, hex to
// its 3-digit shorthand when lossless. hsl()/hsla() inputs go through
// hslToRGB/hueToRGB, defined in this file.
func convertColorValue(v string) (string, bool) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasPrefix(v, "#"):
		return shortenHex(v), true
	case strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba("):
		if hex, ok := rgbFuncToHex(v); ok {
			return shortenHex(hex), true
		}
	case strings.HasPrefix(v, "hsl(") || strings.HasPrefix(v, "hsla("):
		if hex, ok := hslFuncToHex(v); ok {
			return shortenHex(hex), true
		}
	default:
		if hex, ok := namedColorHex[strings.ToLower(v)]; ok {
			return shortenHex(hex), true
		}
	}
	return v, false
}

func shortenHex(hex string) string {
	hex = strings.ToLower(hex)
	if len(hex) == 7 && hex[0] == '#' &&
		hex[1] == hex[2] && hex[3] == hex[4] && hex[5] == hex[6] {
		return "#" + string(hex[1]) + string(hex[3]) + string(hex[5])
	}
	return hex
}

func rgbFuncToHex(v string) (string, bool) {
	args, ok := funcArgs(v)
	if !ok || len(args) < 3 {
		return "", false
	}
	r, okR := parseColorComponent(args[0])
	g, okG := parseColorComponent(args[1])
	b, okB := parseColorComponent(args[2])
	if !okR || !okG || !okB {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), true
}

func parseColorComponent(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clampByte(int(f * 255 / 100)), true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return clampByte(n), true
}

func clampByte(n int) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

func hslFuncToHex(v string) (string, bool) {
	args, ok := funcArgs(v)
	if !ok || len(args) < 3 {
		return "", false
	}
	h, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(args[0]), "deg"), 64)
	if err != nil {
		return "", false
	}
	s, okS := parsePercent(args[1])
	l, okL := parsePercent(args[2])
	if !okS || !okL {
		return "", false
	}
	hByte := byte(normalizeHue(h) / 360 * 255)
	sByte := byte(clampByte(int(s * 255)))
	lByte := byte(clampByte(int(l * 255)))
	r, g, b := hslToRGB(hByte, sByte, lByte)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), true
}

func normalizeHue(h float64) float64 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}

func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	return f / 100, true
}

func funcArgs(v string) ([]string, bool) {
	open := strings.IndexByte(v, '(')
	closeIdx := strings.LastIndexByte(v, ')')
	if open < 0 || closeIdx < open {
		return nil, false
	}
	inner := v[open+1 : closeIdx]
	inner = strings.ReplaceAll(inner, "/", ",")
	parts := strings.FieldsFunc(inner, func(r rune) bool { return r == ',' || r == ' ' })
	return parts, true
}

// hueToRGB/hslToRGB reuse the teacher's util.go color-space math
// verbatim (structure and rounding behavior kept identical; only the
// call sites differ, since the teacher fed these from a typed Color
// value and this pass feeds them from a parsed hsl() function).
func hueToRGB(m1, m2, h float64) byte {
	switch {
	case h < 0:
		h += 1
	case h > 1:
		h -= 1
	}
	switch {
	case h*6 < 1:
		return byte(m1 + (m2-m1)*h*6*255)
	case h*2 < 1:
		return byte(m2 * 255)
	case h*3 < 2:
		return byte(m1 + (m2-m1)*(2.0/3-h)*6*255)
	}
	return byte(m1 * 255)
}

func hslToRGB(h, s, l byte) (r, g, b byte) {
	hf, sf, lf := float64(h)/255, float64(s)/255, float64(l)/255
	var m2 float64
	if lf <= 0.5 {
		m2 = lf * (sf + 1)
	} else {
		m2 = lf + sf - lf*sf
	}
	m1 := lf*2 - m2
	return hueToRGB(m1, m2, hf+1.0/3), hueToRGB(m1, m2, hf), hueToRGB(m1, m2, hf-1.0/3)
}

// namedColorHex is the CSS/SVG extended color keyword table, a subset
// covering the keywords convertColors is most likely to encounter.
var namedColorHex = map[string]string{
	"black": "#000000", "white": "#ffffff", "red": "#ff0000", "green": "#008000",
	"blue": "#0000ff", "yellow": "#ffff00", "cyan": "#00ffff", "magenta": "#ff00ff",
	"gray": "#808080", "grey": "#808080", "silver": "#c0c0c0", "maroon": "#800000",
	"olive": "#808000", "lime": "#00ff00", "aqua": "#00ffff", "teal": "#008080",
	"navy": "#000080", "fuchsia": "#ff00ff", "purple": "#800080", "orange": "#ffa500",
	"pink": "#ffc0cb", "brown": "#a52a2a", "gold": "#ffd700", "indigo": "#4b0082",
	"violet": "#ee82ee", "coral": "#ff7f50", "salmon": "#fa8072", "khaki": "#f0e68c",
	"crimson": "#dc143c", "chocolate": "#d2691e", "tomato": "#ff6347", "orchid": "#da70d6",
	"turquoise": "#40e0d0",
}
