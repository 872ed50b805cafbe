package block

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/docforge/docforge/wml"
)

// RunFormat is the flat formatting record for one text run. Zero values
// mean "unset": no font override, no explicit size, no color.
type RunFormat struct {
	Text      string  `json:"text"`
	Bold      bool    `json:"bold,omitempty"`
	Italic    bool    `json:"italic,omitempty"`
	Underline bool    `json:"underline,omitempty"`
	FontName  string  `json:"font_name,omitempty"`
	SizePt    float64 `json:"size_pt,omitempty"`
	Color     string  `json:"color,omitempty"` // 6 hex digits
}

// FromRun captures a run's text and formatting into a RunFormat.
func FromRun(r *wml.Run) RunFormat {
	f := RunFormat{Text: r.Text()}
	rp := r.Props
	if rp == nil {
		return f
	}
	f.Bold = rp.Bold.Enabled()
	f.Italic = rp.Italic.Enabled()
	f.Underline = rp.UnderlineOn()
	if rp.Fonts != nil {
		f.FontName = rp.Fonts.ASCII
		if f.FontName == "" {
			f.FontName = rp.Fonts.HAnsi
		}
	}
	if rp.Size != nil {
		if half, err := strconv.ParseFloat(rp.Size.Val, 64); err == nil && half > 0 {
			f.SizePt = half / 2
		}
	}
	if rp.Color != nil {
		if hex, ok := normalizeHexColor(rp.Color.Val); ok {
			f.Color = hex
		}
	}
	return f
}

// ConcatText reconstructs the original full text of a run sequence.
func ConcatText(runs []RunFormat) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// NewRun builds a run carrying the given text with this record's
// formatting. When a font name is set it is applied both as the primary
// font and as the East-Asian override; without the override, East Asian
// glyphs silently fall back to a different font. A malformed color is
// logged and skipped, never an error.
func (f RunFormat) NewRun(text string, logger *zap.Logger) *wml.Run {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &wml.Run{}
	r.SetText(text)

	props := &wml.RunProps{}
	if f.Bold {
		props.Bold = &wml.OnOff{}
	}
	if f.Italic {
		props.Italic = &wml.OnOff{}
	}
	if f.Underline {
		props.Underline = &wml.ValAttr{Val: "single"}
	}
	if f.FontName != "" {
		props.Fonts = &wml.Fonts{
			ASCII:    f.FontName,
			HAnsi:    f.FontName,
			EastAsia: f.FontName,
		}
	}
	if f.SizePt > 0 {
		half := strconv.Itoa(int(math.Round(f.SizePt * 2)))
		props.Size = &wml.ValAttr{Val: half}
		props.SizeCs = &wml.ValAttr{Val: half}
	}
	if f.Color != "" {
		if hex, ok := ParseColor(f.Color); ok {
			props.Color = &wml.ValAttr{Val: hex}
		} else {
			logger.Warn("skipping malformed run color", zap.String("color", f.Color))
		}
	}
	if props.Bold != nil || props.Italic != nil || props.Underline != nil ||
		props.Fonts != nil || props.Size != nil || props.Color != nil {
		r.Props = props
	}
	return r
}

// ParseColor accepts either a bare 6-hex-digit color or a parenthesized
// triple of hex byte values, e.g. "RGBColor(0x4a, 0x90, 0xd9)", and returns
// the normalized 6-hex-digit form.
func ParseColor(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if open := strings.IndexByte(s, '('); open >= 0 {
		end := strings.IndexByte(s[open:], ')')
		if end < 0 {
			return "", false
		}
		parts := strings.Split(s[open+1:open+end], ",")
		if len(parts) != 3 {
			return "", false
		}
		var out [3]byte
		for i, part := range parts {
			part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "0x"))
			v, err := strconv.ParseUint(part, 16, 8)
			if err != nil {
				return "", false
			}
			out[i] = byte(v)
		}
		const hexDigits = "0123456789ABCDEF"
		var sb strings.Builder
		for _, b := range out {
			sb.WriteByte(hexDigits[b>>4])
			sb.WriteByte(hexDigits[b&0x0f])
		}
		return sb.String(), true
	}
	return normalizeHexColor(s)
}

// normalizeHexColor validates a bare 6-hex-digit color and uppercases it.
func normalizeHexColor(s string) (string, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return "", false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return "", false
		}
	}
	return strings.ToUpper(s), true
}
