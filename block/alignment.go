package block

// Alignment is the paragraph justification, mapped from the w:jc value.
// AlignNone means no explicit alignment is set.
type Alignment string

const (
	AlignNone        Alignment = ""
	AlignLeft        Alignment = "left"
	AlignCenter      Alignment = "center"
	AlignRight       Alignment = "right"
	AlignJustify     Alignment = "justify"
	AlignDistribute  Alignment = "distribute"
	AlignThaiJustify Alignment = "thai_justify"
)

// ParseAlignment maps a w:jc value to an Alignment. The legacy start/end
// values normalize to left/right; unrecognized values map to AlignNone.
func ParseAlignment(jc string) Alignment {
	switch jc {
	case "left", "start":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	case "both":
		return AlignJustify
	case "distribute":
		return AlignDistribute
	case "thaiDistribute":
		return AlignThaiJustify
	}
	return AlignNone
}

// Jc returns the w:jc value for the alignment, or "" for AlignNone.
func (a Alignment) Jc() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "both"
	case AlignDistribute:
		return "distribute"
	case AlignThaiJustify:
		return "thaiDistribute"
	}
	return ""
}

// ParseAlignmentName maps a user-facing alignment name ("left", "center",
// "right", "justify", "distribute", "thai_justify") to an Alignment.
func ParseAlignmentName(name string) (Alignment, bool) {
	switch Alignment(name) {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify, AlignDistribute, AlignThaiJustify:
		return Alignment(name), true
	}
	return AlignNone, false
}
