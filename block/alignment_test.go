package block

import "testing"

func TestParseAlignment(t *testing.T) {
	tests := []struct {
		jc       string
		expected Alignment
	}{
		{"left", AlignLeft},
		{"start", AlignLeft},
		{"center", AlignCenter},
		{"right", AlignRight},
		{"end", AlignRight},
		{"both", AlignJustify},
		{"distribute", AlignDistribute},
		{"thaiDistribute", AlignThaiJustify},
		{"", AlignNone},
		{"mediumKashida", AlignNone},
	}
	for _, tt := range tests {
		if got := ParseAlignment(tt.jc); got != tt.expected {
			t.Errorf("ParseAlignment(%q) = %q, want %q", tt.jc, got, tt.expected)
		}
	}
}

func TestAlignment_Jc_RoundTrip(t *testing.T) {
	for _, a := range []Alignment{AlignLeft, AlignCenter, AlignRight, AlignJustify, AlignDistribute, AlignThaiJustify} {
		if got := ParseAlignment(a.Jc()); got != a {
			t.Errorf("ParseAlignment(%q.Jc()) = %q, want %q", a, got, a)
		}
	}
	if AlignNone.Jc() != "" {
		t.Error("AlignNone should map to no jc value")
	}
}

func TestParseAlignmentName(t *testing.T) {
	if a, ok := ParseAlignmentName("justify"); !ok || a != AlignJustify {
		t.Errorf("ParseAlignmentName(justify) = (%q, %v)", a, ok)
	}
	if _, ok := ParseAlignmentName("middle"); ok {
		t.Error("unknown names should not parse")
	}
}
