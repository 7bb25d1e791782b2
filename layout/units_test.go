package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 72, 210, 297, 1000}
	for _, pt := range samples {
		back := Length{Value: pt, Unit: UnitPT}.ToMM() * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%g back=%g", pt, back)
		}
	}
}

func TestLengthConversions(t *testing.T) {
	if got := (Length{Value: 1, Unit: UnitIN}).ToMM(); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("1in 转 mm 期望 25.4，实际 %g", got)
	}
	if got := (Length{Value: 2.54, Unit: UnitCM}).ToMM(); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("2.54cm 转 mm 期望 25.4，实际 %g", got)
	}
	// A4 宽度约 595pt
	if got := (Length{Value: 210, Unit: UnitMM}).ToPT(); math.Abs(got-595.28) > 0.01 {
		t.Fatalf("210mm 转 pt 期望约 595.28，实际 %g", got)
	}
	if got := (Length{Value: 8, Unit: UnitPT}).ToPT(); got != 8 {
		t.Fatalf("8pt 转 pt 期望 8，实际 %g", got)
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want Length
	}{
		{"210mm", Length{Value: 210, Unit: UnitMM}},
		{" 42.4MM ", Length{Value: 42.4, Unit: UnitMM}},
		{"8pt", Length{Value: 8, Unit: UnitPT}},
		{"1in", Length{Value: 1, Unit: UnitIN}},
		{"3cm", Length{Value: 3, Unit: UnitCM}},
		{"12", Length{Value: 12, Unit: UnitNone}},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.in)
		if err != nil {
			t.Fatalf("ParseLength(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLength(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLength("wide"); err == nil {
		t.Fatalf("expected error for non-numeric length")
	}
}
