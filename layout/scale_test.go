package layout

import (
	"strings"
	"testing"

	"github.com/ByLCY/labelsheet/symbol"
)

func TestWidthRatioTiers(t *testing.T) {
	tests := []struct {
		width float64
		want  float64
	}{
		{200, 0.85}, {150.5, 0.85}, {150, 0.75}, {101, 0.75}, {100, 0.65}, {50, 0.65}, {0, 0.65},
	}
	for _, tt := range tests {
		if got := widthRatio(tt.width); got != tt.want {
			t.Fatalf("widthRatio(%g) = %g, want %g", tt.width, got, tt.want)
		}
	}
}

// TestScaleTruncatesToPrefix 50pt → 0.65 档 → 目标 32.5pt，100 模块只保留前 32 个。
func TestScaleTruncatesToPrefix(t *testing.T) {
	pattern := symbol.Pattern(strings.Repeat("1100101", 15)[:100])
	got := Scale(pattern, 50)
	if got.ModuleWidthPt != 1 {
		t.Fatalf("module width = %g, want 1", got.ModuleWidthPt)
	}
	if got.Pattern.Len() != 32 {
		t.Fatalf("rendered length = %d, want 32", got.Pattern.Len())
	}
	if got.Pattern != pattern[:32] {
		t.Fatalf("rendered pattern is not the 32-module prefix")
	}
	if !got.Truncated {
		t.Fatalf("expected Truncated flag")
	}
	if got.TargetWidthPt != 32.5 {
		t.Fatalf("target width = %g, want 32.5", got.TargetWidthPt)
	}
}

func TestScaleClampsModuleWidth(t *testing.T) {
	short := symbol.Encode("") // 35 modules
	got := Scale(short, 198.4)
	// 198.4*0.85 = 168.64 → 168.64/35 ≈ 4.8 → clamp 2
	if got.ModuleWidthPt != 2 {
		t.Fatalf("module width = %g, want 2", got.ModuleWidthPt)
	}
	if got.Truncated || got.Pattern != short {
		t.Fatalf("pattern should fit untouched")
	}
	if got.WidthPt() != 70 {
		t.Fatalf("rendered width = %g, want 70", got.WidthPt())
	}
}

func TestScaleFitsWithoutTruncation(t *testing.T) {
	p := symbol.Encode("123456789012") // 11 + 13*11 + 13 = 167
	got := Scale(p, 198.4)
	if got.ModuleWidthPt != 1 {
		t.Fatalf("module width = %g, want 1", got.ModuleWidthPt)
	}
	if got.Pattern != p || got.Truncated {
		t.Fatalf("167 modules should fit in 168.64pt")
	}
}

func TestScaleNonPositiveWidth(t *testing.T) {
	got := Scale(symbol.Encode("A"), -4)
	if got.ModuleWidthPt != 1 {
		t.Fatalf("module width = %g, want 1", got.ModuleWidthPt)
	}
	if got.Pattern.Len() != 0 || !got.Truncated {
		t.Fatalf("negative width should truncate everything, got %d modules", got.Pattern.Len())
	}
}
