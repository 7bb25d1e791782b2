package symbol

import (
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeEmptyFixture(t *testing.T) {
	// 104 mod 103 = 1
	want := Pattern("11010010000" + "11001101100" + "1100011101011")
	if got := Encode(""); got != want {
		t.Fatalf("Encode(\"\") = %s, want %s", got, want)
	}
}

func TestEncodeFraming(t *testing.T) {
	for _, s := range []string{"", "0", "123456789012", "Hello World", "价格-¥", "a b\tc", "😀x"} {
		p := string(Encode(s))
		if !strings.HasPrefix(p, startPattern) {
			t.Fatalf("%q: missing start code: %s", s, p)
		}
		if !strings.HasSuffix(p, stopPattern) {
			t.Fatalf("%q: missing stop code: %s", s, p)
		}
		wantLen := len(startPattern) + 11*(len(utf16.Encode([]rune(s)))+1) + len(stopPattern)
		if len(p) != wantLen {
			t.Fatalf("%q: length = %d, want %d", s, len(p), wantLen)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	for _, s := range []string{"", "X", "123456789012", "mixed Case 42!"} {
		a, b := Encode(s), Encode(s)
		if a != b {
			t.Fatalf("%q: encode not deterministic", s)
		}
	}
}

func TestEncodeCharacterMapping(t *testing.T) {
	zero := string(Encode("0"))
	upper := string(Encode("A"))

	if zero[:11] != upper[:11] || zero[len(zero)-13:] != upper[len(upper)-13:] {
		t.Fatalf("framing differs between 0 and A")
	}
	// data block: table[16] vs table[17]
	if got := zero[11:22]; got != symbolTable[16] {
		t.Fatalf("data block for 0 = %s, want %s", got, symbolTable[16])
	}
	if got := upper[11:22]; got != symbolTable[17] {
		t.Fatalf("data block for A = %s, want %s", got, symbolTable[17])
	}
	// checksum: (104+16)%103=17, (104+17)%103=18
	if got := zero[22:33]; got != symbolTable[17] {
		t.Fatalf("checksum block for 0 = %s, want %s", got, symbolTable[17])
	}
	if got := upper[22:33]; got != symbolTable[18] {
		t.Fatalf("checksum block for A = %s, want %s", got, symbolTable[18])
	}
}

func TestSymbolValue(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'0', 16}, {'9', 25}, {'A', 17}, {'Z', 42}, {'a', 49}, {'z', 74},
		{' ', 0}, {'-', 0}, {'é', 0}, {'字', 0},
	}
	for _, tt := range tests {
		if got := symbolValue(tt.r); got != tt.want {
			t.Fatalf("symbolValue(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestUnmappedCharactersUseEntryZero(t *testing.T) {
	p := string(Encode("-"))
	if got := p[11:22]; got != symbolTable[0] {
		t.Fatalf("data block = %s, want table[0]", got)
	}
	// value 0 contributes nothing: checksum stays 104 mod 103
	if got := p[22:33]; got != symbolTable[1] {
		t.Fatalf("checksum block = %s, want table[1]", got)
	}
}

func TestChecksumWeightsByPosition(t *testing.T) {
	// "12": 104 + 17*1 + 18*2 = 157 -> 54
	p := string(Encode("12"))
	if got := p[33:44]; got != symbolTable[54] {
		t.Fatalf("checksum block = %s, want table[54]", got)
	}
}

func TestEncodeCountsUTF16Units(t *testing.T) {
	// U+1F600 is a surrogate pair: two unmapped data blocks.
	emoji := string(Encode("😀"))
	if len(emoji) != 57 {
		t.Fatalf("len = %d, want 57", len(emoji))
	}
	for _, off := range []int{11, 22} {
		if got := emoji[off : off+11]; got != symbolTable[0] {
			t.Fatalf("block at %d = %s, want table[0]", off, got)
		}
	}

	// "😀1": 104 + 0*1 + 0*2 + 17*3 = 155 -> 52
	p := string(Encode("😀1"))
	if got := p[44:55]; got != symbolTable[52] {
		t.Fatalf("checksum block = %s, want table[52]", got)
	}

	// BMP characters outside ASCII stay one unit.
	if got := Encode("é").Len(); got != 46 {
		t.Fatalf("len(é) = %d, want 46", got)
	}
}

func TestLookupOutOfRange(t *testing.T) {
	if lookup(-1) != symbolTable[0] || lookup(107) != symbolTable[0] {
		t.Fatalf("out-of-range lookup should fall back to entry 0")
	}
	if lookup(106) != symbolTable[106] {
		t.Fatalf("lookup(106) mismatch")
	}
}

func TestPatternRuns(t *testing.T) {
	got := Pattern("1101000").Runs()
	want := []Run{
		{Bar: true, Width: 2, Offset: 0},
		{Bar: false, Width: 1, Offset: 2},
		{Bar: true, Width: 1, Offset: 3},
		{Bar: false, Width: 3, Offset: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
	if runs := Pattern("").Runs(); len(runs) != 0 {
		t.Fatalf("empty pattern should have no runs, got %v", runs)
	}
}

func TestPatternTruncate(t *testing.T) {
	p := Encode("123456789012")
	if got := p.Truncate(32); got != p[:32] {
		t.Fatalf("truncate should keep the prefix")
	}
	if got := p.Truncate(p.Len() + 5); got != p {
		t.Fatalf("truncate beyond length should be a no-op")
	}
	if got := p.Truncate(-1); got != "" {
		t.Fatalf("negative truncate should be empty, got %q", got)
	}
}

func TestLookupSymbology(t *testing.T) {
	for _, name := range []string{"", "simplified", " Simplified "} {
		sym, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if sym.Name() != "simplified" {
			t.Fatalf("Lookup(%q) = %s", name, sym.Name())
		}
	}
	if _, err := Lookup("code128"); err == nil {
		t.Fatalf("expected error for unknown symbology")
	}
}

func TestCache(t *testing.T) {
	c := NewCache(nil)
	a := c.Encode("ABC")
	b := c.Encode("ABC")
	if a != b || a != Encode("ABC") {
		t.Fatalf("cached pattern mismatch")
	}
	c.Encode("DEF")
	if c.Len() != 2 {
		t.Fatalf("cache len = %d, want 2", c.Len())
	}
	if c.Name() != "simplified" {
		t.Fatalf("cache name = %s", c.Name())
	}
}
