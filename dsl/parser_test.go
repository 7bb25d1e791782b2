package dsl_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/labelsheet/dsl"
)

const sampleCatalog = `
// 常用 A4 标签纸
paper "A4 21up 70mm x 42.4mm" size 210mm x 297mm grid 3 x 7
# 每页 44 张
paper "A4 44up 48.5mm x 25.4mm" size 210mm x 297mm grid 4 x 11; paper "Letter 30up" size 8.5in x 11in grid 3 x 10

/* 多行注释
   仍然允许 */
paper "Roll 1up" size 144pt x 72pt grid 1 x 1
`

func TestParseCatalog(t *testing.T) {
	f, err := dsl.ParseString(sampleCatalog)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(f.Papers) != 4 {
		t.Fatalf("expected 4 papers, got %d", len(f.Papers))
	}

	first := f.Papers[0]
	if string(first.Name) != "A4 21up 70mm x 42.4mm" {
		t.Fatalf("unexpected name %q", first.Name)
	}
	if first.Width != "210mm" || first.Height != "297mm" {
		t.Fatalf("unexpected size %s x %s", first.Width, first.Height)
	}
	if first.Columns != 3 || first.Rows != 7 {
		t.Fatalf("unexpected grid %d x %d", first.Columns, first.Rows)
	}

	letter := f.Papers[2]
	if letter.Width != "8.5in" || letter.Columns != 3 || letter.Rows != 10 {
		t.Fatalf("unexpected letter entry: %+v", letter)
	}
	if f.Papers[3].Width != "144pt" {
		t.Fatalf("unexpected roll width %s", f.Papers[3].Width)
	}
	if f.Papers[1].Pos.Line != 5 {
		t.Fatalf("expected second entry on line 5, got %d", f.Papers[1].Pos.Line)
	}
}

func TestParseEmptyCatalog(t *testing.T) {
	f, err := dsl.ParseString("\n// nothing here\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(f.Papers) != 0 {
		t.Fatalf("expected no papers, got %d", len(f.Papers))
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		`paper A4 size 210mm x 297mm grid 3 x 7`,
		`paper "A4" size 210mm x 297mm grid 3`,
		`paper "A4" size 210mm grid 3 x 7`,
		`label "A4" size 210mm x 297mm grid 3 x 7`,
	}
	for _, src := range bad {
		if _, err := dsl.Parse("bad.catalog", strings.NewReader(src)); err == nil {
			t.Fatalf("expected parse error for %q", src)
		}
	}
}
