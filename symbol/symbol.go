// Package symbol encodes barcode text into a module pattern.
//
// The default symbology is a simplified Code128-like scheme: a fixed start
// code, one table entry per character, a weighted mod-103 checksum and a fixed
// stop code. It does not switch code sets and maps every character outside
// [0-9A-Za-z] to value 0, so its output is not a conformant Code128 symbol.
package symbol

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// Pattern 是按顺序排列的模块序列，'1' 表示条，'0' 表示空。
type Pattern string

// Len 返回模块数。
func (p Pattern) Len() int { return len(p) }

// Bar 报告第 i 个模块是否为条。
func (p Pattern) Bar(i int) bool { return p[i] == '1' }

// Truncate 保留前 n 个模块；n 不小于长度时原样返回。
func (p Pattern) Truncate(n int) Pattern {
	if n < 0 {
		n = 0
	}
	if n >= len(p) {
		return p
	}
	return p[:n]
}

// Run is a maximal stretch of equal modules.
type Run struct {
	Bar    bool `json:"bar"`
	Width  int  `json:"width"`
	Offset int  `json:"offset"`
}

// Runs 将模块序列压缩为条/空游程，渲染时每个条只需绘制一个矩形。
func (p Pattern) Runs() []Run {
	var runs []Run
	for i := 0; i < len(p); {
		j := i + 1
		for j < len(p) && p[j] == p[i] {
			j++
		}
		runs = append(runs, Run{Bar: p[i] == '1', Width: j - i, Offset: i})
		i = j
	}
	return runs
}

// Symbology converts text into a pattern. Implementations must be total and
// deterministic.
type Symbology interface {
	Name() string
	Encode(text string) Pattern
}

// Simplified is the default symbology.
type Simplified struct{}

var _ Symbology = Simplified{}

func (Simplified) Name() string { return "simplified" }

// Encode 生成 起始符 + 数据 + 校验 + 终止符。按 UTF-16 码元逐个编码并加权（从 1 开始），
// BMP 以外的字符占两个码元，各自映射为 0。
func (Simplified) Encode(text string) Pattern {
	var b strings.Builder
	b.Grow(len(startPattern) + 11*(len(text)+1) + len(stopPattern))
	b.WriteString(startPattern)

	checksum := startValue
	for i, u := range utf16.Encode([]rune(text)) {
		v := symbolValue(rune(u))
		b.WriteString(lookup(v))
		checksum += v * (i + 1)
	}
	b.WriteString(lookup(checksum % checksumMod))
	b.WriteString(stopPattern)
	return Pattern(b.String())
}

// Encode 使用默认符号体系编码 text。
func Encode(text string) Pattern { return Simplified{}.Encode(text) }

// Lookup 按名称返回符号体系；空名称返回默认实现。
func Lookup(name string) (Symbology, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "simplified", "code128-simplified":
		return Simplified{}, nil
	default:
		return nil, fmt.Errorf("symbol: 未知的符号体系 %q", name)
	}
}
