package layout

import (
	"fmt"
	"strings"

	"github.com/ByLCY/labelsheet/symbol"
)

// Build 根据标签内容、数量与纸张生成完整排版结果。
// 条码文本只编码一次；缩放结果按单元格宽度复用（同一纸张下所有单元格等宽）。
func Build(content LabelContent, qty int, paper PaperConfig, opts BuildOptions) (*Plan, error) {
	pages, err := PlanSheets(qty, paper)
	if err != nil {
		return nil, err
	}

	sym := opts.Symbology
	if sym == nil {
		sym = symbol.Simplified{}
	}
	pattern := sym.Encode(content.BarcodeText)

	scaled := map[float64]Scaled{}
	for p := range pages {
		cells := pages[p].Cells
		for i := range cells {
			s, ok := scaled[cells[i].Width]
			if !ok {
				s = Scale(pattern, cells[i].Width-2*opts.MarginPt)
				scaled[cells[i].Width] = s
			}
			cells[i].Pattern = pattern
			cells[i].Barcode = s
			cells[i].Content = content
		}
	}

	return &Plan{
		Paper:     paper,
		Quantity:  qty,
		Symbology: sym.Name(),
		MarginPt:  opts.MarginPt,
		Pages:     pages,
	}, nil
}

// BuildNamed 先按名称解析纸张再调用 Build。
func BuildNamed(content LabelContent, qty int, paperName string, papers PaperLookup, opts BuildOptions) (*Plan, error) {
	if qty < 1 {
		return nil, newError(KindInvalidQuantity, fmt.Sprintf("标签数量必须大于 0，实际为 %d", qty))
	}
	name := strings.TrimSpace(paperName)
	if papers == nil || name == "" {
		return nil, newError(KindUnknownPaperType, fmt.Sprintf("未知的纸张类型 %q", paperName))
	}
	paper, ok := papers.Lookup(name)
	if !ok {
		return nil, newError(KindUnknownPaperType, fmt.Sprintf("未知的纸张类型 %q", paperName))
	}
	return Build(content, qty, paper, opts)
}

// Merge 将同一纸张的多个排版结果首尾相接，页码重新编号。
// 每个计划从新页开始，不会把不同内容拼到同一页。
func Merge(plans ...*Plan) (*Plan, error) {
	var out *Plan
	for _, p := range plans {
		if p == nil {
			continue
		}
		if out == nil {
			out = &Plan{Paper: p.Paper, Symbology: p.Symbology, MarginPt: p.MarginPt}
		} else if p.Paper != out.Paper {
			return nil, newError(KindPaperMismatch, fmt.Sprintf("无法合并不同纸张：%q 与 %q", out.Paper.Name, p.Paper.Name))
		} else if p.MarginPt != out.MarginPt {
			return nil, newError(KindPaperMismatch, fmt.Sprintf("无法合并不同内边距：%gpt 与 %gpt", out.MarginPt, p.MarginPt))
		}
		shared := &out.Paper
		for _, pg := range p.Pages {
			pg.Index = len(out.Pages)
			pg.Paper = shared
			out.Pages = append(out.Pages, pg)
		}
		out.Quantity += p.Quantity
	}
	if out == nil {
		return nil, newError(KindInvalidQuantity, "没有可合并的排版结果")
	}
	return out, nil
}
