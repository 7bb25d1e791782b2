package layout

// 该文件定义纸张配置、标签内容与排版结果，供布局计算、渲染与调试 JSON 共用。
// 所有长度单位均为 pt。

import (
	"fmt"
	"math"

	"github.com/ByLCY/labelsheet/symbol"
)

// PaperConfig 描述一种整张标签纸的几何参数。构造后不再修改。
type PaperConfig struct {
	Name     string  `json:"name"`
	WidthPt  float64 `json:"widthPt"`
	HeightPt float64 `json:"heightPt"`
	Columns  int     `json:"columns"`
	Rows     int     `json:"rows"`
}

// PaperMmToPt 是纸张目录使用的 mm→pt 系数，与 MmToPt 的末位不同。
// 内置纸张依赖它得到与既有打印结果一致的尺寸（A4 宽 595.2765pt）。
const PaperMmToPt = 2.83465

// PaperFromMM 以毫米声明纸张尺寸并按 PaperMmToPt 换算为 pt。
func PaperFromMM(name string, widthMM, heightMM float64, columns, rows int) PaperConfig {
	return PaperConfig{
		Name:     name,
		WidthPt:  widthMM * PaperMmToPt,
		HeightPt: heightMM * PaperMmToPt,
		Columns:  columns,
		Rows:     rows,
	}
}

func (p PaperConfig) LabelWidthPt() float64  { return p.WidthPt / float64(p.Columns) }
func (p PaperConfig) LabelHeightPt() float64 { return p.HeightPt / float64(p.Rows) }

// LabelsPerPage 返回每页标签数（columns * rows）。
func (p PaperConfig) LabelsPerPage() int { return p.Columns * p.Rows }

// Validate 检查 columns/rows ≥ 1 且宽高为有限正数。
func (p PaperConfig) Validate() error {
	if p.Columns < 1 || p.Rows < 1 {
		return newError(KindInvalidPaper, fmt.Sprintf("纸张 %q 的行列数必须 ≥ 1（columns=%d rows=%d）", p.Name, p.Columns, p.Rows))
	}
	if !(p.WidthPt > 0) || !(p.HeightPt > 0) {
		return newError(KindInvalidPaper, fmt.Sprintf("纸张 %q 的尺寸必须为正（%gpt x %gpt）", p.Name, p.WidthPt, p.HeightPt))
	}
	if math.IsInf(p.WidthPt, 0) || math.IsInf(p.HeightPt, 0) {
		return newError(KindInvalidPaper, fmt.Sprintf("纸张 %q 的尺寸必须为有限值（%gpt x %gpt）", p.Name, p.WidthPt, p.HeightPt))
	}
	return nil
}

// LabelContent 是一次打印请求中每张标签共享的内容。
// 可选字段为空字符串时表示不打印该项。
type LabelContent struct {
	BarcodeText      string `json:"barcodeText"`
	BusinessName     string `json:"businessName,omitempty"`
	ProductName      string `json:"productName,omitempty"`
	Price            string `json:"price,omitempty"`
	PrintedTimestamp string `json:"printedTimestamp,omitempty"`
}

// Plan 是一次打印请求的完整排版结果，按 Index 升序排列页面。
// MarginPt 是组装时使用的标签内边距，渲染器据此确定条码的可用宽度。
type Plan struct {
	Paper     PaperConfig  `json:"paper"`
	Quantity  int          `json:"quantity"`
	Symbology string       `json:"symbology"`
	MarginPt  float64      `json:"marginPt"`
	Pages     []PageLayout `json:"pages"`
}

// Labels 返回所有页面的单元格总数。
func (p *Plan) Labels() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, pg := range p.Pages {
		n += len(pg.Cells)
	}
	return n
}

// PageLayout 保存一页上的标签单元格，单元格按行优先排列。
type PageLayout struct {
	Index int          `json:"index"`
	Paper *PaperConfig `json:"-"`
	Cells []LabelCell  `json:"cells"`
}

// LabelCell 是一张标签在页面上的矩形区域以及要绘制的条码与内容。
type LabelCell struct {
	Row     int            `json:"row"`
	Col     int            `json:"col"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Width   float64        `json:"width"`
	Height  float64        `json:"height"`
	Pattern symbol.Pattern `json:"pattern,omitempty"`
	Barcode Scaled         `json:"barcode"`
	Content LabelContent   `json:"content"`
}
