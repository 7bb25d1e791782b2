package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/labelsheet/fonts"
	"github.com/ByLCY/labelsheet/layout"
	"github.com/ByLCY/labelsheet/renderer"
)

// 字号分母，依次为 商家名/商品名/价格/条码文字/打印时间。
const (
	businessDivisor = 15
	productDivisor  = 18
	priceDivisor    = 18
	barcodeDivisor  = 20
	dateDivisor     = 22

	minFontSizePt  = 6
	barHeightRatio = 0.25
	firstBaseline  = 8
	lineLeading    = 1.2
)

// Renderer draws label plans via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options

	fontMu       sync.Mutex
	fontFamilies map[fonts.Style]*canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer. 标签内边距取自 Plan.MarginPt。
type Options struct {
	Meta Meta
}

// Meta 写入 PDF 文档信息。
type Meta struct {
	Title    string
	Subject  string
	Author   string
	Creator  string
	Keywords []string
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{
		opts:         opts,
		fontFamilies: map[fonts.Style]*canvas.FontFamily{},
	}
}

// Render renders the plan into a PDF byte slice, one PDF page per plan page.
func (r *Renderer) Render(plan *layout.Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("排版结果为空")
	}
	if len(plan.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	first := pagePaper(plan, 0)
	var buf bytes.Buffer
	writer := pdf.New(&buf, toMm(first.WidthPt), toMm(first.HeightPt), nil)
	r.applyMeta(writer)
	for i, page := range plan.Pages {
		paper := pagePaper(plan, i)
		w, h := toMm(paper.WidthPt), toMm(paper.HeightPt)
		if i > 0 {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		for _, cell := range page.Cells {
			if err := r.drawCell(ctx, cell, plan.MarginPt); err != nil {
				return nil, fmt.Errorf("绘制第 %d 页 (%d,%d) 失败: %w", page.Index, cell.Row, cell.Col, err)
			}
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func pagePaper(plan *layout.Plan, i int) layout.PaperConfig {
	if p := plan.Pages[i].Paper; p != nil {
		return *p
	}
	return plan.Paper
}

func (r *Renderer) applyMeta(writer *pdf.PDF) {
	meta := r.opts.Meta
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

func (r *Renderer) drawCell(ctx *canvas.Context, cell layout.LabelCell, marginPt float64) error {
	items := composeLabel(cell, marginPt)
	for _, it := range items.captions {
		face, err := r.fontFace(it.style, it.sizePt)
		if err != nil {
			return err
		}
		line := canvas.NewTextLine(face, it.text, canvas.Center)
		ctx.DrawText(toMm(it.centerXPt), toMm(it.baselinePt), line)
	}

	ctx.SetFillColor(canvas.Black)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	for _, bar := range items.bars {
		ctx.DrawPath(toMm(bar.xPt), toMm(bar.yPt), canvas.Rectangle(toMm(bar.widthPt), toMm(bar.heightPt)))
	}
	return nil
}

type caption struct {
	text       string
	style      fonts.Style
	sizePt     float64
	centerXPt  float64
	baselinePt float64
}

type bar struct {
	xPt, yPt, widthPt, heightPt float64
}

type labelItems struct {
	captions []caption
	bars     []bar
}

// composeLabel 计算单张标签内各元素的位置（pt，页面坐标）。marginPt 必须与组装时一致，
// 否则条码不会在内框中居中。
// 自上而下：商家名、商品名、价格、条码、条码文字、打印时间；空字段跳过。
func composeLabel(cell layout.LabelCell, marginPt float64) labelItems {
	innerX := cell.X + marginPt
	innerY := cell.Y + marginPt
	innerW := cell.Width - 2*marginPt
	innerH := cell.Height - 2*marginPt
	centerX := innerX + innerW/2

	var out labelItems
	cursor := innerY + firstBaseline
	add := func(text string, style fonts.Style, divisor float64) float64 {
		size := fontSizeFor(innerH, divisor)
		out.captions = append(out.captions, caption{
			text:       text,
			style:      style,
			sizePt:     size,
			centerXPt:  centerX,
			baselinePt: cursor,
		})
		return size * lineLeading
	}

	c := cell.Content
	if c.BusinessName != "" {
		cursor += add(c.BusinessName, fonts.Bold, businessDivisor) + 2
	}
	if c.ProductName != "" {
		cursor += add(c.ProductName, fonts.Bold, productDivisor) + 2
	}
	if c.Price != "" {
		cursor += add(c.Price, fonts.Bold, priceDivisor) - 2
	}

	barHeight := innerH * barHeightRatio
	sc := cell.Barcode
	startX := innerX + (innerW-sc.TargetWidthPt)/2
	for _, run := range sc.Pattern.Runs() {
		if !run.Bar {
			continue
		}
		out.bars = append(out.bars, bar{
			xPt:      startX + float64(run.Offset)*sc.ModuleWidthPt,
			yPt:      cursor,
			widthPt:  float64(run.Width) * sc.ModuleWidthPt,
			heightPt: barHeight,
		})
	}
	cursor += barHeight + 5

	cursor += add(c.BarcodeText, fonts.Regular, barcodeDivisor) + 5
	if c.PrintedTimestamp != "" {
		add(c.PrintedTimestamp, fonts.Regular, dateDivisor)
	}
	return out
}

// fontSizeFor 返回 max(6, floor(innerHeight/divisor*0.7))。
func fontSizeFor(innerHeightPt, divisor float64) float64 {
	return math.Max(minFontSizePt, math.Floor(innerHeightPt/divisor*0.7))
}

func (r *Renderer) fontFace(style fonts.Style, sizePt float64) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(style)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, canvas.Black, canvasStyle(style), canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(style fonts.Style) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.fontFamilies[style]; ok {
		return family, nil
	}
	data, err := fonts.Load(string(style))
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("labelsheet-" + string(style))
	if err := family.LoadFont(data, 0, canvasStyle(style)); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", style, err)
	}
	r.fontFamilies[style] = family
	return family, nil
}

func canvasStyle(style fonts.Style) canvas.FontStyle {
	if style == fonts.Bold {
		return canvas.FontBold
	}
	return canvas.FontRegular
}

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
