package layout

import "fmt"

// PlanSheets 将 totalLabels 张标签按纸张分页，并计算每个单元格的位置。
// 返回的单元格尚未填充条码与内容。
func PlanSheets(totalLabels int, paper PaperConfig) ([]PageLayout, error) {
	if totalLabels < 1 {
		return nil, newError(KindInvalidQuantity, fmt.Sprintf("标签数量必须大于 0，实际为 %d", totalLabels))
	}
	if err := paper.Validate(); err != nil {
		return nil, err
	}

	perPage := paper.LabelsPerPage()
	totalPages := (totalLabels + perPage - 1) / perPage
	cellW, cellH := paper.LabelWidthPt(), paper.LabelHeightPt()
	shared := paper

	pages := make([]PageLayout, totalPages)
	for p := range pages {
		start := p * perPage
		end := min(start+perPage, totalLabels)
		cells := make([]LabelCell, end-start)
		for i := range cells {
			row, col := i/paper.Columns, i%paper.Columns
			cells[i] = LabelCell{
				Row:    row,
				Col:    col,
				X:      float64(col) * cellW,
				Y:      float64(row) * cellH,
				Width:  cellW,
				Height: cellH,
			}
		}
		pages[p] = PageLayout{Index: p, Paper: &shared, Cells: cells}
	}
	return pages, nil
}
