package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// debugSummary 汇总排版结果中便于人工核对的派生值。
type debugSummary struct {
	Labels        int     `json:"labels"`
	Pages         int     `json:"pages"`
	LabelsPerPage int     `json:"labelsPerPage"`
	LabelWidthPt  float64 `json:"labelWidthPt"`
	LabelHeightPt float64 `json:"labelHeightPt"`
	Modules       int     `json:"modules"`
	Truncated     bool    `json:"truncated"`
}

type debugDocument struct {
	*Plan
	Summary debugSummary `json:"summary"`
}

func summarize(plan *Plan) debugSummary {
	s := debugSummary{
		Labels:        plan.Labels(),
		Pages:         len(plan.Pages),
		LabelsPerPage: plan.Paper.LabelsPerPage(),
	}
	if s.LabelsPerPage > 0 {
		s.LabelWidthPt = plan.Paper.LabelWidthPt()
		s.LabelHeightPt = plan.Paper.LabelHeightPt()
	}
	for _, pg := range plan.Pages {
		for _, c := range pg.Cells {
			s.Modules = max(s.Modules, c.Pattern.Len())
			s.Truncated = s.Truncated || c.Barcode.Truncated
		}
	}
	return s
}

// EncodeDebugJSON 将排版结果连同汇总信息以缩进 JSON 写入 w。
func EncodeDebugJSON(w io.Writer, plan *Plan) error {
	if plan == nil {
		return fmt.Errorf("排版结果为空")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(debugDocument{Plan: plan, Summary: summarize(plan)})
}

// WriteDebugJSON 将排版结果输出为 JSON 文件，便于调试或可视化。plan 为 nil 时不写文件。
func WriteDebugJSON(plan *Plan, path string) error {
	if plan == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeDebugJSON(f, plan); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
