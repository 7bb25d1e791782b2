package layout

import (
	"math"

	"github.com/ByLCY/labelsheet/symbol"
)

// 模块宽度限制在 [1, 2] 个设备单位内，对应打印分辨率约束。
const (
	minModuleWidth = 1
	maxModuleWidth = 2
)

// Scaled 是条码在给定可用宽度下的缩放结果。
type Scaled struct {
	ModuleWidthPt float64        `json:"moduleWidthPt"`
	TargetWidthPt float64        `json:"targetWidthPt"`
	Pattern       symbol.Pattern `json:"pattern"`
	Truncated     bool           `json:"truncated,omitempty"`
}

// WidthPt 返回绘制后的条码总宽。
func (s Scaled) WidthPt() float64 { return s.ModuleWidthPt * float64(s.Pattern.Len()) }

// widthRatio 按可用宽度分档：>150 取 0.85，>100 取 0.75，否则 0.65。
func widthRatio(availableWidthPt float64) float64 {
	switch {
	case availableWidthPt > 150:
		return 0.85
	case availableWidthPt > 100:
		return 0.75
	default:
		return 0.65
	}
}

// Scale 计算模块宽度，并在放不下时截断为前 maxModules 个模块。
// 截断会静默丢弃终止符或尾部数据，不返回错误。
func Scale(pattern symbol.Pattern, availableWidthPt float64) Scaled {
	target := availableWidthPt * widthRatio(availableWidthPt)

	module := float64(maxModuleWidth)
	if n := pattern.Len(); n > 0 {
		module = math.Floor(target / float64(n))
	}
	module = math.Max(minModuleWidth, math.Min(maxModuleWidth, module))

	maxModules := int(math.Floor(target / module))
	out := Scaled{ModuleWidthPt: module, TargetWidthPt: target, Pattern: pattern}
	if pattern.Len() > maxModules {
		out.Pattern = pattern.Truncate(maxModules)
		out.Truncated = true
	}
	return out
}
