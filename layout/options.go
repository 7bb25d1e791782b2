package layout

import "github.com/ByLCY/labelsheet/symbol"

// BuildOptions 配置组装阶段的依赖。
type BuildOptions struct {
	// Symbology 为空时使用默认的简化编码。
	Symbology symbol.Symbology
	// MarginPt 是标签四周的内边距，缩放条码时可用宽度为 cell.Width - 2*MarginPt。
	MarginPt float64
}

// PaperLookup resolves a paper configuration by catalog name.
type PaperLookup interface {
	Lookup(name string) (PaperConfig, bool)
}
