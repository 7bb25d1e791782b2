package renderer

import "github.com/ByLCY/labelsheet/layout"

// Renderer 将排版计划输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(plan *layout.Plan) ([]byte, error)
}
