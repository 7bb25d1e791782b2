package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Style 选择内置字重。
type Style string

const (
	Regular Style = "regular"
	Bold    Style = "bold"
)

// Load 返回内置字体的 TTF 字节，name 可写为 "embed:bold" 或直接 "bold".
func Load(name string) ([]byte, error) {
	name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "embed:")))
	switch Style(name) {
	case Regular, "":
		return goregular.TTF, nil
	case Bold:
		return gobold.TTF, nil
	}
	return nil, fmt.Errorf("未知的内置字体 %q", name)
}
