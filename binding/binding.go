// Package binding fills label text templates from request data.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ByLCY/labelsheet/layout"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Templates 是标签各字段的文本模板，可包含 ${path.to.value} 占位符。
type Templates struct {
	Barcode  string `yaml:"barcode"`
	Business string `yaml:"business"`
	Product  string `yaml:"product"`
	Price    string `yaml:"price"`
}

// Content 用 data 展开模板，得到一次打印请求的标签内容。
// 打印时间由调用方格式化后填入，这里不处理。
func Content(t Templates, data any) layout.LabelContent {
	return layout.LabelContent{
		BarcodeText:  strings.TrimSpace(Interpolate(t.Barcode, data)),
		BusinessName: strings.TrimSpace(Interpolate(t.Business, data)),
		ProductName:  strings.TrimSpace(Interpolate(t.Product, data)),
		Price:        strings.TrimSpace(Interpolate(t.Price, data)),
	}
}

// Unresolved 报告 text 中是否仍残留 ${path} 占位符。
func Unresolved(text string) bool { return exprPattern.MatchString(text) }

// DropUnresolved 清空仍含占位符的可选字段；条码字段由调用方校验。
func DropUnresolved(c layout.LabelContent) layout.LabelContent {
	for _, s := range []*string{&c.BusinessName, &c.ProductName, &c.Price} {
		if Unresolved(*s) {
			*s = ""
		}
	}
	return c
}

// Interpolate 将文本中的 ${path} 替换为 data 中的值；路径不存在时保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := Lookup(data, path); ok && val != nil {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Lookup resolves a dotted path such as "items[0].sku" against decoded JSON
// or a spreadsheet row (map[string]string).
func Lookup(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			if current, ok = field(current, name); !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			if current, ok = element(current, idx); !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// splitSegment 拆分 "name[1][2]" 形式的路径片段。
func splitSegment(segment string) (string, []int, bool) {
	i := strings.IndexByte(segment, '[')
	if i == -1 {
		return segment, nil, true
	}
	name, rest := segment[:i], segment[i:]
	var indexes []int
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end == -1 {
			return "", nil, false
		}
		n, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, n)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

func field(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		v, ok := c[key]
		return v, ok
	case map[string]string:
		v, ok := c[key]
		return v, ok
	default:
		return nil, false
	}
}

func element(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	case []string:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
