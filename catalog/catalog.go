// Package catalog holds the named sheet geometries labels can be printed on.
package catalog

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ByLCY/labelsheet/dsl"
	"github.com/ByLCY/labelsheet/layout"
)

// builtin 是内置的 A4 标签纸目录，按每页标签数递增排列。只读。
var builtin = []layout.PaperConfig{
	layout.PaperFromMM("A4 21up 70mm x 42.4mm", 210, 297, 3, 7),
	layout.PaperFromMM("A4 24up 70mm x 37mm", 210, 297, 3, 8),
	layout.PaperFromMM("A4 30up 70mm x 299.7mm", 210, 297, 3, 10),
	layout.PaperFromMM("A4 44up 48.5mm x 25.4mm", 210, 297, 4, 11),
	layout.PaperFromMM("A4 56up 52.5mm x 21mm", 210, 297, 4, 14),
	layout.PaperFromMM("A4 65up 38mm x 21mm", 210, 297, 5, 13),
	layout.PaperFromMM("A4 68up 48mm x 16.6mm", 210, 297, 4, 17),
}

// Catalog is an immutable, ordered set of papers keyed by name.
type Catalog struct {
	papers []layout.PaperConfig
	index  map[string]int
}

var _ layout.PaperLookup = (*Catalog)(nil)

// New 校验并收录 papers；同名条目以后出现者为准，但保留首次出现的位置。
func New(papers ...layout.PaperConfig) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(papers))}
	for _, p := range papers {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("catalog: 纸张名称不能为空")
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if i, ok := c.index[p.Name]; ok {
			c.papers[i] = p
			continue
		}
		c.index[p.Name] = len(c.papers)
		c.papers = append(c.papers, p)
	}
	return c, nil
}

// Builtin returns a copy of the built-in paper table.
func Builtin() []layout.PaperConfig {
	return append([]layout.PaperConfig(nil), builtin...)
}

// Default returns a catalog of the built-in papers.
func Default() *Catalog {
	c, err := New(builtin...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup implements layout.PaperLookup.
func (c *Catalog) Lookup(name string) (layout.PaperConfig, bool) {
	if c == nil {
		return layout.PaperConfig{}, false
	}
	i, ok := c.index[strings.TrimSpace(name)]
	if !ok {
		return layout.PaperConfig{}, false
	}
	return c.papers[i], true
}

// Names lists paper names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.papers))
	for i, p := range c.papers {
		names[i] = p.Name
	}
	return names
}

// Papers returns a copy of the entries in catalog order.
func (c *Catalog) Papers() []layout.PaperConfig {
	return append([]layout.PaperConfig(nil), c.papers...)
}

func (c *Catalog) Len() int { return len(c.papers) }

// Extend returns a new catalog with extra appended; entries with an existing
// name replace it.
func (c *Catalog) Extend(extra ...layout.PaperConfig) (*Catalog, error) {
	all := append(c.Papers(), extra...)
	return New(all...)
}

// BySheetCapacity 返回按每页标签数排序的名称，用于 CLI 列表展示。
func (c *Catalog) BySheetCapacity() []string {
	papers := c.Papers()
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].LabelsPerPage() < papers[j].LabelsPerPage()
	})
	names := make([]string, len(papers))
	for i, p := range papers {
		names[i] = p.Name
	}
	return names
}

// Load 解析目录文件，返回其中声明的纸张。
func Load(name string, r io.Reader) ([]layout.PaperConfig, error) {
	f, err := dsl.Parse(name, r)
	if err != nil {
		return nil, fmt.Errorf("catalog: 解析 %s 失败: %w", name, err)
	}
	papers := make([]layout.PaperConfig, 0, len(f.Papers))
	for _, entry := range f.Papers {
		p, err := fromEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s:%d: %w", name, entry.Pos.Line, err)
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// LoadFile 读取目录文件，并在内置目录基础上扩展。
func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: 无法打开 %s: %w", path, err)
	}
	defer file.Close()

	papers, err := Load(path, file)
	if err != nil {
		return nil, err
	}
	return Default().Extend(papers...)
}

func fromEntry(entry *dsl.Paper) (layout.PaperConfig, error) {
	w, err := layout.ParseLength(entry.Width)
	if err != nil {
		return layout.PaperConfig{}, fmt.Errorf("宽度 %q 无效: %w", entry.Width, err)
	}
	h, err := layout.ParseLength(entry.Height)
	if err != nil {
		return layout.PaperConfig{}, fmt.Errorf("高度 %q 无效: %w", entry.Height, err)
	}
	p := layout.PaperConfig{
		Name:     string(entry.Name),
		WidthPt:  w.ToPT(),
		HeightPt: h.ToPT(),
		Columns:  entry.Columns,
		Rows:     entry.Rows,
	}
	if err := p.Validate(); err != nil {
		return layout.PaperConfig{}, err
	}
	return p, nil
}
