// Package batch reads multi-job print requests from spreadsheets.
//
// The first non-empty row of every sheet is a header; recognised columns are
// barcode, business, product, price and qty (case-insensitive). Each later
// row becomes one job.
package batch

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ByLCY/labelsheet/binding"
	"github.com/ByLCY/labelsheet/layout"
)

// DefaultTemplates 直接引用同名列。
var DefaultTemplates = binding.Templates{
	Barcode:  "${barcode}",
	Business: "${business}",
	Product:  "${product}",
	Price:    "${price}",
}

// Job 是表格中的一行打印请求。
type Job struct {
	Sheet   string
	Row     int
	Content layout.LabelContent
	Qty     int
}

// Read 解析 xlsx 内容。tmpl 中为空的字段回退到 DefaultTemplates。
func Read(r io.Reader, tmpl binding.Templates) ([]Job, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("batch: 无法读取表格: %w", err)
	}
	defer f.Close()

	tmpl = withDefaults(tmpl)
	var jobs []Job
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("batch: 读取工作表 %s 失败: %w", sheet, err)
		}
		sheetJobs, err := sheetJobs(sheet, rows, tmpl)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, sheetJobs...)
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("batch: 表格中没有可打印的行")
	}
	return jobs, nil
}

// ReadFile opens path and calls Read.
func ReadFile(path string, tmpl binding.Templates) ([]Job, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("batch: 无法打开 %s: %w", path, err)
	}
	defer file.Close()
	return Read(file, tmpl)
}

func sheetJobs(sheet string, rows [][]string, tmpl binding.Templates) ([]Job, error) {
	var (
		header []string
		jobs   []Job
	)
	for i, cells := range rows {
		if blank(cells) {
			continue
		}
		if header == nil {
			header = make([]string, len(cells))
			for j, c := range cells {
				header[j] = strings.ToLower(strings.TrimSpace(c))
			}
			continue
		}

		record := make(map[string]string, len(header))
		for j, name := range header {
			if name == "" || j >= len(cells) {
				continue
			}
			record[name] = strings.TrimSpace(cells[j])
		}

		job := Job{Sheet: sheet, Row: i + 1, Content: binding.Content(tmpl, record), Qty: 1}
		if job.Content.BarcodeText == "" || binding.Unresolved(job.Content.BarcodeText) {
			return nil, fmt.Errorf("batch: %s 第 %d 行缺少条码", sheet, job.Row)
		}
		if raw := record["qty"]; raw != "" {
			qty, err := strconv.Atoi(raw)
			if err != nil || qty < 1 {
				return nil, fmt.Errorf("batch: %s 第 %d 行数量 %q 无效: %w", sheet, job.Row, raw, layout.ErrInvalidQuantity)
			}
			job.Qty = qty
		}
		job.Content = binding.DropUnresolved(job.Content)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func withDefaults(t binding.Templates) binding.Templates {
	if t.Barcode == "" {
		t.Barcode = DefaultTemplates.Barcode
	}
	if t.Business == "" {
		t.Business = DefaultTemplates.Business
	}
	if t.Product == "" {
		t.Product = DefaultTemplates.Product
	}
	if t.Price == "" {
		t.Price = DefaultTemplates.Price
	}
	return t
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
