package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/ByLCY/labelsheet/batch"
	"github.com/ByLCY/labelsheet/binding"
	"github.com/ByLCY/labelsheet/catalog"
	"github.com/ByLCY/labelsheet/config"
	"github.com/ByLCY/labelsheet/layout"
	"github.com/ByLCY/labelsheet/renderer"
	canvasrenderer "github.com/ByLCY/labelsheet/renderer/canvas"
	"github.com/ByLCY/labelsheet/symbol"
)

var (
	errBlankBarcode      = errors.New("条码内容不能为空")
	errUnresolvedBarcode = errors.New("条码模板存在未解析的占位符")
)

// cliOptions 保存命令行参数；未显式设置的项沿用配置文件。
type cliOptions struct {
	configPath string
	envPath    string
	list       bool
	verbose    bool
	qty        int
	data       string
	batch      string
	set        map[string]string
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		zlog.Fatal().Err(err).Msg("参数错误")
	}
	if !opts.verbose {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg, err := loadConfig(opts, os.LookupEnv)
	if err != nil {
		zlog.Fatal().Err(err).Msg("加载配置失败")
	}

	if err := run(opts, cfg, newCanvasRenderer, os.Stdout, zlog.Logger, time.Now()); err != nil {
		zlog.Fatal().Err(err).Msg("生成标签失败")
	}
}

// parseArgs 解析命令行。字符串类参数只记录被显式设置的项。
func parseArgs(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("labelsheet", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	opts := cliOptions{set: map[string]string{}}
	fs.StringVar(&opts.configPath, "config", "labelsheet.yaml", "YAML 配置文件路径")
	fs.StringVar(&opts.envPath, "env", ".env", ".env 文件路径")
	fs.BoolVar(&opts.list, "list", false, "列出可用纸张后退出")
	fs.BoolVar(&opts.verbose, "v", false, "输出调试日志")
	fs.IntVar(&opts.qty, "qty", 1, "打印数量")
	fs.StringVar(&opts.data, "data", "", "绑定到内容模板的 JSON 数据")
	fs.StringVar(&opts.batch, "batch", "", "批量打印的 xlsx 文件")

	stringFlags := map[string]string{
		"barcode":   "条码内容（可使用 ${path} 模板）",
		"business":  "商家名称",
		"product":   "商品名称",
		"price":     "价格",
		"paper":     "纸张名称",
		"catalog":   "额外纸张目录文件",
		"out":       "PDF 输出路径",
		"debug":     "排版调试 JSON 输出路径",
		"symbology": "条码编码方式",
		"margin":    "标签留白，例如 8pt 或 3mm",
		"include":   "打印的可选字段，逗号分隔：business,product,price,date",
	}
	values := map[string]*string{}
	for name, usage := range stringFlags {
		values[name] = fs.String(name, "", usage)
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("未知参数: %s", strings.Join(fs.Args(), " "))
	}
	fs.Visit(func(f *flag.Flag) {
		if v, ok := values[f.Name]; ok {
			opts.set[f.Name] = *v
		}
	})
	return opts, nil
}

// loadConfig 依次应用 YAML、.env、环境变量与命令行参数。
func loadConfig(opts cliOptions, lookupEnv func(string) (string, bool)) (config.Config, error) {
	cfg, err := config.LoadOptional(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyDotEnv(opts.envPath); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		return cfg, err
	}

	for name, v := range opts.set {
		switch name {
		case "barcode":
			cfg.Content.Barcode = v
		case "business":
			cfg.Content.Business = v
		case "product":
			cfg.Content.Product = v
		case "price":
			cfg.Content.Price = v
		case "paper":
			cfg.Paper = v
		case "catalog":
			cfg.Catalog = v
		case "out":
			cfg.Output = v
		case "debug":
			cfg.Debug = v
		case "symbology":
			cfg.Symbology = v
		case "margin":
			l, err := layout.ParseLength(v)
			if err != nil {
				return cfg, fmt.Errorf("解析 margin 失败: %w", err)
			}
			if l.Unit == layout.UnitNone {
				l.Unit = layout.UnitPT
			}
			cfg.MarginPt = l.ToPT()
		case "include":
			cfg.Include = parseInclude(v)
		}
	}
	return cfg, cfg.Validate()
}

func parseInclude(v string) config.Include {
	var inc config.Include
	for _, part := range strings.Split(v, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "business":
			inc.Business = true
		case "product":
			inc.Product = true
		case "price":
			inc.Price = true
		case "date":
			inc.Date = true
		case "all":
			inc = config.Include{Business: true, Product: true, Price: true, Date: true}
		}
	}
	return inc
}

// rendererFactory 为每次任务创建渲染器，meta 中携带任务 ID。
type rendererFactory func(meta canvasrenderer.Meta) renderer.Renderer

func newCanvasRenderer(meta canvasrenderer.Meta) renderer.Renderer {
	return canvasrenderer.NewRenderer(canvasrenderer.Options{Meta: meta})
}

// run 串联纸张解析、排版与渲染。
func run(opts cliOptions, cfg config.Config, newRenderer rendererFactory, stdout io.Writer, logger zerolog.Logger, now time.Time) error {
	if newRenderer == nil {
		return fmt.Errorf("renderer 不能为空")
	}

	papers := catalog.Default()
	if cfg.Catalog != "" {
		var err error
		if papers, err = catalog.LoadFile(cfg.Catalog); err != nil {
			return fmt.Errorf("加载纸张目录失败: %w", err)
		}
		logger.Debug().Str("catalog", cfg.Catalog).Int("papers", papers.Len()).Msg("已加载纸张目录")
	}

	if opts.list {
		for _, name := range papers.BySheetCapacity() {
			p, _ := papers.Lookup(name)
			fmt.Fprintf(stdout, "%s\t%dx%d\t%d/页\n", p.Name, p.Columns, p.Rows, p.LabelsPerPage())
		}
		return nil
	}

	sym, err := symbol.Lookup(cfg.Symbology)
	if err != nil {
		return err
	}
	buildOpts := layout.BuildOptions{Symbology: symbol.NewCache(sym), MarginPt: cfg.MarginPt}

	var plan *layout.Plan
	if opts.batch != "" {
		plan, err = buildBatch(opts.batch, cfg, papers, buildOpts, logger, now)
	} else {
		plan, err = buildSingle(opts, cfg, papers, buildOpts, now)
	}
	if err != nil {
		return err
	}

	jobID := uuid.NewString()
	logger.Info().
		Str("job", jobID).
		Str("paper", plan.Paper.Name).
		Int("labels", plan.Labels()).
		Int("pages", len(plan.Pages)).
		Msg("排版完成")

	if cfg.Debug != "" {
		if err := writeDebug(plan, cfg.Debug); err != nil {
			return err
		}
		logger.Debug().Str("path", cfg.Debug).Msg("已写入调试 JSON")
	}

	r := newRenderer(canvasrenderer.Meta{
		Title:    plan.Paper.Name,
		Subject:  jobID,
		Creator:  "labelsheet",
		Keywords: []string{plan.Symbology},
	})
	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	pdfBytes, err := r.Render(plan)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(cfg.Output, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	logger.Info().Str("job", jobID).Str("out", cfg.Output).Msg("已生成 PDF")
	return nil
}

func buildSingle(opts cliOptions, cfg config.Config, papers layout.PaperLookup, buildOpts layout.BuildOptions, now time.Time) (*layout.Plan, error) {
	var data any
	if opts.data != "" {
		if err := json.Unmarshal([]byte(opts.data), &data); err != nil {
			return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
	}
	content := binding.Content(cfg.Content, data)
	if strings.TrimSpace(content.BarcodeText) == "" {
		return nil, errBlankBarcode
	}
	if binding.Unresolved(content.BarcodeText) {
		return nil, fmt.Errorf("%w: %s", errUnresolvedBarcode, content.BarcodeText)
	}
	content = cfg.Apply(binding.DropUnresolved(content), now)
	plan, err := layout.BuildNamed(content, opts.qty, cfg.Paper, papers, buildOpts)
	if err != nil {
		return nil, fmt.Errorf("排版失败: %w", err)
	}
	return plan, nil
}

func buildBatch(path string, cfg config.Config, papers layout.PaperLookup, buildOpts layout.BuildOptions, logger zerolog.Logger, now time.Time) (*layout.Plan, error) {
	jobs, err := batch.ReadFile(path, cfg.Content)
	if err != nil {
		return nil, err
	}
	plans := make([]*layout.Plan, 0, len(jobs))
	for _, job := range jobs {
		plan, err := layout.BuildNamed(cfg.Apply(job.Content, now), job.Qty, cfg.Paper, papers, buildOpts)
		if err != nil {
			return nil, fmt.Errorf("%s 第 %d 行: %w", job.Sheet, job.Row, err)
		}
		logger.Debug().Str("sheet", job.Sheet).Int("row", job.Row).Int("qty", job.Qty).Msg("批量任务")
		plans = append(plans, plan)
	}
	merged, err := layout.Merge(plans...)
	if err != nil {
		return nil, fmt.Errorf("合并批量任务失败: %w", err)
	}
	return merged, nil
}

func writeDebug(plan *layout.Plan, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(plan, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
