// Package config loads CLI defaults from YAML, .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/labelsheet/binding"
	"github.com/ByLCY/labelsheet/layout"
)

// DefaultDateFormat 对应 yyyy-MM-dd HH:mm:ss。
const DefaultDateFormat = "2006-01-02 15:04:05"

// 环境变量名。
const (
	EnvPaper     = "LABELSHEET_PAPER"
	EnvCatalog   = "LABELSHEET_CATALOG"
	EnvOutput    = "LABELSHEET_OUT"
	EnvMarginPt  = "LABELSHEET_MARGIN_PT"
	EnvSymbology = "LABELSHEET_SYMBOLOGY"
)

type Config struct {
	Paper      string            `yaml:"paper"`
	Catalog    string            `yaml:"catalog"`
	Output     string            `yaml:"output"`
	Debug      string            `yaml:"debug"`
	MarginPt   float64           `yaml:"margin_pt"`
	Symbology  string            `yaml:"symbology"`
	DateFormat string            `yaml:"date_format"`
	Content    binding.Templates `yaml:"content"`
	Include    Include           `yaml:"include"`
}

// Include 控制可选字段是否打印，默认全部打印。
type Include struct {
	Business bool `yaml:"business"`
	Product  bool `yaml:"product"`
	Price    bool `yaml:"price"`
	Date     bool `yaml:"date"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Output:     "output/labels.pdf",
		MarginPt:   8,
		Symbology:  "simplified",
		DateFormat: DefaultDateFormat,
		Include:    Include{Business: true, Product: true, Price: true, Date: true},
	}
}

// Load 读取 YAML 配置，未出现的字段保留默认值。
func Load(path string) (Config, error) {
	cfg := Default()
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: 读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("config: 解析配置文件失败: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadOptional behaves like Load but returns defaults when path does not exist.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ApplyDotEnv 读取 .env 文件中的覆盖项，不修改进程环境。文件不存在时忽略。
func (c *Config) ApplyDotEnv(path string) error {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: 读取 %s 失败: %w", path, err)
	}
	return c.apply(func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	})
}

// ApplyEnv applies overrides from lookup, normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	return c.apply(lookup)
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(EnvPaper, &c.Paper)
	set(EnvCatalog, &c.Catalog)
	set(EnvOutput, &c.Output)
	set(EnvSymbology, &c.Symbology)
	if v, ok := lookup(EnvMarginPt); ok && strings.TrimSpace(v) != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("config: %s=%q 不是数字: %w", EnvMarginPt, v, err)
		}
		c.MarginPt = f
	}
	return c.Validate()
}

// Validate 检查取值范围。
func (c Config) Validate() error {
	if c.MarginPt < 0 {
		return fmt.Errorf("config: margin_pt 不能为负数（%g）", c.MarginPt)
	}
	if strings.TrimSpace(c.DateFormat) == "" {
		return fmt.Errorf("config: date_format 不能为空")
	}
	return nil
}

// Apply 按 Include 开关过滤可选字段，并在需要时填入打印时间。
func (c Config) Apply(content layout.LabelContent, now time.Time) layout.LabelContent {
	if !c.Include.Business {
		content.BusinessName = ""
	}
	if !c.Include.Product {
		content.ProductName = ""
	}
	if !c.Include.Price {
		content.Price = ""
	}
	content.PrintedTimestamp = ""
	if c.Include.Date {
		content.PrintedTimestamp = now.Format(c.DateFormat)
	}
	return content
}
