package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPath 为默认配置文件位置；文件不存在时使用内置默认值。
const DefaultPath = "configs/config.toml"

// 配置结构体：按应用 / 报告 / 模板 / 存储 / 图表分组
type Config struct {
	App    AppConfig    `toml:"app" yaml:"app"`
	Report ReportConfig `toml:"report" yaml:"report"`
	Prompt PromptConfig `toml:"prompt" yaml:"prompt"`
	Store  StoreConfig  `toml:"store" yaml:"store"`
	Chart  ChartConfig  `toml:"chart" yaml:"chart"`
}

type AppConfig struct {
	Env      string `toml:"env" yaml:"env"`
	LogLevel string `toml:"log_level" yaml:"log_level"`
	HTTPAddr string `toml:"http_addr" yaml:"http_addr"`
}

type ReportConfig struct {
	KeywordLimit   int    `toml:"keyword_limit" yaml:"keyword_limit"`
	CurrencySymbol string `toml:"currency_symbol" yaml:"currency_symbol"`
}

type PromptConfig struct {
	Dir            string `toml:"dir" yaml:"dir"` // 为空时只用内置模板
	SystemTemplate string `toml:"system_template" yaml:"system_template"`
	UserTemplate   string `toml:"user_template" yaml:"user_template"`
}

type StoreConfig struct {
	Path       string `toml:"path" yaml:"path"` // SQLite 路径；为空时使用内存存储
	MaxRecords int    `toml:"max_records" yaml:"max_records"`
}

type ChartConfig struct {
	Enabled        bool   `toml:"enabled" yaml:"enabled"`
	Dir            string `toml:"dir" yaml:"dir"`
	Screenshot     bool   `toml:"screenshot" yaml:"screenshot"`
	ChromeURL      string `toml:"chrome_url" yaml:"chrome_url"` // 远程调试地址，为空时启动本地 headless Chrome
	TimeoutSeconds int    `toml:"timeout_seconds" yaml:"timeout_seconds"`
}

// Default 返回全部字段取默认值的配置。
func Default() *Config {
	cfg := &Config{}
	cfg.Chart.Enabled = true
	applyDefaults(cfg)
	return cfg
}

// Load 读取并解析配置文件（.toml / .yaml / .yml），并设置缺省值与基本校验
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault 在默认路径缺失时回退到默认配置；显式指定的路径必须存在。
func LoadOrDefault(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return Default(), nil
		}
	}
	return Load(path)
}

// Parse 按扩展名选择解码器，默认 TOML。
func Parse(data []byte, ext string) (*Config, error) {
	cfg := &Config{}
	cfg.Chart.Enabled = true
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析 YAML 失败: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析 TOML 失败: %w", err)
		}
	}
	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// 默认值设置
func applyDefaults(c *Config) {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.HTTPAddr == "" {
		c.App.HTTPAddr = ":8080"
	}
	if c.Report.KeywordLimit == 0 {
		c.Report.KeywordLimit = 10
	}
	if c.Report.CurrencySymbol == "" {
		c.Report.CurrencySymbol = "£"
	}
	if c.Prompt.SystemTemplate == "" {
		c.Prompt.SystemTemplate = "system"
	}
	if c.Prompt.UserTemplate == "" {
		c.Prompt.UserTemplate = "user"
	}
	if c.Store.MaxRecords == 0 {
		c.Store.MaxRecords = 200
	}
	if c.Chart.Dir == "" {
		c.Chart.Dir = "data/charts"
	}
	if c.Chart.TimeoutSeconds <= 0 {
		c.Chart.TimeoutSeconds = 60
	}
}

// 基础校验
func validate(c *Config) error {
	switch strings.ToLower(c.App.Env) {
	case "dev", "prod":
	default:
		return fmt.Errorf("app.env 仅支持 dev/prod: %s", c.App.Env)
	}
	if c.Report.KeywordLimit < 1 || c.Report.KeywordLimit > 100 {
		return fmt.Errorf("report.keyword_limit 需在 [1,100]")
	}
	if c.Store.MaxRecords < 1 {
		return fmt.Errorf("store.max_records 至少为 1")
	}
	if c.Chart.Screenshot && !c.Chart.Enabled {
		return fmt.Errorf("chart.screenshot 需要同时启用 chart.enabled")
	}
	return nil
}
