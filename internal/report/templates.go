package report

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"seoreport/internal/analytics"
	"seoreport/internal/logger"
	"seoreport/internal/pkg/format"
)

//go:embed templates/*.tmpl
var embedded embed.FS

const (
	SystemTemplate = "system"
	UserTemplate   = "user"
)

// TemplateLoader supplies template overrides by name.
type TemplateLoader interface {
	Get(name string) (string, bool)
}

// Templates is a parsed system/user template pair. Safe for concurrent use.
type Templates struct {
	system *template.Template
	user   *template.Template
}

var funcs = template.FuncMap{
	"num": num,
}

func num(v any) string {
	switch n := v.(type) {
	case analytics.Number:
		return format.Number(n.Float())
	case float64:
		return format.Number(n)
	case int:
		return format.Number(float64(n))
	case nil:
		return "0"
	default:
		return fmt.Sprint(v)
	}
}

// DefaultTemplates returns the embedded templates.
func DefaultTemplates() *Templates {
	return &Templates{
		system: template.Must(parse(SystemTemplate, mustEmbedded(SystemTemplate))),
		user:   template.Must(parse(UserTemplate, mustEmbedded(UserTemplate))),
	}
}

// LoadTemplates parses the loader's overrides for the named templates and
// falls back to the embedded ones when a name is not provided.
func LoadTemplates(loader TemplateLoader, systemName, userName string) (*Templates, error) {
	out := DefaultTemplates()
	if loader == nil {
		return out, nil
	}
	if content, ok := loader.Get(systemName); ok && strings.TrimSpace(content) != "" {
		tpl, err := parse(systemName, content)
		if err != nil {
			return nil, fmt.Errorf("解析系统提示词模板 %s 失败: %w", systemName, err)
		}
		out.system = tpl
		logger.Infof("✓ 使用自定义系统提示词模板 %s", systemName)
	}
	if content, ok := loader.Get(userName); ok && strings.TrimSpace(content) != "" {
		tpl, err := parse(userName, content)
		if err != nil {
			return nil, fmt.Errorf("解析用户提示词模板 %s 失败: %w", userName, err)
		}
		out.user = tpl
		logger.Infof("✓ 使用自定义用户提示词模板 %s", userName)
	}
	return out, nil
}

func parse(name, content string) (*template.Template, error) {
	return template.New(name).Option("missingkey=zero").Funcs(funcs).Parse(content)
}

func mustEmbedded(name string) string {
	buf, err := embedded.ReadFile("templates/" + name + ".tmpl")
	if err != nil {
		panic(err)
	}
	return string(buf)
}

// view is the data both templates execute against.
type view struct {
	Snapshot      analytics.Snapshot
	Metrics       Metrics
	Heading       string
	TargetOrNA    string
	ReportPeriod  string
	Currency      string
	TopPerformers string
	QuickWins     string
}

func (t *Templates) render(v view) (string, string, error) {
	var sys, user bytes.Buffer
	if err := t.system.Execute(&sys, v); err != nil {
		return "", "", fmt.Errorf("渲染系统提示词失败: %w", err)
	}
	if err := t.user.Execute(&user, v); err != nil {
		return "", "", fmt.Errorf("渲染用户提示词失败: %w", err)
	}
	return strings.TrimSpace(sys.String()), strings.TrimSpace(user.String()), nil
}
