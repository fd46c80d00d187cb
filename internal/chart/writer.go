package chart

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"seoreport/internal/logger"
	"seoreport/internal/report"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Output 记录落盘的文件路径；未截图时 PNG 为空。
type Output struct {
	HTML string `json:"html"`
	PNG  string `json:"png,omitempty"`
}

// Writer 将图表页写入目录，可选截图。
type Writer struct {
	Dir     string
	Shooter Screenshotter
}

func NewWriter(dir string, shooter Screenshotter) *Writer {
	return &Writer{Dir: dir, Shooter: shooter}
}

// Write 生成 <dir>/<id>.html，配置了截图器时再生成 <dir>/<id>.png。
func (w *Writer) Write(ctx context.Context, id string, m report.Metrics) (Output, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return Output{}, fmt.Errorf("非法图表 id: %q", id)
	}
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return Output{}, fmt.Errorf("创建图表目录失败: %w", err)
	}
	out := Output{HTML: filepath.Join(w.Dir, id+".html")}
	f, err := os.Create(out.HTML)
	if err != nil {
		return Output{}, fmt.Errorf("创建图表文件失败: %w", err)
	}
	if err := Render(f, m); err != nil {
		_ = f.Close()
		return Output{}, err
	}
	if err := f.Close(); err != nil {
		return Output{}, err
	}
	logger.Infof("✓ 图表已写入 %s", out.HTML)

	if w.Shooter == nil {
		return out, nil
	}
	abs, err := filepath.Abs(out.HTML)
	if err != nil {
		return out, err
	}
	png, err := w.Shooter.Screenshot(ctx, "file://"+filepath.ToSlash(abs))
	if err != nil {
		return out, fmt.Errorf("图表截图失败: %w", err)
	}
	if !bytes.HasPrefix(png, pngSignature) {
		return out, fmt.Errorf("截图不是 PNG 格式")
	}
	out.PNG = filepath.Join(w.Dir, id+".png")
	if err := os.WriteFile(out.PNG, png, 0o644); err != nil {
		return out, fmt.Errorf("写入截图失败: %w", err)
	}
	logger.Infof("✓ 截图已写入 %s", out.PNG)
	return out, nil
}
