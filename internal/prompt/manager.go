package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// 中文说明：
// 提示词模板管理：从目录加载 *.tmpl / *.txt / *.md，文件名（去扩展名）即模板名。
// 目录不存在时视为无覆盖模板，使用内置模板。

var extensions = []string{".tmpl", ".txt", ".md"}

// Manager 保存目录中的模板文本。
type Manager struct {
	dir  string
	mu   sync.RWMutex
	data map[string]string
}

func NewManager(dir string) *Manager {
	return &Manager{dir: strings.TrimSpace(dir), data: make(map[string]string)}
}

// Load 读取目录下所有模板文件，重复调用会整体替换。
func (m *Manager) Load() error {
	next := make(map[string]string)
	if m.dir == "" {
		m.swap(next)
		return nil
	}
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			m.swap(next)
			return nil
		}
		return fmt.Errorf("读取提示词目录失败: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !knownExt(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if _, dup := next[name]; dup {
			return fmt.Errorf("提示词模板重名: %s", name)
		}
		buf, err := os.ReadFile(filepath.Join(m.dir, e.Name()))
		if err != nil {
			return fmt.Errorf("读取提示词模板 %s 失败: %w", e.Name(), err)
		}
		next[name] = string(buf)
	}
	m.swap(next)
	return nil
}

func (m *Manager) swap(next map[string]string) {
	m.mu.Lock()
	m.data = next
	m.mu.Unlock()
}

func knownExt(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get 返回模板内容。
func (m *Manager) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[strings.TrimSpace(name)]
	return v, ok
}

// Names 返回已加载的模板名（无序）。
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.data))
	for k := range m.data {
		out = append(out, k)
	}
	return out
}
