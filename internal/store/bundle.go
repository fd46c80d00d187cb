package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"seoreport/internal/pkg/sliceutil"
	"seoreport/internal/report"
)

// ErrNotFound 记录不存在。
var ErrNotFound = errors.New("store: record not found")

// Record 一次已生成的提示词及其派生指标
type Record struct {
	ID           string         `json:"id"`
	Target       string         `json:"target"`
	ReportPeriod string         `json:"reportPeriod"`
	Bundle       report.Bundle  `json:"bundle"`
	Metrics      report.Metrics `json:"metrics"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// BundleStore 抽象：保存与查询生成记录
type BundleStore interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// MemoryBundleStore 内存实现，保留最近 max 条
type MemoryBundleStore struct {
	mu    sync.RWMutex
	max   int
	order []string
	data  map[string]Record
}

var _ BundleStore = (*MemoryBundleStore)(nil)

func NewMemoryBundleStore(max int) *MemoryBundleStore {
	if max <= 0 {
		max = 200
	}
	return &MemoryBundleStore{max: max, data: make(map[string]Record)}
}

// Save 追加并裁剪；重复 ID 覆盖原记录
func (s *MemoryBundleStore) Save(ctx context.Context, rec Record) error {
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return errors.New("record id 不能为空")
	}
	rec.ID = id
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[id]; !exists {
		s.order = append(s.order, id)
	}
	s.data[id] = cloneRecord(rec)
	for len(s.order) > s.max {
		delete(s.data, s.order[0])
		s.order = s.order[1:]
	}
	return nil
}

// Get 返回拷贝
func (s *MemoryBundleStore) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[strings.TrimSpace(id)]
	if !ok {
		return Record{}, ErrNotFound
	}
	return cloneRecord(rec), nil
}

// List 按写入顺序倒序返回，limit<=0 返回全部
func (s *MemoryBundleStore) List(ctx context.Context, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.order)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Record, 0, n)
	for i := len(s.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, cloneRecord(s.data[s.order[i]]))
	}
	return out, nil
}

func (s *MemoryBundleStore) Close() error { return nil }

func cloneRecord(rec Record) Record {
	rec.Metrics.Intents = sliceutil.Clone(rec.Metrics.Intents)
	return rec
}
