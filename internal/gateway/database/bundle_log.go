package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"seoreport/internal/report"
	"seoreport/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS prompt_bundles (
	id            TEXT PRIMARY KEY,
	target        TEXT NOT NULL DEFAULT '',
	report_period TEXT NOT NULL DEFAULT '',
	date_from     TEXT NOT NULL DEFAULT '',
	date_to       TEXT NOT NULL DEFAULT '',
	target_site   TEXT NOT NULL DEFAULT '',
	system_prompt TEXT NOT NULL,
	user_prompt   TEXT NOT NULL,
	generated_at  TEXT NOT NULL,
	metrics       TEXT,
	created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_prompt_bundles_created ON prompt_bundles(created_at DESC);
`

// BundleLogStore 将生成记录写入 SQLite（modernc 纯 Go 驱动）。
type BundleLogStore struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

var _ store.BundleStore = (*BundleLogStore)(nil)

// NewBundleLogStore 打开（必要时创建）数据库并建表。
func NewBundleLogStore(path string) (*BundleLogStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("bundle log 路径不能为空")
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("创建数据库目录失败: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开 SQLite 失败: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("设置 busy_timeout 失败: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("初始化 prompt_bundles 表失败: %w", err)
	}
	return &BundleLogStore{db: db, path: path}, nil
}

// Path 返回数据库文件路径。
func (s *BundleLogStore) Path() string { return s.path }

func (s *BundleLogStore) handle() (*sql.DB, error) {
	s.mu.Lock()
	db := s.db
	s.mu.Unlock()
	if db == nil {
		return nil, fmt.Errorf("bundle log store 未初始化")
	}
	return db, nil
}

// Save 写入/更新一条记录。
func (s *BundleLogStore) Save(ctx context.Context, rec store.Record) error {
	db, err := s.handle()
	if err != nil {
		return err
	}
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return fmt.Errorf("id 必填")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	metrics, err := json.Marshal(rec.Metrics)
	if err != nil {
		return fmt.Errorf("序列化 metrics 失败: %w", err)
	}
	b := rec.Bundle
	_, err = db.ExecContext(ctx, `
INSERT INTO prompt_bundles (id, target, report_period, date_from, date_to, target_site, system_prompt, user_prompt, generated_at, metrics, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	target = excluded.target,
	report_period = excluded.report_period,
	date_from = excluded.date_from,
	date_to = excluded.date_to,
	target_site = excluded.target_site,
	system_prompt = excluded.system_prompt,
	user_prompt = excluded.user_prompt,
	generated_at = excluded.generated_at,
	metrics = excluded.metrics`,
		id, rec.Target, rec.ReportPeriod, b.DateFrom, b.DateTo, b.TargetWebsite,
		b.SystemPrompt, b.UserPrompt, b.GeneratedAt, string(metrics), rec.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("写入 prompt_bundles 失败: %w", err)
	}
	return nil
}

const selectColumns = `id, target, report_period, date_from, date_to, target_site, system_prompt, user_prompt, generated_at, metrics, created_at`

// Get 按 ID 读取。
func (s *BundleLogStore) Get(ctx context.Context, id string) (store.Record, error) {
	db, err := s.handle()
	if err != nil {
		return store.Record{}, err
	}
	row := db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM prompt_bundles WHERE id = ?`, strings.TrimSpace(id))
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, store.ErrNotFound
	}
	return rec, err
}

// List 按创建时间倒序返回，limit<=0 返回全部。
func (s *BundleLogStore) List(ctx context.Context, limit int) ([]store.Record, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.QueryContext(ctx, `SELECT `+selectColumns+` FROM prompt_bundles ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("查询 prompt_bundles 失败: %w", err)
	}
	defer rows.Close()
	var out []store.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count 返回记录总数。
func (s *BundleLogStore) Count(ctx context.Context) (int, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(1) FROM prompt_bundles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("统计 prompt_bundles 失败: %w", err)
	}
	return n, nil
}

func (s *BundleLogStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (store.Record, error) {
	var (
		rec       store.Record
		metrics   sql.NullString
		createdAt int64
	)
	b := &rec.Bundle
	err := row.Scan(&rec.ID, &rec.Target, &rec.ReportPeriod, &b.DateFrom, &b.DateTo, &b.TargetWebsite,
		&b.SystemPrompt, &b.UserPrompt, &b.GeneratedAt, &metrics, &createdAt)
	if err != nil {
		return store.Record{}, err
	}
	b.ReportPeriod = rec.ReportPeriod
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	if metrics.Valid && metrics.String != "" {
		var m report.Metrics
		if err := json.Unmarshal([]byte(metrics.String), &m); err != nil {
			return store.Record{}, fmt.Errorf("解析 metrics 失败(id=%s): %w", rec.ID, err)
		}
		rec.Metrics = m
	}
	return rec, nil
}
