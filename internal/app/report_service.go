package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"seoreport/internal/analytics"
	"seoreport/internal/chart"
	"seoreport/internal/logger"
	"seoreport/internal/pkg/text"
	"seoreport/internal/report"
	"seoreport/internal/store"
)

const promptLogLimit = 1200

// ReportService 负责构建提示词、写入记录与生成图表。
type ReportService struct {
	builder report.PromptBuilder
	store   store.BundleStore
	charts  *chart.Writer
	newID   func() string
	now     func() time.Time
}

func NewReportService(builder report.PromptBuilder, st store.BundleStore, charts *chart.Writer) *ReportService {
	return &ReportService{
		builder: builder,
		store:   st,
		charts:  charts,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// Preview 只构建不保存。
func (s *ReportService) Preview(ctx context.Context, snap analytics.Snapshot) (report.Bundle, error) {
	if s == nil || s.builder == nil {
		return report.Bundle{}, fmt.Errorf("report service not initialized")
	}
	bundle, err := s.builder.Build(ctx, snap)
	if err != nil {
		return report.Bundle{}, fmt.Errorf("构建提示词失败: %w", err)
	}
	if logger.Enabled(logger.LevelDebug) {
		logger.Debugf("提示词已生成: %s (%s)\n%s", bundle.TargetWebsite, bundle.ReportPeriod,
			report.RenderBlockTable("User Prompt", text.Truncate(bundle.UserPrompt, promptLogLimit)))
	}
	return bundle, nil
}

// Generate 构建并写入存储，返回完整记录。
func (s *ReportService) Generate(ctx context.Context, snap analytics.Snapshot) (store.Record, error) {
	bundle, err := s.Preview(ctx, snap)
	if err != nil {
		return store.Record{}, err
	}
	if s.store == nil {
		return store.Record{}, fmt.Errorf("bundle store not configured")
	}
	metrics := report.Derive(snap)
	rec := store.Record{
		ID:           s.newID(),
		Target:       metrics.Target,
		ReportPeriod: metrics.ReportPeriod,
		Bundle:       bundle,
		Metrics:      metrics,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return store.Record{}, fmt.Errorf("保存记录失败: %w", err)
	}
	logger.Infof("✓ 记录已保存 id=%s target=%s", rec.ID, text.FirstLine(bundle.TargetWebsite))
	return rec, nil
}

// Metrics 返回快照的派生指标。
func (s *ReportService) Metrics(snap analytics.Snapshot) report.Metrics {
	return report.Derive(snap)
}

func (s *ReportService) Get(ctx context.Context, id string) (store.Record, error) {
	if s == nil || s.store == nil {
		return store.Record{}, fmt.Errorf("bundle store not configured")
	}
	return s.store.Get(ctx, strings.TrimSpace(id))
}

func (s *ReportService) List(ctx context.Context, limit int) ([]store.Record, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("bundle store not configured")
	}
	return s.store.List(ctx, limit)
}

// WriteChart 为已保存的记录生成图表文件。
func (s *ReportService) WriteChart(ctx context.Context, id string) (chart.Output, error) {
	if s.charts == nil {
		return chart.Output{}, fmt.Errorf("图表未启用")
	}
	rec, err := s.Get(ctx, id)
	if err != nil {
		return chart.Output{}, err
	}
	return s.charts.Write(ctx, rec.ID, rec.Metrics)
}

// Close 释放存储。
func (s *ReportService) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		logger.Warnf("关闭存储失败: %v", err)
	}
}
