package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 中文说明：
// 轻量日志封装：保留包级 Debugf/Infof/... 调用方式，底层由 zap 输出。
// 支持设置全局级别，便于减少刷屏。

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar = build("dev")
)

func build(env string) *zap.SugaredLogger {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}
	cfg.Level = level
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// Setup 按运行环境切换编码器（dev=console，prod=json），级别保持不变。
func Setup(env string) {
	next := build(env)
	mu.Lock()
	prev := sugar
	sugar = next
	mu.Unlock()
	_ = prev.Sync()
}

// Use 替换底层 logger（测试中配合 zaptest/observer 使用）。
func Use(l *zap.Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	sugar = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
	mu.Unlock()
}

// Sync 刷新缓冲区，进程退出前调用。
func Sync() {
	_ = current().Sync()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func SetLevel(s string) {
	switch ParseLevel(s) {
	case LevelDebug:
		level.SetLevel(zapcore.DebugLevel)
	case LevelWarn:
		level.SetLevel(zapcore.WarnLevel)
	case LevelError:
		level.SetLevel(zapcore.ErrorLevel)
	default:
		level.SetLevel(zapcore.InfoLevel)
	}
}

// Enabled 报告给定级别当前是否会输出。
func Enabled(l Level) bool {
	switch l {
	case LevelDebug:
		return level.Enabled(zapcore.DebugLevel)
	case LevelInfo:
		return level.Enabled(zapcore.InfoLevel)
	case LevelWarn:
		return level.Enabled(zapcore.WarnLevel)
	default:
		return level.Enabled(zapcore.ErrorLevel)
	}
}

func Debugf(format string, v ...any) {
	if Enabled(LevelDebug) {
		current().Debugf(format, v...)
	}
}
func Infof(format string, v ...any) {
	if Enabled(LevelInfo) {
		current().Infof(format, v...)
	}
}
func Warnf(format string, v ...any) {
	if Enabled(LevelWarn) {
		current().Warnf(format, v...)
	}
}
func Errorf(format string, v ...any) {
	if Enabled(LevelError) {
		current().Errorf(format, v...)
	}
}
