package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"seoreport/internal/analytics"
	"seoreport/internal/logger"
	"seoreport/internal/report"
	"seoreport/internal/store"
)

// Service 为 HTTP 层依赖的业务接口。
type Service interface {
	Preview(ctx context.Context, snap analytics.Snapshot) (report.Bundle, error)
	Generate(ctx context.Context, snap analytics.Snapshot) (store.Record, error)
	Metrics(snap analytics.Snapshot) report.Metrics
	Get(ctx context.Context, id string) (store.Record, error)
	List(ctx context.Context, limit int) ([]store.Record, error)
}

type ServerConfig struct {
	Addr         string
	Service      Service
	AllowOrigins []string // 为空时允许任意来源
	MaxBodyBytes int64
}

// Server 暴露提示词构建与记录查询接口。
type Server struct {
	addr    string
	engine  *gin.Engine
	svc     Service
	maxBody int64
}

const (
	defaultListLimit = 20
	defaultMaxBody   = 8 << 20
	shutdownTimeout  = 5 * time.Second
)

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Service == nil {
		return nil, fmt.Errorf("service 不能为空")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		addr = ":8080"
	}
	s := &Server{addr: addr, svc: cfg.Service, maxBody: cfg.MaxBodyBytes}
	if s.maxBody <= 0 {
		s.maxBody = defaultMaxBody
	}
	s.engine = s.routes(cfg.AllowOrigins)
	return s, nil
}

func (s *Server) Addr() string { return s.addr }

// Handler 返回路由，便于测试。
func (s *Server) Handler() http.Handler { return s.engine }

// Start 阻塞监听，ctx 取消后优雅关闭。
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve 在给定 listener 上提供服务；请求上下文不随 ctx 取消，关闭时等待在途请求完成。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) routes(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLog())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	api := r.Group("/api/prompts")
	{
		api.POST("/preview", s.handlePreview)
		api.POST("/metrics", s.handleMetrics)
		api.POST("", s.handleGenerate)
		api.GET("", s.handleList)
		api.GET("/:id", s.handleGet)
		api.GET("/:id/chart", s.handleChart)
	}
	return r
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("HTTP %s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
