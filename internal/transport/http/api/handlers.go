package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"seoreport/internal/analytics"
	"seoreport/internal/chart"
	"seoreport/internal/logger"
	"seoreport/internal/report"
	"seoreport/internal/store"
)

type generateResponse struct {
	ID     string        `json:"id"`
	Bundle report.Bundle `json:"bundle"`
}

type listResponse struct {
	Records []store.Record `json:"records"`
}

func respondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func (s *Server) readSnapshot(c *gin.Context) (analytics.Snapshot, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody)
	snap, err := analytics.DecodeReader(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return analytics.Snapshot{}, false
	}
	return snap, true
}

func (s *Server) handlePreview(c *gin.Context) {
	snap, ok := s.readSnapshot(c)
	if !ok {
		return
	}
	bundle, err := s.svc.Preview(c.Request.Context(), snap)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (s *Server) handleMetrics(c *gin.Context) {
	snap, ok := s.readSnapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.svc.Metrics(snap))
}

func (s *Server) handleGenerate(c *gin.Context) {
	snap, ok := s.readSnapshot(c)
	if !ok {
		return
	}
	rec, err := s.svc.Generate(c.Request.Context(), snap)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, generateResponse{ID: rec.ID, Bundle: rec.Bundle})
}

func (s *Server) handleList(c *gin.Context) {
	limit := defaultListLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, errors.New("limit 需为非负整数"))
			return
		}
		limit = n
	}
	recs, err := s.svc.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	c.JSON(http.StatusOK, listResponse{Records: recs})
}

func (s *Server) lookup(c *gin.Context) (store.Record, bool) {
	rec, err := s.svc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		respondError(c, http.StatusNotFound, err)
		return store.Record{}, false
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return store.Record{}, false
	}
	return rec, true
}

func (s *Server) handleGet(c *gin.Context) {
	rec, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleChart(c *gin.Context) {
	rec, ok := s.lookup(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := chart.Render(c.Writer, rec.Metrics); err != nil {
		logger.Warnf("输出图表失败 id=%s: %v", rec.ID, err)
	}
}
