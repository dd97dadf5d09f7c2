// Copyright 2026 The Callsight Authors
// SPDX-License-Identifier: MIT

// Package web serves the transcript-analysis form and a small JSON API over
// the same analyzer and call log the CLI uses.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/Manaskashy/callsight/internal/analyze"
	"github.com/Manaskashy/callsight/internal/calllog"
	"github.com/Manaskashy/callsight/internal/redact"
)

// shutdownTimeout bounds graceful shutdown once the run context is cancelled.
const shutdownTimeout = 5 * time.Second

// Server hosts the web interface.
type Server struct {
	analyzer *analyze.Analyzer
	log      *calllog.Log
	addr     string
	engine   *gin.Engine
	tmpl     *template.Template
}

// pageData feeds the analysis page template.
type pageData struct {
	Transcript string
	Summary    string
	Sentiment  string
	BadgeClass string
	Error      string
	LogFile    string
}

// historyEntry is the JSON shape of one logged call.
type historyEntry struct {
	ID               string    `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	Model            string    `json:"model"`
	Transcript       string    `json:"transcript"`
	Summary          string    `json:"summary"`
	Sentiment        string    `json:"sentiment"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	LatencyMS        int64     `json:"latency_ms"`
}

// New creates a Server for the given analyzer and call log.
func New(analyzer *analyze.Analyzer, log *calllog.Log, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		analyzer: analyzer,
		log:      log,
		addr:     addr,
		tmpl:     template.Must(template.New("page").Parse(pageTemplate)),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/", s.handleIndex)
	engine.POST("/analyze", s.handleAnalyze)
	engine.GET("/api/history", s.handleHistory)
	engine.GET("/healthz", s.handleHealthz)

	s.engine = engine
	return s
}

// Handler exposes the HTTP handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("web interface listening", "addr", s.addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderPage(c, http.StatusOK, pageData{LogFile: s.log.Path()})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	transcript := strings.TrimSpace(c.PostForm("transcript"))
	if transcript == "" {
		s.renderPage(c, http.StatusBadRequest, pageData{
			Error:   "No transcript provided.",
			LogFile: s.log.Path(),
		})
		return
	}

	result, err := s.analyzer.Analyze(c.Request.Context(), transcript)
	if err != nil {
		slog.Error("analysis failed", "error", redact.String(err.Error()))
		s.renderPage(c, http.StatusBadGateway, pageData{
			Transcript: transcript,
			Error:      "Analysis failed: " + redact.String(err.Error()),
			LogFile:    s.log.Path(),
		})
		return
	}

	rec, err := s.log.Append(calllog.Record{
		Model:            result.Model,
		Transcript:       transcript,
		Summary:          result.Summary,
		Sentiment:        string(result.Sentiment),
		PromptTokens:     result.Usage.PromptTokens,
		CompletionTokens: result.Usage.CompletionTokens,
		TotalTokens:      result.Usage.TotalTokens,
		LatencyMS:        result.Latency.Milliseconds(),
	})
	if err != nil {
		slog.Error("log append failed", "error", err)
		s.renderPage(c, http.StatusInternalServerError, pageData{
			Transcript: transcript,
			Error:      "Analysis succeeded but could not be logged: " + err.Error(),
			LogFile:    s.log.Path(),
		})
		return
	}

	slog.Info("call analyzed",
		"id", rec.ID,
		"sentiment", rec.Sentiment,
		"total_tokens", rec.TotalTokens,
		"latency_ms", rec.LatencyMS,
	)

	s.renderPage(c, http.StatusOK, pageData{
		Transcript: transcript,
		Summary:    result.Summary,
		Sentiment:  string(result.Sentiment),
		BadgeClass: badgeClass(result.Sentiment),
		LogFile:    s.log.Path(),
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	records, err := s.log.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	// Newest first, optionally capped.
	entries := make([]historyEntry, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		entries = append(entries, historyEntry{
			ID:               r.ID,
			Timestamp:        r.Timestamp,
			Model:            r.Model,
			Transcript:       r.Transcript,
			Summary:          r.Summary,
			Sentiment:        r.Sentiment,
			PromptTokens:     r.PromptTokens,
			CompletionTokens: r.CompletionTokens,
			TotalTokens:      r.TotalTokens,
			LatencyMS:        r.LatencyMS,
		})
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	c.JSON(http.StatusOK, gin.H{"calls": entries, "count": len(entries)})
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) renderPage(c *gin.Context, status int, data pageData) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(c.Writer, data); err != nil {
		slog.Error("render page", "error", err)
	}
}

// badgeClass maps a sentiment to its CSS badge class.
func badgeClass(s analyze.Sentiment) string {
	switch s {
	case analyze.SentimentPositive:
		return "positive"
	case analyze.SentimentNeutral:
		return "neutral"
	case analyze.SentimentNegative:
		return "negative"
	default:
		return ""
	}
}
