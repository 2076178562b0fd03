// Package api exposes curation over HTTP for tools that already hold the
// transcript in memory.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/forPelevin/viralcut/internal/config"
	"github.com/forPelevin/viralcut/internal/ports/adapters/jsonfile"
	"github.com/forPelevin/viralcut/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg    config.Config
	log    zerolog.Logger
	engine *gin.Engine
}

func NewServer(cfg config.Config, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{cfg: cfg, log: log}
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")
	api.GET("/health", s.health)
	api.GET("/config", s.curationConfig)
	api.POST("/curate", s.curate)

	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) curationConfig(c *gin.Context) {
	cc := s.cfg.Curation
	c.JSON(http.StatusOK, gin.H{
		"threshold":        cc.Threshold,
		"max_moments":      cc.MaxMoments,
		"suppress_overlap": cc.SuppressOverlap,
		"min_gap_sec":      cc.MinGapSec,
		"keywords":         cc.Keywords,
	})
}

type curateRequest struct {
	Segments json.RawMessage    `json:"segments"`
	Faces    map[string]int     `json:"faces"`
	Audio    map[string]float64 `json:"audio"`

	Threshold       *float64 `json:"threshold"`
	MaxMoments      *int     `json:"max_moments"`
	SuppressOverlap *bool    `json:"suppress_overlap"`
	MinGapSec       *float64 `json:"min_gap_sec"`
}

func (s *Server) curate(c *gin.Context) {
	if s.cfg.Server.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxBodyBytes)
	}

	var req curateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if len(req.Segments) == 0 {
		badRequest(c, `"segments" is required`)
		return
	}
	segs, err := jsonfile.DecodeSegments(req.Segments)
	if err != nil {
		badRequest(c, "segments: "+err.Error())
		return
	}
	samples, err := jsonfile.ParseSamples(req.Faces, req.Audio)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	cc := s.cfg.Curation
	if req.Threshold != nil {
		cc.Threshold = *req.Threshold
	}
	if req.MaxMoments != nil {
		cc.MaxMoments = *req.MaxMoments
	}
	if req.SuppressOverlap != nil {
		cc.SuppressOverlap = *req.SuppressOverlap
	}
	if req.MinGapSec != nil {
		cc.MinGapSec = *req.MinGapSec
	}
	if err := cc.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	runID := xid.New().String()
	m, err := usecase.Curate(cc.NewCurator(), segs, samples, s.log.With().Str("run", runID).Logger())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	m.RunID = runID
	c.JSON(http.StatusOK, m)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
