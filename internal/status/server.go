// Package status exposes a small REST control/status surface over the
// plotting and mining engines, in the same shape the reference
// orchestrator exposes over its inference engine: health, metrics,
// capability detection and a graceful shutdown hook.
package status

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"shabalcore/internal/engine"
	"shabalcore/internal/plotfile"
	"shabalcore/pkg/poc"
	"shabalcore/pkg/shabal"
)

// Server is the HTTP status/control surface for a running poc-mine or
// poc-plot process.
type Server struct {
	factory   *engine.Factory
	startTime time.Time

	mu              sync.RWMutex
	noncesPlotted   uint64
	scansRun        uint64
	bestDeadline    poc.Deadline
	hasBestDeadline bool

	srv *http.Server
}

// NewServer builds a status server around factory. It does not start
// listening until Run is called.
func NewServer(factory *engine.Factory) *Server {
	return &Server{factory: factory, startTime: time.Now()}
}

// RecordPlot updates the plotted-nonce counter. Safe for concurrent use.
func (s *Server) RecordPlot(n uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noncesPlotted += n
}

// RecordScan records the outcome of a deadline scan, tracking the best
// (lowest) deadline observed across the server's lifetime.
func (s *Server) RecordScan(result poc.BestResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scansRun++
	if result.Found() && (!s.hasBestDeadline || result.Deadline < s.bestDeadline) {
		s.bestDeadline = result.Deadline
		s.hasBestDeadline = true
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled, then
// gracefully shuts down.
func (s *Server) Run(ctx context.Context, port int) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", s.handleHealth)
	router.GET("/capabilities", s.handleCapabilities)
	router.POST("/plot", s.handlePlot)
	router.POST("/mine", s.handleMine)

	api := router.Group("/api/v1")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/metrics", s.handleMetrics)
		api.GET("/capabilities", s.handleCapabilities)
		api.POST("/shutdown", s.handleShutdown)
	}

	s.srv = &http.Server{
		Addr:    httpAddr(port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func httpAddr(port int) string {
	if port <= 0 {
		port = 8080
	}
	return fmt.Sprintf(":%d", port)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"engine": s.factory.Best().Name(),
		"uptime": time.Since(s.startTime).String(),
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resp := gin.H{
		"nonces_plotted": s.noncesPlotted,
		"scans_run":      s.scansRun,
		"uptime":         time.Since(s.startTime).String(),
		"engine":         s.factory.Best().Name(),
	}
	if s.hasBestDeadline {
		resp["best_deadline"] = uint64(s.bestDeadline)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCapabilities(c *gin.Context) {
	c.JSON(http.StatusOK, s.factory.DetectionReport())
}

func (s *Server) handleShutdown(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "shutdown sequence initiated"})
	go func() {
		time.Sleep(200 * time.Millisecond)
		if s.srv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.srv.Shutdown(ctx)
		}
	}()
}

// plotRequest kicks off nonce generation for a numeric account id and
// nonce range, writing the result to OutPath via the plotfile container.
type plotRequest struct {
	AccountID  uint64 `json:"account_id" binding:"required"`
	StartNonce uint64 `json:"start_nonce"`
	Count      uint64 `json:"count" binding:"required"`
	OutPath    string `json:"out_path" binding:"required"`
}

func (s *Server) handlePlot(c *gin.Context) {
	var req plotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	width := shabal.Width(s.factory.Best().Width())
	lanes := req.Count
	if rem := lanes % uint64(width); rem != 0 {
		lanes += uint64(width) - rem
	}

	cache := make([]byte, lanes*poc.NonceSize)
	if err := poc.GenerateNonces(width, cache, poc.AccountID(req.AccountID), poc.NonceIndex(req.StartNonce), lanes); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	header := plotfile.Header{
		Account: poc.AccountID(req.AccountID),
		Start:   poc.NonceIndex(req.StartNonce),
		Count:   lanes,
	}
	if err := plotfile.Write(req.OutPath, header, plotfile.Linearize(width, cache)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.RecordPlot(lanes)
	c.JSON(http.StatusOK, gin.H{
		"account_id":  req.AccountID,
		"start_nonce": req.StartNonce,
		"count":       lanes,
		"out_path":    req.OutPath,
		"engine":      s.factory.Best().Name(),
	})
}

// mineRequest runs a deadline search against a plot file written by
// handlePlot (or cmd/poc-plot) for a given scoop and generation
// signature, reporting the best deadline and its absolute nonce index
// (the plot's start nonce plus the winning offset).
type mineRequest struct {
	PlotPath string `json:"plot_path" binding:"required"`
	Scoop    int    `json:"scoop"`
	Gensig   string `json:"gensig" binding:"required"`
}

func (s *Server) handleMine(c *gin.Context) {
	var req mineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := hex.DecodeString(req.Gensig)
	if err != nil || len(raw) != poc.GensigSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "gensig must be a 64-character hex string"})
		return
	}
	if req.Scoop < 0 || req.Scoop >= poc.ScoopsPerNonce {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("scoop must be in [0, %d)", poc.ScoopsPerNonce)})
		return
	}
	var gensig [poc.GensigSize]byte
	copy(gensig[:], raw)

	header, body, err := plotfile.Read(req.PlotPath)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	caches := plotfile.Caches(body)
	best := poc.FindBestDeadlineCaches(caches, req.Scoop, gensig)
	s.RecordScan(best)

	resp := gin.H{
		"plot_path":   req.PlotPath,
		"account_id":  uint64(header.Account),
		"start_nonce": uint64(header.Start),
		"found":       best.Found(),
	}
	if best.Found() {
		resp["deadline"] = uint64(best.Deadline)
		resp["nonce"] = uint64(header.Start) + best.Offset
	}
	c.JSON(http.StatusOK, resp)
}
