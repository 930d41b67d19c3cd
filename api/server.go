package api

import (
	"sync"
	"time"

	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

// Server computes reports for uploaded ledgers and serves the latest scheduled refresh.
type Server struct {
	defaults core.Settings
	format   string
	cache    *cache.Cache

	mu     sync.RWMutex
	latest *Snapshot
}

// Snapshot is a report rendered in the server's default format.
type Snapshot struct {
	Result     *core.Result
	CSV        []byte
	ComputedAt time.Time
}

func NewServer(defaults core.Settings, format string, cacheTTL time.Duration) *Server {
	return &Server{
		defaults: defaults,
		format:   format,
		cache:    cache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), CORSMiddleware())

	r.GET("/healthz", s.Health)
	r.POST("/report.csv", s.ReportCSV)
	r.POST("/summary", s.Summary)
	r.GET("/latest.csv", s.LatestCSV)
	return r
}

// Publish replaces the latest snapshot.
func (s *Server) Publish(result *core.Result) error {
	buf, err := renderCsv(result, s.format)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = &Snapshot{Result: result, CSV: buf, ComputedAt: time.Now().UTC()}
	return nil
}

func (s *Server) Latest() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
