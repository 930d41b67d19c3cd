package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/DefiantLabs/acb-tax-cli/config"
	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/DefiantLabs/acb-tax-cli/csv"
	"github.com/DefiantLabs/acb-tax-cli/csv/parsers"
	"github.com/DefiantLabs/acb-tax-cli/renderer"
	"github.com/DefiantLabs/acb-tax-cli/util"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const maxLedgerBytes = 32 << 20

type reportRequest struct {
	settings core.Settings
	format   string
	ledger   []byte
}

func (r reportRequest) cacheKey(kind string) string {
	return util.Fingerprint(r.ledger, kind, strconv.Itoa(r.settings.TaxYear), r.settings.FallbackRate.String(), r.format)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ReportCSV computes a report from the ledger in the request body.
func (s *Server) ReportCSV(c *gin.Context) {
	req, ok := s.bindReportRequest(c)
	if !ok {
		return
	}

	key := req.cacheKey("csv")
	if cached, found := s.cache.Get(key); found {
		c.Data(http.StatusOK, "text/csv", cached.([]byte))
		return
	}

	result, err := compute(req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	buf, err := renderCsv(result, req.format)
	if err != nil {
		config.Log.Error("Error rendering report csv", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error rendering report"})
		return
	}

	s.cache.Set(key, buf, cache.DefaultExpiration)
	c.Data(http.StatusOK, "text/csv", buf)
}

// Summary computes the totals and ending pools for the ledger in the request body.
func (s *Server) Summary(c *gin.Context) {
	req, ok := s.bindReportRequest(c)
	if !ok {
		return
	}

	key := req.cacheKey("summary")
	if cached, found := s.cache.Get(key); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := compute(req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	summary := renderer.NewSummary(result)
	s.cache.Set(key, summary, cache.DefaultExpiration)
	c.JSON(http.StatusOK, summary)
}

func (s *Server) LatestCSV(c *gin.Context) {
	latest := s.Latest()
	if latest == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No report has been computed yet"})
		return
	}
	c.Header("Last-Modified", latest.ComputedAt.Format(http.TimeFormat))
	c.Data(http.StatusOK, "text/csv", latest.CSV)
}

func (s *Server) bindReportRequest(c *gin.Context) (reportRequest, bool) {
	req := reportRequest{settings: s.defaults, format: s.format}

	if year := c.Query("year"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Invalid year %q", year)})
			return req, false
		}
		req.settings.TaxYear = parsed
	}

	if fx := c.Query("fallback-fx"); fx != "" {
		parsed, err := decimal.NewFromString(fx)
		if err != nil || !parsed.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Invalid fallback-fx %q", fx)})
			return req, false
		}
		req.settings.FallbackRate = parsed
	}

	if format := c.Query("format"); format != "" {
		if !parsers.IsParserKey(format) {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Unsupported format %q, valid formats are %v", format, parsers.GetParserKeys())})
			return req, false
		}
		req.format = format
	}

	ledger, err := readLedgerBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return req, false
	}
	req.ledger = ledger
	return req, true
}

// readLedgerBody accepts the ledger as a "ledger" multipart file or as the raw body.
func readLedgerBody(c *gin.Context) ([]byte, error) {
	var body io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, err := c.FormFile("ledger")
		if err != nil {
			return nil, fmt.Errorf("ledger file is required")
		}
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		body = f
	}

	ledger, err := io.ReadAll(io.LimitReader(body, maxLedgerBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(ledger)) == 0 {
		return nil, fmt.Errorf("ledger is required")
	}
	return ledger, nil
}

func compute(req reportRequest) (*core.Result, error) {
	entries, err := csv.ReadLedger(bytes.NewReader(req.ledger))
	if err != nil {
		return nil, err
	}
	return core.Process(entries, req.settings)
}

func renderCsv(result *core.Result, format string) ([]byte, error) {
	rows, headers, err := csv.ParseReport(result, format)
	if err != nil {
		return nil, err
	}
	buf, err := csv.ToCsv(rows, headers)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
