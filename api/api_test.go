package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DefiantLabs/acb-tax-cli/core"
	"github.com/DefiantLabs/acb-tax-cli/csv"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLedger = `txid,refid,time,type,subtype,asset,amount,fee
L1,R1,2024-12-01 00:00:00,trade,tradespot,CAD,-140,0
L2,R1,2024-12-01 00:00:00,trade,tradespot,SOL,1.0,0
L3,R2,2025-01-01 00:00:00,earn,reward,SOL,0.2,0
`

func mkServer() *Server {
	gin.SetMode(gin.TestMode)
	return NewServer(core.Settings{
		TaxYear:      2025,
		FallbackRate: decimal.RequireFromString("1.4"),
		Currencies:   core.DefaultCurrencies,
	}, "audit", time.Minute)
}

func do(t *testing.T, s *Server, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, mkServer(), http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestReportCSV(t *testing.T) {
	s := mkServer()
	w := do(t, s, http.MethodPost, "/report.csv", []byte(testLedger), "text/csv")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "earn_reward_income")
	assert.Contains(t, lines[1], "28.00")

	// served from cache the second time
	assert.Equal(t, 1, s.cache.ItemCount())
	again := do(t, s, http.MethodPost, "/report.csv", []byte(testLedger), "text/csv")
	assert.Equal(t, w.Body.String(), again.Body.String())
}

func TestReportCSVOtherYearAndFormat(t *testing.T) {
	w := do(t, mkServer(), http.MethodPost, "/report.csv?year=2024&format=dispositions", []byte(testLedger), "text/csv")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "date,asset,units_disposed,proceeds_cad,acb_cad,outlays_cad,gain_cad", strings.TrimSpace(w.Body.String()))
}

func TestReportCSVMultipart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("ledger", "ledgers.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(testLedger))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := do(t, mkServer(), http.MethodPost, "/report.csv", body.Bytes(), mw.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "earn_reward_income")
}

func TestReportCSVBadRequests(t *testing.T) {
	s := mkServer()

	w := do(t, s, http.MethodPost, "/report.csv?year=abc", []byte(testLedger), "text/csv")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/report.csv?fallback-fx=-1", []byte(testLedger), "text/csv")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/report.csv?format=koinly", []byte(testLedger), "text/csv")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/report.csv", nil, "text/csv")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportCSVUnprocessableLedger(t *testing.T) {
	unpaired := "txid,refid,time,type,subtype,asset,amount,fee\nL1,R1,2025-01-01 00:00:00,trade,tradespot,CAD,-140,0\n"

	w := do(t, mkServer(), http.MethodPost, "/report.csv", []byte(unpaired), "text/csv")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "expected 2 rows")
}

func TestSummary(t *testing.T) {
	w := do(t, mkServer(), http.MethodPost, "/summary", []byte(testLedger), "text/csv")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Equal(t, "28.00", decoded["rewardIncome"])
	assert.Equal(t, float64(2025), decoded["taxYear"])

	pools := decoded["pools"].([]interface{})
	require.Len(t, pools, 1)
	assert.Equal(t, "1.20000000", pools[0].(map[string]interface{})["units"])
}

func TestLatestCSV(t *testing.T) {
	s := mkServer()

	w := do(t, s, http.MethodGet, "/latest.csv", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	entries, err := csv.ReadLedger(strings.NewReader(testLedger))
	require.NoError(t, err)
	result, err := core.Process(entries, s.defaults)
	require.NoError(t, err)
	require.NoError(t, s.Publish(result))

	w = do(t, s, http.MethodGet, "/latest.csv", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "earn_reward_income")
	assert.NotEmpty(t, w.Header().Get("Last-Modified"))
}
