package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/epeers/varstress/docs"
	"github.com/epeers/varstress/internal/cache"
	"github.com/epeers/varstress/internal/catalog"
	"github.com/epeers/varstress/internal/models"
	"github.com/epeers/varstress/internal/services"
	"github.com/gin-gonic/gin"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return setupTestRouterWithFallback(t, false)
}

func setupTestRouterWithFallback(t *testing.T, confidenceFallback bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	riskSvc, err := services.NewRiskService(catalog.DefaultConfig(), cache.NewMemoryCache(0), confidenceFallback)
	if err != nil {
		t.Fatalf("failed to create risk service: %v", err)
	}
	router := gin.New()
	RegisterRoutes(router, riskSvc)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url, body, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// buildMultipartRequest builds a report upload with an optional metadata
// field and an optional allocations CSV part.
func buildMultipartRequest(t *testing.T, metadata, csvContent string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if metadata != "" {
		if err := writer.WriteField("metadata", metadata); err != nil {
			t.Fatalf("failed to write metadata field: %v", err)
		}
	}
	if csvContent != "" {
		part, err := writer.CreateFormFile("allocations", "allocations.csv")
		if err != nil {
			t.Fatalf("failed to create allocations file part: %v", err)
		}
		if _, err := part.Write([]byte(csvContent)); err != nil {
			t.Fatalf("failed to write CSV content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/risk/report/csv", &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-ID", "1")
	return req
}

func TestHealth(t *testing.T) {
	router := setupTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestVaREndpoint(t *testing.T) {
	router := setupTestRouter(t)
	body := `{"net_asset_value":1000000,"horizon_days":1,"confidence":"1",
		"allocations":[{"risk_class_id":"Juros-Pré","percent_of_nav":50}]}`

	w := doJSON(t, router, http.MethodPost, "/risk/var", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	if !strings.Contains(w.Body.String(), `"var_percent":0.8315`) {
		t.Errorf("expected var_percent 0.8315 in %s", w.Body.String())
	}

	var resp models.VaRResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}
	if resp.Results[0].VaRAmount != 4157.61 || resp.TotalVaRAmount != 4157.61 {
		t.Errorf("expected 4157.61, got %v / %v", resp.Results[0].VaRAmount, resp.TotalVaRAmount)
	}
	if resp.Context.ConfidenceZScore != 1.65 {
		t.Errorf("expected z 1.65, got %v", resp.Context.ConfidenceZScore)
	}
}

func TestVaREndpoint_BadRequests(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"net_asset_value":`},
		{"missing confidence", `{"net_asset_value":1000,"horizon_days":1}`},
		{"unknown confidence", `{"net_asset_value":1000,"horizon_days":1,"confidence":"9"}`},
		{"horizon not offered", `{"net_asset_value":1000,"horizon_days":7,"confidence":"1"}`},
		{"negative nav", `{"net_asset_value":-1,"horizon_days":1,"confidence":"1"}`},
		{"unknown class", `{"net_asset_value":1000,"horizon_days":1,"confidence":"1",
			"allocations":[{"risk_class_id":"Ouro","percent_of_nav":5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/risk/var", tt.body, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
			var resp models.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Error != "bad_request" {
				t.Errorf("expected bad_request, got %q", resp.Error)
			}
		})
	}
}

func TestStressEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	body := `{"allocations":[{"risk_class_id":"Ações (Ibovespa)","percent_of_nav":10}]}`
	w := doJSON(t, router, http.MethodPost, "/risk/stress", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.StressResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Results) != 5 {
		t.Fatalf("expected 5 default scenarios, got %d", len(resp.Results))
	}
	if resp.Results[0].ScenarioName != "Ibovespa" || resp.Results[0].AggregateImpactPercent != -0.015 {
		t.Errorf("unexpected first result %+v", resp.Results[0])
	}

	body = `{"net_asset_value":1000,"scenarios":[{"name":"crash","shock":-0.5,"classes":["Outros"]}],
		"allocations":[{"risk_class_id":"Outros","percent_of_nav":20}]}`
	w = doJSON(t, router, http.MethodPost, "/risk/stress", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].AggregateImpactAmount != -100 {
		t.Errorf("unexpected custom scenario results %+v", resp.Results)
	}

	w = doJSON(t, router, http.MethodPost, "/risk/stress", `{"allocations":[{"risk_class_id":"Ouro","percent_of_nav":1}]}`, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for unknown class, got %d", w.Code)
	}
}

func TestReportLifecycle(t *testing.T) {
	router := setupTestRouter(t)
	body := `{"net_asset_value":1000000,"horizon_days":1,"confidence":"95%",
		"allocations":[{"risk_class_id":"Juros-Pré","percent_of_nav":50},{"risk_class_id":"Multimercado","percent_of_nav":10}]}`

	w := doJSON(t, router, http.MethodPost, "/risk/report", body, "7")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	var report models.RiskReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if report.ID == "" || report.OwnerID != 7 {
		t.Fatalf("unexpected report identity %q / %d", report.ID, report.OwnerID)
	}
	if len(report.VaR) != 2 || len(report.Stress) != 5 {
		t.Errorf("expected 2 VaR rows and 5 stress rows, got %d / %d", len(report.VaR), len(report.Stress))
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Code != models.WarnUnmatchedAllocation {
		t.Errorf("expected one unmatched-allocation warning, got %+v", report.Warnings)
	}

	w = doJSON(t, router, http.MethodGet, "/risk/runs/"+report.ID, "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/users/7/runs", "", "7")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var runs []models.RunListItem
	if err := json.Unmarshal(w.Body.Bytes(), &runs); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != report.ID {
		t.Errorf("expected the stored run, got %+v", runs)
	}

	if w := doJSON(t, router, http.MethodGet, "/users/8/runs", "", "7"); w.Code != http.StatusForbidden {
		t.Errorf("expected status 403 for another user's runs, got %d", w.Code)
	}
	if w := doJSON(t, router, http.MethodGet, "/users/7/runs", "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without X-User-ID, got %d", w.Code)
	}
}

func TestGetRun_NotFound(t *testing.T) {
	router := setupTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/risk/runs/missing", "", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestMalformedUserHeader(t *testing.T) {
	router := setupTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", "", "abc")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestReportCSV(t *testing.T) {
	router := setupTestRouter(t)

	metadata := `{"net_asset_value":1000000,"horizon_days":1,"confidence":"1"}`
	csv := "risk_class_id,percent_of_nav\nJuros-Pré,50\nOutros,abc\n"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, buildMultipartRequest(t, metadata, csv))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var report models.RiskReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if report.TotalVaRAmount != 4157.61 {
		t.Errorf("expected total 4157.61, got %v", report.TotalVaRAmount)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Code != models.WarnInputDiscarded {
		t.Errorf("expected one discarded-row warning, got %+v", report.Warnings)
	}
}

func TestReportCSV_BadRequests(t *testing.T) {
	router := setupTestRouter(t)
	csv := "risk_class_id,percent_of_nav\nJuros-Pré,50\n"

	tests := []struct {
		name     string
		metadata string
		csv      string
	}{
		{"missing metadata", "", csv},
		{"invalid metadata json", `{"net_asset_value":`, csv},
		{"missing file", `{"net_asset_value":1000,"horizon_days":1,"confidence":"1"}`, ""},
		{"missing column", `{"net_asset_value":1000,"horizon_days":1,"confidence":"1"}`, "risk_class_id\nOutros\n"},
		{"unknown class", `{"net_asset_value":1000,"horizon_days":1,"confidence":"1"}`, "risk_class_id,percent_of_nav\nOuro,5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, buildMultipartRequest(t, tt.metadata, tt.csv))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestSensitivityEndpoint(t *testing.T) {
	router := setupTestRouter(t)
	body := `{"net_asset_value":1000000,"allocations":[{"risk_class_id":"Juros-Pré","percent_of_nav":50}]}`

	w := doJSON(t, router, http.MethodPost, "/risk/sensitivity", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.SensitivityResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Cells) != 6 {
		t.Fatalf("expected 6 cells, got %d", len(resp.Cells))
	}
	if resp.Cells[0].TotalVaRAmount != 4157.61 {
		t.Errorf("expected 4157.61 in first cell, got %v", resp.Cells[0].TotalVaRAmount)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/risk/classes", "", "")
	var classes models.CatalogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &classes); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if classes.TradingDaysPerYear != 252 || len(classes.Classes) != 7 {
		t.Errorf("unexpected catalog %+v", classes)
	}

	w = doJSON(t, router, http.MethodGet, "/risk/scenarios", "", "")
	var scenarios []models.StressScenario
	if err := json.Unmarshal(w.Body.Bytes(), &scenarios); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(scenarios) != 5 {
		t.Errorf("expected 5 scenarios, got %d", len(scenarios))
	}

	w = doJSON(t, router, http.MethodGet, "/risk/confidence-levels", "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"horizons":[1,10,21]`) {
		t.Errorf("unexpected confidence levels response %d: %s", w.Code, w.Body.String())
	}
}

func TestRiskEndpoints_RejectNonPositiveWeights(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name string
		url  string
		body string
	}{
		{"var negative weight", "/risk/var", `{"net_asset_value":1000000,"horizon_days":1,"confidence":"1",
			"allocations":[{"risk_class_id":"Juros-Pré","percent_of_nav":50},{"risk_class_id":"Ações (Ibovespa)","percent_of_nav":-40}]}`},
		{"var zero weight", "/risk/var", `{"net_asset_value":1000000,"horizon_days":1,"confidence":"1",
			"allocations":[{"risk_class_id":"Juros-Pré","percent_of_nav":0}]}`},
		{"var empty class", "/risk/var", `{"net_asset_value":1000000,"horizon_days":1,"confidence":"1",
			"allocations":[{"risk_class_id":"","percent_of_nav":10}]}`},
		{"report negative weight", "/risk/report", `{"net_asset_value":1000000,"horizon_days":1,"confidence":"1",
			"allocations":[{"risk_class_id":"Outros","percent_of_nav":-5}]}`},
		{"stress negative weight", "/risk/stress", `{"allocations":[{"risk_class_id":"Outros","percent_of_nav":-5}]}`},
		{"sensitivity negative weight", "/risk/sensitivity", `{"net_asset_value":1000000,
			"allocations":[{"risk_class_id":"Outros","percent_of_nav":-5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, tt.url, tt.body, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestVaREndpoint_ConfidenceFallbackIsReported(t *testing.T) {
	router := setupTestRouterWithFallback(t, true)
	body := `{"net_asset_value":1000000,"horizon_days":1,"confidence":"zzz",
		"allocations":[{"risk_class_id":"Juros-Pré","percent_of_nav":50}]}`

	w := doJSON(t, router, http.MethodPost, "/risk/var", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.VaRResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Context.ConfidenceZScore != 1.65 {
		t.Errorf("expected default z 1.65, got %v", resp.Context.ConfidenceZScore)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != models.WarnConfidenceDefaulted {
		t.Errorf("expected one confidence-defaulted warning, got %+v", resp.Warnings)
	}
}

func TestStressEndpoint_Warnings(t *testing.T) {
	router := setupTestRouter(t)
	body := `{"allocations":[{"risk_class_id":"Multimercado","percent_of_nav":10},{"risk_class_id":"Outros","percent_of_nav":5}]}`

	w := doJSON(t, router, http.MethodPost, "/risk/stress", body, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.StressResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != models.WarnUnmatchedAllocation {
		t.Errorf("expected one unmatched-allocation warning, got %+v", resp.Warnings)
	}
	if !strings.Contains(resp.Warnings[0].Message, "Multimercado") {
		t.Errorf("expected warning to name Multimercado, got %q", resp.Warnings[0].Message)
	}
}

// swaggerPath rewrites gin path parameters into Swagger template form.
func swaggerPath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func TestSwaggerDocMatchesRoutes(t *testing.T) {
	router := setupTestRouter(t)

	var doc struct {
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"definitions"`
	}
	if err := json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc); err != nil {
		t.Fatalf("swagger document is not valid JSON: %v", err)
	}

	documented := 0
	for _, route := range router.Routes() {
		if route.Path == "/health" {
			continue
		}
		path := swaggerPath(route.Path)
		methods, ok := doc.Paths[path]
		if !ok {
			t.Errorf("route %s %s missing from swagger paths", route.Method, path)
			continue
		}
		if _, ok := methods[strings.ToLower(route.Method)]; !ok {
			t.Errorf("route %s %s missing method in swagger doc", route.Method, path)
			continue
		}
		documented++
	}
	if documented != len(doc.Paths) {
		t.Errorf("swagger documents %d paths, router serves %d", len(doc.Paths), documented)
	}

	for _, def := range []string{"models.VaRResponse", "models.StressResponse", "models.RiskReport"} {
		if _, ok := doc.Definitions[def].Properties["warnings"]; !ok {
			t.Errorf("%s definition lacks warnings", def)
		}
	}
}
