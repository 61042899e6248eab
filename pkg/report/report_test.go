package report

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/grcledger/grcledger/pkg/grc"
	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/server/router/gin"
	"github.com/grcledger/grcledger/pkg/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestChartRendererRender(t *testing.T) {
	r, err := NewChartRenderer()
	if err != nil {
		t.Fatal(err)
	}

	items := []grc.AssessmentOfAdequacy{
		{No: 1.1, Process: "Treasury", DesignAdequacyScore: 7},
		{No: 2, Process: "Lending", DesignAdequacyScore: 4.5},
	}
	doc, err := r.Render(items)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if doc.ContentType != "text/html; charset=utf-8" {
		t.Errorf("ContentType = %q", doc.ContentType)
	}
	if doc.Filename != "AssessmentOfAdequacy.html" {
		t.Errorf("Filename = %q", doc.Filename)
	}

	html := string(doc.Data)
	for _, want := range []string{
		`["Treasury","Lending"]`,
		`["1.1 - Treasury","2 - Lending"]`,
		`[7,4.5]`,
		`[10,10]`,
		"horizontalBar", "verticalBar", "radarChart", "lineChart", "pieChart", "donutChart",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}

func TestChartRendererEmpty(t *testing.T) {
	r, err := NewChartRenderer()
	if err != nil {
		t.Fatal(err)
	}
	doc, err := r.Render(nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(doc.Data), "const labels = [];") {
		t.Error("empty dataset should render empty label array")
	}
}

func TestExportEndpoint(t *testing.T) {
	log, err := logger.NewZapLogger(logger.Config{Level: logger.ErrorLevel, Format: logger.JSONFormat})
	if err != nil {
		t.Fatal(err)
	}
	exec := testutil.NewDocStore()
	exec.Seed("AssessmentOfAdequacy", bson.M{"No": 1.0, "Process": "Treasury", "DesignAdequacyScore": 8.0})
	exec.Seed("AssessmentOfAdequacy", bson.M{"No": 2.0, "Process": "Payroll", "DesignAdequacyScore": 5.0})

	renderer, err := NewChartRenderer()
	if err != nil {
		t.Fatal(err)
	}
	handler, err := NewHandler(exec, renderer, log)
	if err != nil {
		t.Fatal(err)
	}

	r := gin.NewRouter()
	handler.Register(r.Group("/api"))

	t.Run("all records", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/assessment/pdf", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if disp := rec.Header().Get("Content-Disposition"); !strings.Contains(disp, "AssessmentOfAdequacy") {
			t.Errorf("Content-Disposition = %q", disp)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Treasury") || !strings.Contains(body, "Payroll") {
			t.Error("report missing seeded processes")
		}
	})

	t.Run("search filters the export", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/export/assessment/pdf?search=Treasury", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Treasury") {
			t.Error("matching record missing from filtered export")
		}
		if strings.Contains(body, "Payroll") {
			t.Error("non-matching record leaked into filtered export")
		}
	})
}
