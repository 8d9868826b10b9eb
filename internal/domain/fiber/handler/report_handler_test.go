package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/stress-manometer/internal/config"
	"github.com/fadilmartias/stress-manometer/internal/repository"
	"github.com/fadilmartias/stress-manometer/internal/service"
	"github.com/fadilmartias/stress-manometer/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
)

type stubRenderer struct{ err error }

func (r stubRenderer) Render(context.Context, string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.7"), nil
}

func newApp(renderer service.PDFRenderer) *fiber.App {
	uc := usecase.NewReportUsecase(
		repository.NewDatasetRepository(time.Hour),
		service.NewNarrativeService(nil, config.DefaultReportProfile().Benchmarks, 0),
		renderer,
		config.DefaultReportProfile(),
	)
	app := fiber.New()
	NewReportHandler(uc, 1).RegisterRoutes(app)
	return app
}

func surveyCSV(columns int) string {
	var sb strings.Builder
	sb.WriteString("sname")
	for i := 2; i <= columns; i++ {
		fmt.Fprintf(&sb, ",c%d", i)
	}
	sb.WriteString("\n")
	for _, school := range []string{"Alpha", "Alpha", "Beta"} {
		sb.WriteString(school)
		for i := 2; i <= columns; i++ {
			sb.WriteString(",Often")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func multipartRequest(t *testing.T, url string, fields map[string]string, fileField, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(data)
	}
	w.Close()
	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string, http.Header) {
	t.Helper()
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b), resp.Header
}

func upload(t *testing.T, app *fiber.App) string {
	t.Helper()
	code, body, _ := do(t, app, multipartRequest(t, "/datasets", nil, "file", "survey.csv", []byte(surveyCSV(28))))
	if code != fiber.StatusCreated {
		t.Fatalf("upload status %d: %s", code, body)
	}
	return gjson.Get(body, "data.id").String()
}

func TestIndex(t *testing.T) {
	code, body, hdr := do(t, newApp(nil), httptest.NewRequest(http.MethodGet, "/", nil))
	if code != fiber.StatusOK || !strings.HasPrefix(hdr.Get("Content-Type"), "text/html") {
		t.Fatalf("status %d, type %q", code, hdr.Get("Content-Type"))
	}
	if !strings.Contains(body, `id="upload"`) {
		t.Error("upload form missing")
	}
}

func TestUploadAndSchools(t *testing.T) {
	app := newApp(nil)
	id := upload(t, app)

	code, body, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/datasets/"+id+"/schools", nil))
	if code != fiber.StatusOK {
		t.Fatalf("status %d: %s", code, body)
	}
	schools := gjson.Get(body, "data").Array()
	if len(schools) != 2 || schools[0].String() != "Alpha" {
		t.Errorf("schools = %s", gjson.Get(body, "data").Raw)
	}
}

func TestUploadErrors(t *testing.T) {
	app := newApp(nil)
	tests := []struct {
		name     string
		filename string
		data     string
		code     int
	}{
		{"too few columns", "survey.csv", surveyCSV(10), fiber.StatusBadRequest},
		{"unsupported", "survey.txt", "x", fiber.StatusBadRequest},
		{"too large", "survey.csv", strings.Repeat("a", 2<<20), fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body, _ := do(t, app, multipartRequest(t, "/datasets", nil, "file", tt.filename, []byte(tt.data)))
			if code != tt.code {
				t.Errorf("status %d, want %d: %s", code, tt.code, body)
			}
			if gjson.Get(body, "success").Bool() {
				t.Error("error envelope reports success")
			}
		})
	}

	code, _, _ := do(t, app, multipartRequest(t, "/datasets", nil, "", "", nil))
	if code != fiber.StatusBadRequest {
		t.Errorf("missing file: status %d", code)
	}
}

func TestDiscard(t *testing.T) {
	app := newApp(nil)
	id := upload(t, app)

	code, body, _ := do(t, app, httptest.NewRequest(http.MethodDelete, "/datasets/"+id, nil))
	if code != fiber.StatusOK {
		t.Fatalf("status %d: %s", code, body)
	}
	code, _, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/datasets/"+id+"/schools", nil))
	if code != fiber.StatusNotFound {
		t.Errorf("discarded dataset: status %d, want 404", code)
	}
	code, _, _ = do(t, app, httptest.NewRequest(http.MethodDelete, "/datasets/"+id, nil))
	if code != fiber.StatusNotFound {
		t.Errorf("second discard: status %d, want 404", code)
	}
}

func TestUnknownDataset(t *testing.T) {
	code, _, _ := do(t, newApp(nil), httptest.NewRequest(http.MethodGet, "/datasets/00000000-0000-0000-0000-000000000000/schools", nil))
	if code != fiber.StatusNotFound {
		t.Errorf("status %d, want 404", code)
	}
}

func TestInspect(t *testing.T) {
	app := newApp(nil)
	id := upload(t, app)

	code, body, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/datasets/"+id+"/inspect?school=Alpha&page_size=1", nil))
	if code != fiber.StatusOK {
		t.Fatalf("status %d: %s", code, body)
	}
	if gjson.Get(body, "data.aggregate.count").Int() != 2 {
		t.Errorf("aggregate = %s", gjson.Get(body, "data.aggregate").Raw)
	}
	if n := len(gjson.Get(body, "data.rows").Array()); n != 1 {
		t.Errorf("rows on page = %d, want 1", n)
	}
	if !gjson.Get(body, "pagination.has_more").Bool() {
		t.Error("expected another page")
	}
	// 20 x Often scores 15*4 + 5*2 = 70.
	if gjson.Get(body, "data.rows.0.total_score").Int() != 70 {
		t.Errorf("row = %s", gjson.Get(body, "data.rows.0").Raw)
	}

	code, body, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/datasets/"+id+"/inspect?school=Alpha&page=2&page_size=9223372036854775807", nil))
	if code != fiber.StatusOK {
		t.Fatalf("huge page size: status %d: %s", code, body)
	}
	if n := len(gjson.Get(body, "data.rows").Array()); n != 0 {
		t.Errorf("huge page size: rows on page 2 = %d, want 0", n)
	}

	code, _, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/datasets/"+id+"/inspect?school=Nowhere", nil))
	if code != fiber.StatusNotFound {
		t.Errorf("unknown school: status %d", code)
	}
}

func TestExport(t *testing.T) {
	app := newApp(nil)
	id := upload(t, app)
	code, _, hdr := do(t, app, httptest.NewRequest(http.MethodGet, "/datasets/"+id+"/export?school=Beta", nil))
	if code != fiber.StatusOK {
		t.Fatalf("status %d", code)
	}
	if !strings.Contains(hdr.Get("Content-Disposition"), "Beta_Report.xlsx") {
		t.Errorf("disposition = %q", hdr.Get("Content-Disposition"))
	}
}

func TestGenerateHTML(t *testing.T) {
	app := newApp(nil)
	id := upload(t, app)
	req := multipartRequest(t, "/datasets/"+id+"/reports", map[string]string{"school": "Alpha", "format": "html"}, "", "", nil)
	code, body, hdr := do(t, app, req)
	if code != fiber.StatusOK {
		t.Fatalf("status %d: %s", code, body)
	}
	if !strings.Contains(hdr.Get("Content-Disposition"), "Alpha_Report.html") {
		t.Errorf("disposition = %q", hdr.Get("Content-Disposition"))
	}
	if !strings.Contains(body, "<html") {
		t.Error("body is not the report")
	}
}

func TestGeneratePDF(t *testing.T) {
	app := newApp(stubRenderer{})
	id := upload(t, app)
	req := multipartRequest(t, "/datasets/"+id+"/reports", map[string]string{"school": "Beta", "format": "pdf"}, "logo", "logo.png", []byte("not an image"))
	code, body, hdr := do(t, app, req)
	if code != fiber.StatusOK {
		t.Fatalf("status %d: %s", code, body)
	}
	if hdr.Get("Content-Type") != "application/pdf" {
		t.Errorf("content type = %q", hdr.Get("Content-Type"))
	}
}

func TestGenerateErrors(t *testing.T) {
	app := newApp(stubRenderer{err: &service.RenderError{Stage: "print", Err: errors.New("chrome crashed")}})
	id := upload(t, app)

	tests := []struct {
		name   string
		fields map[string]string
		code   int
	}{
		{"bad format", map[string]string{"school": "Alpha", "format": "docx"}, fiber.StatusBadRequest},
		{"no school", map[string]string{"format": "html"}, fiber.StatusBadRequest},
		{"render failure", map[string]string{"school": "Alpha", "format": "pdf"}, fiber.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body, _ := do(t, app, multipartRequest(t, "/datasets/"+id+"/reports", tt.fields, "", "", nil))
			if code != tt.code {
				t.Errorf("status %d, want %d: %s", code, tt.code, body)
			}
		})
	}
}
