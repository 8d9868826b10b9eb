package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/stress-manometer/internal/chart"
	"github.com/fadilmartias/stress-manometer/internal/config"
	"github.com/fadilmartias/stress-manometer/internal/model"
	"github.com/fadilmartias/stress-manometer/internal/report"
	"github.com/fadilmartias/stress-manometer/internal/repository"
	"github.com/fadilmartias/stress-manometer/internal/scoring"
	"github.com/fadilmartias/stress-manometer/internal/service"
	"github.com/fadilmartias/stress-manometer/internal/util"
	"github.com/xuri/excelize/v2"
)

type fakeRenderer struct {
	html string
	err  error
}

func (r *fakeRenderer) Render(_ context.Context, html string) ([]byte, error) {
	r.html = html
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

func surveyCSV(schools ...string) string {
	var sb strings.Builder
	sb.WriteString("sname,class,section,gender,age,board,city,date")
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&sb, ",q%d", i)
	}
	sb.WriteString("\n")
	answers := []string{"Always", "Often", "Sometimes", "Rarely", "Never"}
	for i, s := range schools {
		sb.WriteString(s + ",10,A,F,15,CBSE,Delhi,2026-01-10")
		for q := 0; q < 20; q++ {
			sb.WriteString("," + answers[i%len(answers)])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func newUsecase(t *testing.T, renderer service.PDFRenderer) (*ReportUsecase, *model.Dataset) {
	t.Helper()
	uc := NewReportUsecase(
		repository.NewDatasetRepository(time.Hour),
		service.NewNarrativeService(nil, config.DefaultReportProfile().Benchmarks, 0),
		renderer,
		config.DefaultReportProfile(),
	)
	ds, err := uc.Upload("survey.csv", strings.NewReader(surveyCSV("Alpha", "Alpha", "Beta", "Alpha")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	return uc, ds
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		err  bool
	}{
		{"", FormatHTML, false},
		{"HTML", FormatHTML, false},
		{" pdf ", FormatPDF, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.err {
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("%q: expected ErrInvalidFormat, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%q: got %q, %v", tt.in, got, err)
		}
	}
}

func TestUploadAndLookup(t *testing.T) {
	uc, ds := newUsecase(t, nil)
	if len(ds.Schools) != 2 || ds.Schools[0] != "Alpha" || ds.Schools[1] != "Beta" {
		t.Fatalf("schools = %v", ds.Schools)
	}
	got, err := uc.Dataset(ds.ID.String())
	if err != nil || got != ds {
		t.Fatalf("Dataset: %v", err)
	}
	if _, err := uc.Dataset("not-a-uuid"); !errors.Is(err, repository.ErrDatasetNotFound) {
		t.Errorf("malformed id: expected ErrDatasetNotFound, got %v", err)
	}
}

func TestDiscard(t *testing.T) {
	uc, ds := newUsecase(t, nil)
	if err := uc.Discard(ds.ID.String()); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Dataset(ds.ID.String()); !errors.Is(err, repository.ErrDatasetNotFound) {
		t.Errorf("expected ErrDatasetNotFound after discard, got %v", err)
	}
}

func TestInspect(t *testing.T) {
	uc, ds := newUsecase(t, nil)
	agg, rows, err := uc.Inspect(ds.ID.String(), "Alpha")
	if err != nil {
		t.Fatal(err)
	}
	if agg.Count != 3 || len(rows) != 3 {
		t.Fatalf("count = %d, rows = %d", agg.Count, len(rows))
	}
	if _, _, err := uc.Inspect(ds.ID.String(), "Gamma"); !errors.Is(err, scoring.ErrNoSchoolData) {
		t.Errorf("unknown school: expected ErrNoSchoolData, got %v", err)
	}
	if _, _, err := uc.Inspect(ds.ID.String(), " "); !errors.Is(err, ErrSchoolRequired) {
		t.Errorf("blank school: expected ErrSchoolRequired, got %v", err)
	}
}

func TestExport(t *testing.T) {
	uc, ds := newUsecase(t, nil)
	art, err := uc.Export(ds.ID.String(), "Alpha")
	if err != nil {
		t.Fatal(err)
	}
	if art.Filename != "Alpha_Report.xlsx" {
		t.Errorf("filename = %q", art.Filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(art.Data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(rows))
	}
	last := rows[0][len(rows[0])-1]
	if last != "category" {
		t.Errorf("last header = %q", last)
	}

	all, err := uc.Export(ds.ID.String(), "")
	if err != nil {
		t.Fatal(err)
	}
	if all.Filename != "survey_Report.xlsx" {
		t.Errorf("whole-dataset filename = %q", all.Filename)
	}
}

func TestGenerateHTML(t *testing.T) {
	uc, ds := newUsecase(t, nil)
	art, err := uc.Generate(context.Background(), ds.ID.String(), ReportRequest{School: "Alpha", Format: FormatHTML})
	if err != nil {
		t.Fatal(err)
	}
	if art.Filename != "Alpha_Report.html" || !strings.HasPrefix(art.ContentType, "text/html") {
		t.Errorf("artifact = %s (%s)", art.Filename, art.ContentType)
	}
	html := string(art.Data)
	if toks := report.Placeholders(html); len(toks) != 0 {
		t.Errorf("unresolved tokens: %v", toks)
	}
	if !strings.Contains(html, "Alpha") || !strings.Contains(html, "data:image/png;base64,") {
		t.Error("report is missing the school name or chart")
	}
}

func TestGeneratePDF(t *testing.T) {
	r := &fakeRenderer{}
	uc, ds := newUsecase(t, r)
	art, err := uc.Generate(context.Background(), ds.ID.String(), ReportRequest{School: "Beta", Format: FormatPDF})
	if err != nil {
		t.Fatal(err)
	}
	if art.Filename != "Beta_Report.pdf" || art.ContentType != "application/pdf" {
		t.Errorf("artifact = %s (%s)", art.Filename, art.ContentType)
	}
	if !strings.Contains(r.html, "Beta") {
		t.Error("renderer did not receive the assembled report")
	}
}

func TestGeneratePDFRenderFailure(t *testing.T) {
	r := &fakeRenderer{err: &service.RenderError{Stage: "print", Err: errors.New("crashed")}}
	uc, ds := newUsecase(t, r)
	_, err := uc.Generate(context.Background(), ds.ID.String(), ReportRequest{School: "Beta", Format: FormatPDF})
	var renderErr *service.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected *RenderError, got %v", err)
	}
}

func TestGeneratePDFWithoutRenderer(t *testing.T) {
	uc, ds := newUsecase(t, nil)
	_, err := uc.Generate(context.Background(), ds.ID.String(), ReportRequest{School: "Beta", Format: FormatPDF})
	var renderErr *service.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected *RenderError, got %v", err)
	}
}

func TestLogoFallsBackToMonogram(t *testing.T) {
	uc, _ := newUsecase(t, nil)
	mono, err := chart.Monogram("Alpha")
	if err != nil {
		t.Fatal(err)
	}
	want := util.DataURI("image/png", mono)

	got, err := uc.logoURI("Alpha", &Logo{Filename: "logo.png", Data: []byte("garbage")})
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Error("invalid logo should fall back to the monogram")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	got, err = uc.logoURI("Alpha", &Logo{Filename: "logo.png", Data: buf.Bytes()})
	if err != nil {
		t.Fatal(err)
	}
	if got != util.DataURI("image/png", buf.Bytes()) {
		t.Error("valid logo should be embedded as uploaded")
	}
}
