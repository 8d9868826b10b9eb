package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/stress-manometer/internal/chart"
	"github.com/fadilmartias/stress-manometer/internal/config"
	"github.com/fadilmartias/stress-manometer/internal/model"
	"github.com/fadilmartias/stress-manometer/internal/report"
	"github.com/fadilmartias/stress-manometer/internal/repository"
	"github.com/fadilmartias/stress-manometer/internal/scoring"
	"github.com/fadilmartias/stress-manometer/internal/service"
	"github.com/fadilmartias/stress-manometer/internal/util"
	"github.com/google/uuid"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

var (
	ErrInvalidFormat  = errors.New("format must be html or pdf")
	ErrSchoolRequired = errors.New("school is required")
)

// ParseFormat accepts html or pdf in any case. Empty means html.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatHTML:
		return FormatHTML, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Logo is an optional uploaded school logo.
type Logo struct {
	Filename string
	Data     []byte
}

// Artifact is a finished download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ReportRequest struct {
	School string
	Format Format
	Logo   *Logo
}

type ReportUsecase struct {
	datasets  *repository.DatasetRepository
	narrative service.NarrativeGenerator
	renderer  service.PDFRenderer
	profile   config.ReportProfile
}

func NewReportUsecase(datasets *repository.DatasetRepository, narrative service.NarrativeGenerator, renderer service.PDFRenderer, profile config.ReportProfile) *ReportUsecase {
	return &ReportUsecase{datasets: datasets, narrative: narrative, renderer: renderer, profile: profile}
}

// Upload parses a survey sheet and keeps it for later requests.
func (uc *ReportUsecase) Upload(filename string, r io.Reader) (*model.Dataset, error) {
	ds, err := util.LoadDataset(filename, r)
	if err != nil {
		return nil, err
	}
	if err := uc.datasets.Create(ds); err != nil {
		return nil, fmt.Errorf("failed to store dataset: %w", err)
	}
	log.Printf("Dataset %s loaded from %s: %d rows, %d schools", ds.ID, ds.Filename, len(ds.Responses), len(ds.Schools))
	return ds, nil
}

// Dataset looks up a stored dataset. A malformed id is reported as not found.
func (uc *ReportUsecase) Dataset(id string) (*model.Dataset, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, repository.ErrDatasetNotFound
	}
	return uc.datasets.FindByID(uid)
}

// Discard drops a stored dataset before its TTL runs out.
func (uc *ReportUsecase) Discard(id string) error {
	ds, err := uc.Dataset(id)
	if err != nil {
		return err
	}
	uc.datasets.Delete(ds.ID)
	log.Printf("Dataset %s discarded", ds.ID)
	return nil
}

func (uc *ReportUsecase) Inspect(id, school string) (*model.SchoolAggregate, []model.ScoredResponse, error) {
	ds, err := uc.Dataset(id)
	if err != nil {
		return nil, nil, err
	}
	return InspectDataset(ds, school)
}

func (uc *ReportUsecase) Export(id, school string) (*Artifact, error) {
	ds, err := uc.Dataset(id)
	if err != nil {
		return nil, err
	}
	return ExportDataset(ds, school)
}

func (uc *ReportUsecase) Generate(ctx context.Context, id string, req ReportRequest) (*Artifact, error) {
	ds, err := uc.Dataset(id)
	if err != nil {
		return nil, err
	}
	return uc.GenerateReport(ctx, ds, req)
}

// InspectDataset scores the school's rows and aggregates them.
func InspectDataset(ds *model.Dataset, school string) (*model.SchoolAggregate, []model.ScoredResponse, error) {
	school = strings.TrimSpace(school)
	if school == "" {
		return nil, nil, ErrSchoolRequired
	}
	rows := scoring.FilterSchool(scoring.ScoreAll(ds.Responses), school)
	agg, err := scoring.Aggregate(school, rows)
	if err != nil {
		return nil, nil, err
	}
	return agg, rows, nil
}

// ExportDataset writes the scored rows of one school, or of every school
// when school is empty, as a workbook.
func ExportDataset(ds *model.Dataset, school string) (*Artifact, error) {
	rows := scoring.ScoreAll(ds.Responses)
	name := strings.TrimSuffix(ds.Filename, filepath.Ext(ds.Filename))
	if school = strings.TrimSpace(school); school != "" {
		rows = scoring.FilterSchool(rows, school)
		if len(rows) == 0 {
			return nil, fmt.Errorf("%w: %q", scoring.ErrNoSchoolData, school)
		}
		name = school
	}
	if name == "" {
		name = "survey"
	}

	var buf bytes.Buffer
	if err := util.WriteScoredWorkbook(&buf, ds.Header, rows); err != nil {
		return nil, err
	}
	return &Artifact{
		Filename:    report.Filename(name, "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

// GenerateReport runs the whole pipeline for one school: score, aggregate,
// chart, narrative, assemble and, for PDF, render.
func (uc *ReportUsecase) GenerateReport(ctx context.Context, ds *model.Dataset, req ReportRequest) (*Artifact, error) {
	start := time.Now()
	agg, _, err := InspectDataset(ds, req.School)
	if err != nil {
		return nil, err
	}
	school := agg.School

	png, err := chart.BarChart(agg.Percentages)
	if err != nil {
		return nil, fmt.Errorf("failed to draw chart: %w", err)
	}
	logo, err := uc.logoURI(school, req.Logo)
	if err != nil {
		return nil, err
	}

	narrative := uc.narrative.Generate(ctx, school, agg)

	html, err := report.Render(report.Input{
		School:    school,
		LogoURI:   logo,
		ChartURI:  util.DataURI("image/png", png),
		Aggregate: agg,
		Narrative: narrative,
		Profile:   uc.profile,
	})
	if err != nil {
		return nil, err
	}

	var artifact *Artifact
	switch req.Format {
	case FormatPDF:
		if uc.renderer == nil {
			return nil, &service.RenderError{Stage: "setup", Err: errors.New("no pdf renderer configured")}
		}
		pdf, err := uc.renderer.Render(ctx, html)
		if err != nil {
			return nil, err
		}
		artifact = &Artifact{Filename: report.Filename(school, "pdf"), ContentType: "application/pdf", Data: pdf}
	default:
		artifact = &Artifact{Filename: report.Filename(school, "html"), ContentType: "text/html; charset=utf-8", Data: []byte(html)}
	}

	log.Printf("Report for %q (%d students, narrative %s) built as %s in %v", school, agg.Count, narrative.Source, artifact.Filename, time.Since(start))
	return artifact, nil
}

// logoURI returns the uploaded logo, or the school monogram when there is
// none or it cannot be decoded.
func (uc *ReportUsecase) logoURI(school string, logo *Logo) (string, error) {
	if logo != nil && len(logo.Data) > 0 {
		uri, err := util.LogoDataURI(logo.Filename, logo.Data)
		if err == nil {
			return uri, nil
		}
		log.Printf("Warning: ignoring logo %q: %v", logo.Filename, err)
	}
	png, err := chart.Monogram(school)
	if err != nil {
		return "", fmt.Errorf("failed to draw monogram: %w", err)
	}
	return util.DataURI("image/png", png), nil
}
