// Package reports downloads the backend's Excel workbooks, optionally
// archives them, and renders a quick textual preview.
package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tusep-web/config"
	"tusep-web/internal/models"

	"github.com/sirupsen/logrus"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxWorkbookSize bounds what is buffered from the backend.
const maxWorkbookSize = 32 << 20

// ErrWorkbookTooLarge is returned instead of a truncated workbook.
var ErrWorkbookTooLarge = errors.New("workbook exceeds size limit")

type ExcelAPI interface {
	ExcelReport(ctx context.Context, report models.ExcelReport, year int) (io.ReadCloser, error)
}

// Archiver stores a copy of each downloaded workbook.
type Archiver interface {
	UploadFile(ctx context.Context, body io.Reader, objectKey, contentType string) (string, error)
}

// FileName is the name a workbook is saved under: {reportType}_{year}.xlsx.
func FileName(report models.ExcelReport, year int) string {
	return fmt.Sprintf("%s_%d.xlsx", report, year)
}

// ParseYear reads a year parameter; an empty value means the current year.
func ParseYear(raw string, now time.Time) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Year(), nil
	}
	y, err := strconv.Atoi(raw)
	if err != nil || y < 2000 || y > 9999 {
		return 0, fmt.Errorf("invalid year %q", raw)
	}
	return y, nil
}

type Workbook struct {
	Report     models.ExcelReport
	Year       int
	Name       string
	Data       []byte
	ArchiveURL string
}

type Downloader struct {
	api     ExcelAPI
	archive Archiver
	prefix  string
	logger  *logrus.Logger
	now     func() time.Time
	maxSize int64
}

// NewDownloader returns a downloader. archive may be nil.
func NewDownloader(api ExcelAPI, archive Archiver, prefix string) *Downloader {
	return &Downloader{api: api, archive: archive, prefix: strings.Trim(prefix, "/"), logger: config.GetLogger(), now: time.Now, maxSize: maxWorkbookSize}
}

// Fetch downloads the workbook. An archive failure is logged and does not
// fail the download.
func (d *Downloader) Fetch(ctx context.Context, report models.ExcelReport, year int) (Workbook, error) {
	if _, ok := models.ParseExcelReport(string(report)); !ok {
		return Workbook{}, fmt.Errorf("unknown report type %q", report)
	}
	body, err := d.api.ExcelReport(ctx, report, year)
	if err != nil {
		return Workbook{}, err
	}
	defer body.Close()
	data, err := io.ReadAll(io.LimitReader(body, d.maxSize+1))
	if err != nil {
		return Workbook{}, fmt.Errorf("read workbook: %w", err)
	}
	if int64(len(data)) > d.maxSize {
		return Workbook{}, fmt.Errorf("%s %d: %w (%d bytes)", report, year, ErrWorkbookTooLarge, d.maxSize)
	}

	wb := Workbook{Report: report, Year: year, Name: FileName(report, year), Data: data}
	if d.archive != nil {
		key := d.archiveKey(wb)
		url, err := d.archive.UploadFile(ctx, bytes.NewReader(data), key, ContentType)
		if err != nil {
			config.LogError(d.logger, "reports", "Fetch", "archive workbook", key, err)
		} else {
			wb.ArchiveURL = url
		}
	}
	return wb, nil
}

func (d *Downloader) archiveKey(wb Workbook) string {
	name := fmt.Sprintf("%s/%d/%s_%s", wb.Report, wb.Year, d.now().UTC().Format("20060102T150405Z"), wb.Name)
	if d.prefix == "" {
		return name
	}
	return d.prefix + "/" + name
}

// Save downloads the workbook into dir and returns the written path.
func (d *Downloader) Save(ctx context.Context, dir string, report models.ExcelReport, year int) (Workbook, string, error) {
	wb, err := d.Fetch(ctx, report, year)
	if err != nil {
		return Workbook{}, "", err
	}
	path := filepath.Join(dir, wb.Name)
	if err := os.WriteFile(path, wb.Data, 0o644); err != nil {
		return Workbook{}, "", fmt.Errorf("save workbook: %w", err)
	}
	return wb, path, nil
}
