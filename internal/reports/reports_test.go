package reports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tusep-web/internal/models"

	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetRow("Sheet1", "A1", &[]any{"Cihaz Kodu", "Arıza Sayısı"})
	f.SetSheetRow("Sheet1", "A2", &[]any{"VNT-07", 3})
	f.SetSheetRow("Sheet1", "A3", &[]any{"MR-01", 1})
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type fakeExcel struct {
	data []byte
	err  error
	year int
}

func (f *fakeExcel) ExcelReport(_ context.Context, _ models.ExcelReport, year int) (io.ReadCloser, error) {
	f.year = year
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

type fakeArchive struct {
	key string
	err error
}

func (a *fakeArchive) UploadFile(_ context.Context, body io.Reader, key, contentType string) (string, error) {
	a.key = key
	if a.err != nil {
		return "", a.err
	}
	io.Copy(io.Discard, body)
	return "https://cdn/" + key, nil
}

func TestFileName(t *testing.T) {
	if got := FileName(models.ReportFacilityIssues, 2024); got != "facility-issues_2024.xlsx" {
		t.Fatalf("FileName = %q", got)
	}
}

func TestParseYear(t *testing.T) {
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	if y, _ := ParseYear("", now); y != 2026 {
		t.Fatalf("default year = %d", y)
	}
	if y, err := ParseYear("2023", now); err != nil || y != 2023 {
		t.Fatalf("ParseYear = %d %v", y, err)
	}
	for _, bad := range []string{"abc", "99", "20234"} {
		if _, err := ParseYear(bad, now); err == nil {
			t.Fatalf("ParseYear(%q) accepted", bad)
		}
	}
}

func TestSaveWritesNamedFileAndArchives(t *testing.T) {
	api := &fakeExcel{data: workbook(t)}
	arch := &fakeArchive{}
	d := NewDownloader(api, arch, "/reports/")
	d.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	dir := t.TempDir()
	wb, path, err := d.Save(context.Background(), dir, models.ReportDeviceFailureFrequency, 2025)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "device-failure-frequency_2025.xlsx" {
		t.Fatalf("path = %s", path)
	}
	if b, _ := os.ReadFile(path); !bytes.Equal(b, api.data) {
		t.Fatal("saved bytes differ")
	}
	if arch.key != "reports/device-failure-frequency/2025/20250102T030405Z_device-failure-frequency_2025.xlsx" {
		t.Fatalf("archive key = %q", arch.key)
	}
	if !strings.HasPrefix(wb.ArchiveURL, "https://cdn/") {
		t.Fatalf("archive url = %q", wb.ArchiveURL)
	}
}

func TestArchiveFailureDoesNotFailDownload(t *testing.T) {
	d := NewDownloader(&fakeExcel{data: []byte("x")}, &fakeArchive{err: errors.New("denied")}, "")
	wb, err := d.Fetch(context.Background(), models.ReportInterventionDuration, 2025)
	if err != nil || wb.ArchiveURL != "" || string(wb.Data) != "x" {
		t.Fatalf("Fetch = %+v, %v", wb, err)
	}
}

func TestFetchRefusesOversizedWorkbook(t *testing.T) {
	arch := &fakeArchive{}
	d := NewDownloader(&fakeExcel{data: bytes.Repeat([]byte("x"), 11)}, arch, "")
	d.maxSize = 10
	if _, err := d.Fetch(context.Background(), models.ReportFacilityIssues, 2025); !errors.Is(err, ErrWorkbookTooLarge) {
		t.Fatalf("err = %v", err)
	}
	if arch.key != "" {
		t.Fatal("oversized workbook archived")
	}

	d = NewDownloader(&fakeExcel{data: bytes.Repeat([]byte("x"), 10)}, nil, "")
	d.maxSize = 10
	if wb, err := d.Fetch(context.Background(), models.ReportFacilityIssues, 2025); err != nil || len(wb.Data) != 10 {
		t.Fatalf("workbook at the limit: %d bytes, %v", len(wb.Data), err)
	}
}

func TestFetchRejectsUnknownType(t *testing.T) {
	api := &fakeExcel{}
	if _, err := NewDownloader(api, nil, "").Fetch(context.Background(), "payroll", 2025); err == nil {
		t.Fatal("unknown report accepted")
	}
	if api.year != 0 {
		t.Fatal("request issued for unknown report")
	}
}

func TestPreview(t *testing.T) {
	sheets, err := Preview(workbook(t), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(sheets) != 1 || sheets[0].TotalRows != 3 || len(sheets[0].Rows) != 2 {
		t.Fatalf("sheets = %+v", sheets)
	}
	if sheets[0].Rows[1][0] != "VNT-07" {
		t.Fatalf("row = %v", sheets[0].Rows[1])
	}
	if _, err := Preview([]byte("not a workbook"), 5); err == nil {
		t.Fatal("garbage parsed as workbook")
	}
}
