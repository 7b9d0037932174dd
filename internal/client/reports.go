package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"tusep-web/internal/models"
)

func (c *Client) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var out models.DashboardStats
	err := c.get(ctx, "/dashboard/stats", nil, &out)
	return out, err
}

func (c *Client) SystemStats(ctx context.Context) (models.SystemStats, error) {
	var out models.SystemStats
	err := c.get(ctx, "/quality/system-stats", nil, &out)
	return out, err
}

func (c *Client) AllLogs(ctx context.Context) ([]models.ActivityLog, error) {
	var out []models.ActivityLog
	err := c.get(ctx, "/quality/all-logs", nil, &out)
	return out, err
}

func (c *Client) BreakdownFrequency(ctx context.Context) ([]models.BreakdownFrequencyRow, error) {
	var out []models.BreakdownFrequencyRow
	err := c.get(ctx, "/reports/breakdown-frequency", nil, &out)
	return out, err
}

func (c *Client) InterventionDuration(ctx context.Context) ([]models.InterventionDurationRow, error) {
	var out []models.InterventionDurationRow
	err := c.get(ctx, "/reports/intervention-duration", nil, &out)
	return out, err
}

func (c *Client) TechnicianPerformance(ctx context.Context) ([]models.TechnicianPerformanceRow, error) {
	var out []models.TechnicianPerformanceRow
	err := c.get(ctx, "/reports/technician-performance", nil, &out)
	return out, err
}

// ExcelReport opens the generated workbook. The caller must close the body.
func (c *Client) ExcelReport(ctx context.Context, report models.ExcelReport, year int) (io.ReadCloser, error) {
	q := url.Values{"year": {strconv.Itoa(year)}}
	req, err := c.newRequest(ctx, http.MethodGet, "/reports/excel/"+url.PathEscape(string(report)), q, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
