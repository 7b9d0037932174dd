package client

import (
	"context"
	"net/url"

	"tusep-web/internal/models"
)

// Faults lists the faults visible to the caller. An empty status lists all.
func (c *Client) Faults(ctx context.Context, status models.FaultStatus) ([]models.Fault, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {string(status)}}
	}
	var out []models.Fault
	err := c.get(ctx, "/faults", q, &out)
	return out, err
}

// AllFaults is the manager/quality view across every reporter.
func (c *Client) AllFaults(ctx context.Context) ([]models.Fault, error) {
	var out []models.Fault
	err := c.get(ctx, "/faults/all", nil, &out)
	return out, err
}

func (c *Client) Fault(ctx context.Context, id string) (models.Fault, error) {
	var out models.Fault
	err := c.get(ctx, faultPath(id, ""), nil, &out)
	return out, err
}

func (c *Client) CreateFault(ctx context.Context, in models.FaultInput) (models.Fault, error) {
	var out models.Fault
	err := c.post(ctx, "/faults", in, &out)
	return out, err
}

func (c *Client) AssignFault(ctx context.Context, id string, in models.AssignInput) error {
	return c.post(ctx, faultPath(id, "/assign"), in, nil)
}

func (c *Client) StartRepair(ctx context.Context, id string) error {
	return c.post(ctx, faultPath(id, "/start-repair"), nil, nil)
}

func (c *Client) EndRepair(ctx context.Context, id string, in models.EndRepairInput) error {
	return c.post(ctx, faultPath(id, "/end-repair"), in, nil)
}

func (c *Client) ConfirmFault(ctx context.Context, id string) error {
	return c.post(ctx, faultPath(id, "/confirm"), nil, nil)
}

func faultPath(id, action string) string {
	return "/faults/" + url.PathEscape(id) + action
}
