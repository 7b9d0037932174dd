package client

import (
	"context"
	"net/url"

	"tusep-web/internal/models"
)

func (c *Client) Transfers(ctx context.Context, status models.TransferStatus) ([]models.Transfer, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {string(status)}}
	}
	var out []models.Transfer
	err := c.get(ctx, "/transfers", q, &out)
	return out, err
}

func (c *Client) CreateTransfer(ctx context.Context, in models.TransferInput) (models.Transfer, error) {
	var out models.Transfer
	err := c.post(ctx, "/transfers", in, &out)
	return out, err
}

func (c *Client) ApproveTransfer(ctx context.Context, id string) error {
	return c.post(ctx, "/transfers/"+url.PathEscape(id)+"/approve", nil, nil)
}

func (c *Client) RejectTransfer(ctx context.Context, id string, in models.RejectInput) error {
	return c.post(ctx, "/transfers/"+url.PathEscape(id)+"/reject", in, nil)
}
