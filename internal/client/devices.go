package client

import (
	"context"
	"net/url"

	"tusep-web/internal/models"
)

func (c *Client) Devices(ctx context.Context) ([]models.Device, error) {
	var out []models.Device
	err := c.get(ctx, "/devices", nil, &out)
	return out, err
}

func (c *Client) Device(ctx context.Context, id string) (models.Device, error) {
	var out models.Device
	err := c.get(ctx, "/devices/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) DeviceFaults(ctx context.Context, id string) ([]models.Fault, error) {
	var out []models.Fault
	err := c.get(ctx, "/devices/"+url.PathEscape(id)+"/faults", nil, &out)
	return out, err
}

func (c *Client) CreateDevice(ctx context.Context, in models.DeviceInput) (models.Device, error) {
	var out models.Device
	err := c.post(ctx, "/devices", in, &out)
	return out, err
}
