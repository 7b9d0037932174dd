// internal/models/device.go
package models

// DefaultOperatingHours is one year of continuous operation.
const DefaultOperatingHours = 8760

type Device struct {
	ID                  string    `json:"id"`
	Code                string    `json:"code"`
	Type                string    `json:"type"`
	Location            string    `json:"location"`
	TotalFailures       int       `json:"total_failures"`
	TotalOperatingHours float64   `json:"total_operating_hours"`
	TotalRepairHours    float64   `json:"total_repair_hours"`
	MTBF                float64   `json:"mtbf"`
	MTTR                float64   `json:"mttr"`
	Availability        float64   `json:"availability"`
	CreatedAt           Timestamp `json:"created_at"`
}

// DeviceInput is the body of POST /devices.
type DeviceInput struct {
	Code                string  `json:"code" validate:"required"`
	Type                string  `json:"type" validate:"required"`
	Location            string  `json:"location" validate:"required"`
	TotalOperatingHours float64 `json:"total_operating_hours" validate:"gt=0"`
}
