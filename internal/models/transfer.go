// internal/models/transfer.go
package models

type TransferStatus string

const (
	TransferPending   TransferStatus = "pending"
	TransferApproved  TransferStatus = "approved"
	TransferRejected  TransferStatus = "rejected"
	TransferCompleted TransferStatus = "completed"
)

var transferStatusLabels = map[TransferStatus]string{
	TransferPending:   "Beklemede",
	TransferApproved:  "Onaylandı",
	TransferRejected:  "Reddedildi",
	TransferCompleted: "Tamamlandı",
}

func (s TransferStatus) Label() string {
	if l, ok := transferStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

type Transfer struct {
	ID              string         `json:"id"`
	DeviceID        string         `json:"device_id"`
	DeviceCode      string         `json:"device_code"`
	DeviceType      string         `json:"device_type"`
	FromLocation    string         `json:"from_location"`
	ToLocation      string         `json:"to_location"`
	RequestedBy     string         `json:"requested_by"`
	RequestedByName string         `json:"requested_by_name"`
	RequestedAt     Timestamp      `json:"requested_at"`
	Reason          string         `json:"reason"`
	Status          TransferStatus `json:"status"`
	ApprovedBy      string         `json:"approved_by,omitempty"`
	ApprovedByName  string         `json:"approved_by_name,omitempty"`
	ApprovedAt      Timestamp      `json:"approved_at"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	CompletedAt     Timestamp      `json:"completed_at"`
}

// TransferInput is the body of POST /transfers.
type TransferInput struct {
	DeviceID   string `json:"device_id" validate:"required"`
	ToLocation string `json:"to_location" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

// RejectInput is the body of POST /transfers/{id}/reject.
type RejectInput struct {
	RejectionReason string `json:"rejection_reason" validate:"required"`
}
