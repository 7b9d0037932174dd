// internal/models/stats.go
package models

type DashboardStats struct {
	TotalDevices         int      `json:"total_devices"`
	TotalFaults          int      `json:"total_faults"`
	OpenFaults           int      `json:"open_faults"`
	InProgressFaults     int      `json:"in_progress_faults"`
	ClosedFaults         int      `json:"closed_faults"`
	AvgMTBF              float64  `json:"avg_mtbf"`
	AvgMTTR              float64  `json:"avg_mttr"`
	AvgAvailability      float64  `json:"avg_availability"`
	MostReliableDevices  []Device `json:"most_reliable_devices"`
	LeastReliableDevices []Device `json:"least_reliable_devices"`
}

type SystemStats struct {
	TotalUsers       int `json:"total_users"`
	TotalDevices     int `json:"total_devices"`
	TotalFaults      int `json:"total_faults"`
	TotalTransfers   int `json:"total_transfers"`
	PendingTransfers int `json:"pending_transfers"`
}

// ActivityLog is one audit entry from /quality/all-logs.
type ActivityLog struct {
	ID        string    `json:"id"`
	RecordID  string    `json:"record_id"`
	Event     string    `json:"event"`
	Timestamp Timestamp `json:"timestamp"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
}
