// internal/models/report.go
package models

type BreakdownFrequencyRow struct {
	DeviceCode         string  `json:"device_code"`
	DeviceType         string  `json:"device_type"`
	Location           string  `json:"location"`
	TotalFailures      int     `json:"total_failures"`
	OperatingHours     float64 `json:"operating_hours"`
	BreakdownFrequency float64 `json:"breakdown_frequency"`
}

type InterventionDurationRow struct {
	DeviceCode           string  `json:"device_code"`
	DeviceType           string  `json:"device_type"`
	TotalInterventions   int     `json:"total_interventions"`
	AverageDurationHours float64 `json:"average_duration_hours"`
}

type TechnicianPerformanceRow struct {
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	TotalAssigned     int     `json:"total_assigned"`
	Completed         int     `json:"completed"`
	SuccessfulRepairs int     `json:"successful_repairs"`
	FailedRepairs     int     `json:"failed_repairs"`
	SuccessRate       float64 `json:"success_rate"`
}

// ExcelReport names a workbook the backend can generate.
type ExcelReport string

const (
	ReportDeviceFailureFrequency ExcelReport = "device-failure-frequency"
	ReportInterventionDuration   ExcelReport = "intervention-duration"
	ReportFacilityIssues         ExcelReport = "facility-issues"
)

var ExcelReports = []ExcelReport{
	ReportDeviceFailureFrequency, ReportInterventionDuration, ReportFacilityIssues,
}

func ParseExcelReport(s string) (ExcelReport, bool) {
	for _, r := range ExcelReports {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}
