// internal/models/fault.go
package models

type FaultStatus string

const (
	FaultOpen       FaultStatus = "open"
	FaultInProgress FaultStatus = "in_progress"
	FaultClosed     FaultStatus = "closed"
)

var faultStatusLabels = map[FaultStatus]string{
	FaultOpen:       "Açık",
	FaultInProgress: "Devam Ediyor",
	FaultClosed:     "Kapatıldı",
}

func (s FaultStatus) Label() string {
	if l, ok := faultStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

type RepairCategory string

const (
	CategoryPartReplacement RepairCategory = "part_replacement"
	CategoryAdjustment      RepairCategory = "adjustment"
	CategoryCompleteRepair  RepairCategory = "complete_repair"
	CategoryOther           RepairCategory = "other"
)

// RepairCategories is the closed set offered when ending a repair.
var RepairCategories = []RepairCategory{
	CategoryPartReplacement, CategoryAdjustment, CategoryCompleteRepair, CategoryOther,
}

var categoryLabels = map[RepairCategory]string{
	CategoryPartReplacement: "Parça Değişimi",
	CategoryAdjustment:      "Ayar",
	CategoryCompleteRepair:  "Komple Onarım",
	CategoryOther:           "Diğer",
}

func (c RepairCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

type Fault struct {
	ID                 string         `json:"id"`
	DeviceID           string         `json:"device_id"`
	DeviceCode         string         `json:"device_code"`
	DeviceType         string         `json:"device_type"`
	Description        string         `json:"description"`
	Status             FaultStatus    `json:"status"`
	CreatedBy          string         `json:"created_by"`
	CreatedByName      string         `json:"created_by_name"`
	CreatedAt          Timestamp      `json:"created_at"`
	AssignedTo         string         `json:"assigned_to,omitempty"`
	AssignedToName     string         `json:"assigned_to_name,omitempty"`
	RepairStart        Timestamp      `json:"repair_start"`
	RepairEnd          Timestamp      `json:"repair_end"`
	RepairDuration     *float64       `json:"repair_duration,omitempty"`
	RepairNotes        string         `json:"repair_notes,omitempty"`
	RepairCategory     RepairCategory `json:"repair_category,omitempty"`
	BreakdownIteration int            `json:"breakdown_iteration"`
	ConfirmedBy        string         `json:"confirmed_by,omitempty"`
	ConfirmedAt        Timestamp      `json:"confirmed_at"`
}

func (f Fault) Started() bool { return !f.RepairStart.IsZero() }
func (f Fault) Ended() bool   { return !f.RepairEnd.IsZero() }

// FaultInput is the body of POST /faults.
type FaultInput struct {
	DeviceID    string `json:"device_id" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// AssignInput is the body of POST /faults/{id}/assign.
type AssignInput struct {
	AssignedTo string `json:"assigned_to" validate:"required"`
}

// EndRepairInput is the body of POST /faults/{id}/end-repair.
type EndRepairInput struct {
	RepairNotes    string         `json:"repair_notes" validate:"required,min=20"`
	RepairCategory RepairCategory `json:"repair_category" validate:"required,oneof=part_replacement adjustment complete_repair other"`
}
