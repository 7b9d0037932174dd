package gate

import "tusep-web/internal/models"

// Viewer is the identity the predicates are evaluated for.
type Viewer struct {
	ID   string
	Role models.Role
}

func ViewerOf(u models.User) Viewer { return Viewer{ID: u.ID, Role: u.Role} }

// Action is a row-level command on a fault or transfer.
type Action string

const (
	ActionAssign      Action = "assign"
	ActionStartRepair Action = "start_repair"
	ActionEndRepair   Action = "end_repair"
	ActionConfirm     Action = "confirm"
	ActionApprove     Action = "approve"
	ActionReject      Action = "reject"
)

func CanAssign(v Viewer, f models.Fault) bool {
	return v.Role == models.RoleManager && f.Status == models.FaultOpen
}

func CanStartRepair(v Viewer, f models.Fault) bool {
	return v.Role == models.RoleTechnician &&
		isAssignee(v, f) &&
		f.Status == models.FaultInProgress &&
		!f.Started()
}

func CanEndRepair(v Viewer, f models.Fault) bool {
	return v.Role == models.RoleTechnician &&
		isAssignee(v, f) &&
		f.Started() &&
		!f.Ended()
}

func CanConfirm(v Viewer, f models.Fault) bool {
	return v.Role == models.RoleHealthStaff &&
		v.ID != "" && f.CreatedBy == v.ID &&
		f.Ended() &&
		f.Status != models.FaultClosed
}

func isAssignee(v Viewer, f models.Fault) bool {
	return v.ID != "" && f.AssignedTo == v.ID
}

// FaultActions lists the actions rendered for a fault row, in display order.
func FaultActions(v Viewer, f models.Fault) []Action {
	var out []Action
	if CanAssign(v, f) {
		out = append(out, ActionAssign)
	}
	if CanStartRepair(v, f) {
		out = append(out, ActionStartRepair)
	}
	if CanEndRepair(v, f) {
		out = append(out, ActionEndRepair)
	}
	if CanConfirm(v, f) {
		out = append(out, ActionConfirm)
	}
	return out
}

// Allowed evaluates the predicate behind a fault action.
func Allowed(a Action, v Viewer, f models.Fault) bool {
	switch a {
	case ActionAssign:
		return CanAssign(v, f)
	case ActionStartRepair:
		return CanStartRepair(v, f)
	case ActionEndRepair:
		return CanEndRepair(v, f)
	case ActionConfirm:
		return CanConfirm(v, f)
	}
	return false
}

// ShowsTimer reports whether the live repair timer is shown for f.
func ShowsTimer(f models.Fault) bool { return f.Started() }

func CanReportFault(r models.Role) bool { return r == models.RoleHealthStaff }

func CanAddDevice(r models.Role) bool {
	return r == models.RoleManager || r == models.RoleTechnician
}

func CanRequestTransfer(r models.Role) bool { return r.Valid() && r != models.RoleQuality }

func CanReviewTransfer(v Viewer, t models.Transfer) bool {
	return v.Role == models.RoleQuality && t.Status == models.TransferPending
}

// TransferActions lists approve/reject when the viewer may review t.
func TransferActions(v Viewer, t models.Transfer) []Action {
	if !CanReviewTransfer(v, t) {
		return nil
	}
	return []Action{ActionApprove, ActionReject}
}

// SeesAllFaults selects GET /faults/all over the caller-scoped GET /faults.
func SeesAllFaults(r models.Role) bool {
	return r == models.RoleManager || r == models.RoleQuality
}

// NeedsTechnicians reports whether the fault view must load the assignable
// technician list.
func NeedsTechnicians(r models.Role) bool { return r == models.RoleManager }

// QuickAction is a dashboard shortcut.
type QuickAction struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// QuickActionsFor returns the dashboard shortcuts for role.
func QuickActionsFor(r models.Role) []QuickAction {
	switch r {
	case models.RoleHealthStaff:
		return []QuickAction{{Path: "/faults/new", Label: "Arıza Bildir"}}
	case models.RoleTechnician:
		return []QuickAction{{Path: "/faults", Label: "Arızalarım"}}
	case models.RoleManager, models.RoleQuality:
		return []QuickAction{{Path: "/reports", Label: "Raporlar"}}
	}
	return nil
}
