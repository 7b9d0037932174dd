// Package gate decides which views and row actions a role may see.
// Every function here is pure; the backend remains the authority.
package gate

import "tusep-web/internal/models"

// Capability names a view that can be granted to a role.
type Capability string

const (
	CapDashboard        Capability = "dashboard"
	CapDevices          Capability = "devices"
	CapFaults           Capability = "faults"
	CapTransfers        Capability = "transfers"
	CapReports          Capability = "reports"
	CapQualityDashboard Capability = "quality_dashboard"
	CapUsers            Capability = "users"
)

var base = []Capability{CapDashboard, CapDevices, CapFaults, CapTransfers}

var capabilities = map[models.Role][]Capability{
	models.RoleHealthStaff: base,
	models.RoleTechnician:  base,
	models.RoleManager:     append(append([]Capability{}, base...), CapReports, CapUsers),
	models.RoleQuality:     append(append([]Capability{}, base...), CapReports, CapQualityDashboard, CapUsers),
}

// MenuItem is one entry of the side navigation.
type MenuItem struct {
	Path       string     `json:"path"`
	Label      string     `json:"label"`
	Capability Capability `json:"capability"`
}

var menu = []MenuItem{
	{Path: "/", Label: "Gösterge Paneli", Capability: CapDashboard},
	{Path: "/devices", Label: "Cihazlar", Capability: CapDevices},
	{Path: "/faults", Label: "Arızalar", Capability: CapFaults},
	{Path: "/transfers", Label: "Transferler", Capability: CapTransfers},
	{Path: "/reports", Label: "Raporlar", Capability: CapReports},
	{Path: "/quality-dashboard", Label: "Kalite Dashboard", Capability: CapQualityDashboard},
	{Path: "/users", Label: "Kullanıcılar", Capability: CapUsers},
}

// Has reports whether role holds capability c.
func Has(role models.Role, c Capability) bool {
	for _, have := range capabilities[role] {
		if have == c {
			return true
		}
	}
	return false
}

// MenuFor returns the ordered menu entries visible to role. An unknown role
// gets an empty menu.
func MenuFor(role models.Role) []MenuItem {
	items := make([]MenuItem, 0, len(menu))
	for _, item := range menu {
		if Has(role, item.Capability) {
			items = append(items, item)
		}
	}
	return items
}
