// Package filter narrows already-fetched lists. Text terms match as
// case-insensitive substrings; separate dimensions combine with AND.
package filter

import (
	"sort"
	"strings"

	"tusep-web/internal/models"
)

func contains(field, term string) bool {
	return strings.Contains(strings.ToLower(field), term)
}

func normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// anyField is true when term occurs in at least one field.
func anyField(term string, fields ...string) bool {
	for _, f := range fields {
		if contains(f, term) {
			return true
		}
	}
	return false
}

// Devices matches term against code, type and location. An empty term
// returns the list unchanged.
func Devices(devices []models.Device, term string) []models.Device {
	term = normalize(term)
	if term == "" {
		return devices
	}
	out := make([]models.Device, 0, len(devices))
	for _, d := range devices {
		if anyField(term, d.Code, d.Type, d.Location) {
			out = append(out, d)
		}
	}
	return out
}

// DevicePicker holds the criteria of the create-fault device selector.
type DevicePicker struct {
	ID       string `form:"device_id" json:"device_id"`
	Type     string `form:"type" json:"type"`
	Location string `form:"location" json:"location"`
}

// Apply keeps devices whose id contains ID and whose type and location equal
// Type and Location. Empty criteria are ignored.
func (p DevicePicker) Apply(devices []models.Device) []models.Device {
	id := normalize(p.ID)
	out := make([]models.Device, 0, len(devices))
	for _, d := range devices {
		if id != "" && !contains(d.ID, id) {
			continue
		}
		if p.Type != "" && d.Type != p.Type {
			continue
		}
		if p.Location != "" && d.Location != p.Location {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Types returns the distinct device types, sorted.
func Types(devices []models.Device) []string {
	return distinct(devices, func(d models.Device) string { return d.Type })
}

// Locations returns the distinct device locations, sorted.
func Locations(devices []models.Device) []string {
	return distinct(devices, func(d models.Device) string { return d.Location })
}

func distinct(devices []models.Device, key func(models.Device) string) []string {
	seen := make(map[string]struct{}, len(devices))
	out := []string{}
	for _, d := range devices {
		k := key(d)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Users matches term against name, email and role.
func Users(users []models.User, term string) []models.User {
	term = normalize(term)
	if term == "" {
		return users
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if anyField(term, u.Name, u.Email, string(u.Role)) {
			out = append(out, u)
		}
	}
	return out
}

// Faults keeps faults with the given status (if any) whose device code,
// device type or description contain term.
func Faults(faults []models.Fault, status models.FaultStatus, term string) []models.Fault {
	term = normalize(term)
	if status == "" && term == "" {
		return faults
	}
	out := make([]models.Fault, 0, len(faults))
	for _, f := range faults {
		if status != "" && f.Status != status {
			continue
		}
		if term != "" && !anyField(term, f.DeviceCode, f.DeviceType, f.Description) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Technicians keeps users with the technician role.
func Technicians(users []models.User) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == models.RoleTechnician {
			out = append(out, u)
		}
	}
	return out
}
