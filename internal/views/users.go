package views

import (
	"context"
	"fmt"

	"tusep-web/internal/filter"
	"tusep-web/internal/gate"
	"tusep-web/internal/models"
)

type UserRow struct {
	models.User
	RoleLabel       string `json:"role_label"`
	SuccessRateText string `json:"success_rate_text,omitempty"`
	SuccessRateBand Band   `json:"success_rate_band,omitempty"`
}

type UserList struct {
	Users []UserRow `json:"users"`
	Query string    `json:"query"`
}

// LoadUsers lists users for managers and the quality unit.
func LoadUsers(ctx context.Context, api API, viewer gate.Viewer, term string) (UserList, error) {
	if !gate.Has(viewer.Role, gate.CapUsers) {
		return UserList{}, fmt.Errorf("users: %w", ErrForbidden)
	}
	all, err := api.Users(ctx)
	if err != nil {
		return UserList{}, err
	}
	matched := filter.Users(all, term)
	out := UserList{Users: make([]UserRow, 0, len(matched)), Query: term}
	for _, u := range matched {
		row := UserRow{User: u, RoleLabel: u.Role.Label()}
		if u.Role == models.RoleTechnician {
			rate := u.SuccessRate()
			row.SuccessRateText = Percent(rate, 1)
			row.SuccessRateBand = SuccessRateBand(rate)
		}
		out.Users = append(out.Users, row)
	}
	return out, nil
}
