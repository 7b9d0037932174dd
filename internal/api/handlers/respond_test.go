package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"tusep-web/internal/client"
	"tusep-web/internal/faults"
	"tusep-web/internal/reports"
	"tusep-web/internal/validation"
	"tusep-web/internal/views"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"local validation", &validation.Error{Message: "x"}, http.StatusBadRequest},
		{"action hidden", fmt.Errorf("confirm: %w", faults.ErrActionNotAvailable), http.StatusForbidden},
		{"view forbidden", fmt.Errorf("users: %w", views.ErrForbidden), http.StatusForbidden},
		{"unauthorized", &client.Error{Kind: client.KindUnauthorized, Status: 401}, http.StatusUnauthorized},
		{"backend rejection", &client.Error{Kind: client.KindValidation, Status: 422}, http.StatusUnprocessableEntity},
		{"backend down", &client.Error{Kind: client.KindTransport}, http.StatusBadGateway},
		{"backend 500", &client.Error{Kind: client.KindServer, Status: 500}, http.StatusBadGateway},
		{"oversized workbook", fmt.Errorf("fetch: %w", reports.ErrWorkbookTooLarge), http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor = %d, want %d", got, tt.want)
			}
		})
	}
}
