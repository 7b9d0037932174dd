package views

import (
	"context"
	"fmt"
	"strings"

	"tusep-web/internal/gate"
	"tusep-web/internal/models"
	"tusep-web/internal/notify"
	"tusep-web/internal/validation"

	"golang.org/x/sync/errgroup"
)

type TransferRow struct {
	models.Transfer
	StatusLabel string        `json:"status_label"`
	Actions     []gate.Action `json:"actions"`
}

type TransferList struct {
	Transfers  []TransferRow   `json:"transfers"`
	CanRequest bool            `json:"can_request"`
	Devices    []models.Device `json:"devices,omitempty"`
}

// LoadTransfers lists transfers and, when the viewer may request one, the
// devices offered in the request form.
func LoadTransfers(ctx context.Context, api API, viewer gate.Viewer, status models.TransferStatus) (TransferList, error) {
	out := TransferList{CanRequest: gate.CanRequestTransfer(viewer.Role)}
	var transfers []models.Transfer

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		transfers, err = api.Transfers(gctx, status)
		return
	})
	if out.CanRequest {
		g.Go(func() (err error) {
			out.Devices, err = api.Devices(gctx)
			return
		})
	}
	if err := g.Wait(); err != nil {
		return TransferList{}, err
	}

	out.Transfers = make([]TransferRow, 0, len(transfers))
	for _, t := range transfers {
		actions := gate.TransferActions(viewer, t)
		if actions == nil {
			actions = []gate.Action{}
		}
		out.Transfers = append(out.Transfers, TransferRow{Transfer: t, StatusLabel: t.Status.Label(), Actions: actions})
	}
	return out, nil
}

func RequestTransfer(ctx context.Context, api API, viewer gate.Viewer, in models.TransferInput) (models.Transfer, notify.Notification, error) {
	if !gate.CanRequestTransfer(viewer.Role) {
		err := fmt.Errorf("request transfer: %w", ErrForbidden)
		return models.Transfer{}, notify.Error(err, notify.ActionNotAllowed), err
	}
	if err := validation.Struct(in, nil); err != nil {
		return models.Transfer{}, notify.Error(err, notify.FillAllFields), err
	}
	t, err := api.CreateTransfer(ctx, in)
	if err != nil {
		return models.Transfer{}, notify.Error(err, notify.TransferRequestFailed), err
	}
	return t, notify.Success(notify.TransferRequested), nil
}

// ReviewTransfer approves or rejects a pending transfer. A rejection must
// carry a reason; it is checked before any request is made.
func ReviewTransfer(ctx context.Context, api API, viewer gate.Viewer, t models.Transfer, approve bool, reason string) (notify.Notification, error) {
	if !gate.CanReviewTransfer(viewer, t) {
		err := fmt.Errorf("review transfer %s: %w", t.ID, ErrForbidden)
		return notify.Error(err, notify.ActionNotAllowed), err
	}
	if approve {
		if err := api.ApproveTransfer(ctx, t.ID); err != nil {
			return notify.Error(err, notify.TransferApproveFailed), err
		}
		return notify.Success(notify.TransferApproved), nil
	}

	in := models.RejectInput{RejectionReason: strings.TrimSpace(reason)}
	if err := validation.Struct(in, validation.Messages{"RejectionReason": notify.RejectionReasonReq}); err != nil {
		return notify.Error(err, notify.RejectionReasonReq), err
	}
	if err := api.RejectTransfer(ctx, t.ID, in); err != nil {
		return notify.Error(err, notify.TransferRejectFailed), err
	}
	return notify.Success(notify.TransferRejected), nil
}

// FindTransfer loads the transfer list and picks id from it; the backend has
// no single-transfer endpoint.
func FindTransfer(ctx context.Context, api API, id string) (models.Transfer, bool, error) {
	all, err := api.Transfers(ctx, "")
	if err != nil {
		return models.Transfer{}, false, err
	}
	for _, t := range all {
		if t.ID == id {
			return t, true, nil
		}
	}
	return models.Transfer{}, false, nil
}
