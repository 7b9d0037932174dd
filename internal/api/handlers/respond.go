// internal/api/handlers/respond.go
package handlers

import (
	"errors"
	"net/http"

	"tusep-web/internal/api/middleware"
	"tusep-web/internal/client"
	"tusep-web/internal/faults"
	"tusep-web/internal/gate"
	"tusep-web/internal/notify"
	"tusep-web/internal/reports"
	"tusep-web/internal/validation"
	"tusep-web/internal/views"

	"github.com/gin-gonic/gin"
)

// statusFor maps a failure onto the status returned to the browser.
func statusFor(err error) int {
	var verr *validation.Error
	var cerr *client.Error
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, faults.ErrActionNotAvailable), errors.Is(err, views.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, reports.ErrWorkbookTooLarge):
		return http.StatusBadGateway
	case errors.As(err, &cerr):
		switch cerr.Kind {
		case client.KindUnauthorized:
			return http.StatusUnauthorized
		case client.KindValidation:
			return cerr.Status
		default:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the error toast for err. After a 401 the session has
// already been dropped, so the browser is pointed back to the login view.
func respondError(c *gin.Context, err error, n notify.Notification) {
	status := statusFor(err)
	body := gin.H{"error": n.Message, "details": err.Error(), "notification": n}
	if status == http.StatusUnauthorized {
		body["redirect"] = middleware.LoginPath
	}
	c.JSON(status, body)
}

func respondSuccess(c *gin.Context, n notify.Notification, data any) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": n.Message, "notification": n, "data": data})
}

// viewerOf returns the authenticated user as a gate.Viewer.
func viewerOf(c *gin.Context) gate.Viewer {
	return gate.ViewerOf(middleware.CurrentUser(c))
}

// backend returns the session's token-carrying client.
func backend(c *gin.Context) *client.Client {
	return middleware.CurrentSession(c).API()
}
