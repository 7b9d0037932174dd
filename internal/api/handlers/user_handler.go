// internal/api/handlers/user_handler.go
package handlers

import (
	"net/http"

	"tusep-web/internal/notify"
	"tusep-web/internal/views"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func (h *UserHandler) GetUsers(c *gin.Context) {
	list, err := views.LoadUsers(c.Request.Context(), backend(c), viewerOf(c), c.Query("q"))
	if err != nil {
		respondError(c, err, notify.Error(err, notify.UsersLoadFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}
