package transport

import (
	"errors"
	"net/http"

	"github.com/ds124wfegd/visionpipe/internal/entity"
	"github.com/ds124wfegd/visionpipe/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ResultHandler struct {
	service service.LabelService
}

func NewResultHandler(service service.LabelService) *ResultHandler {
	return &ResultHandler{service: service}
}

func (h *ResultHandler) GetResult(c *gin.Context) {
	id := c.Param("id")

	result, err := h.service.GetResult(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrResultNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		logrus.WithError(err).WithField("image_id", id).Error("Failed to load label result")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load result"})
		return
	}

	c.JSON(http.StatusOK, result)
}
