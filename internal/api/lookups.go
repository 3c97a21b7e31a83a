package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listAirlines(c *gin.Context) {
	airlines, err := h.lookups.Airlines(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load airlines")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": airlines})
}

func (h *Handler) listSectors(c *gin.Context) {
	sectors, err := h.lookups.Sectors(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load sectors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": sectors})
}

func (h *Handler) listBanks(c *gin.Context) {
	banks, err := h.lookups.Banks(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load banks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": banks})
}
