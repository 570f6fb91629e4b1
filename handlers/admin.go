// File: handlers/admin.go
package handlers

import (
	"net/http"

	appointmentRepo "github.com/itelsaia/agente-itelsa-ia/database/repository/appointment"
	"github.com/itelsaia/agente-itelsa-ia/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes appointment history insights for operators.
type AdminHandler struct {
	Appointments appointmentRepo.AppointmentRepository
}

func NewAdminHandler(appointments appointmentRepo.AppointmentRepository) *AdminHandler {
	return &AdminHandler{Appointments: appointments}
}

// GetStatsHandler aggregates booking outcomes: totals, conversion rate and
// recent activity.
func (h *AdminHandler) GetStatsHandler(c *gin.Context) {
	stats, err := h.Appointments.Stats()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute stats", err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetUserAppointmentsHandler lists one user's outcome history.
func (h *AdminHandler) GetUserAppointmentsHandler(c *gin.Context) {
	email := c.Param("email")
	records, err := h.Appointments.ListByUser(email)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email, "records": records})
}
