package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminDashboard godoc
// @ID          adminDashboard
// @Summary     Admin counters
// @Description Totals of hotels, sellers and vegetables, today's requirement count and quantity, and global pending and delivered counts.
// @Tags        Dashboard
// @Produce     json
// @Success     200  {object}  domain.AdminDashboard
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /dashboard/admin [get]
func (h *Handlers) AdminDashboard(c *gin.Context) {
	d, err := h.dashSvc.AdminDashboard(c.Request.Context())
	if err != nil {
		writeError(c, err, ErrCodeReportFailed)
		return
	}
	ok(c, http.StatusOK, d)
}

// Matrix godoc
// @ID          adminMatrix
// @Summary     Hotel × vegetable matrix
// @Description Quantities per vegetable (rows, by name) and hotel (columns, numeric order) for one date, with row totals and
// @Description each hotel's delivery status. Only vegetables with a non-zero quantity appear. date defaults to today.
// @Tags        Dashboard
// @Produce     json
// @Param       date  query  string  false  "Delivery date (YYYY-MM-DD)"  example(2024-01-01)
// @Success     200  {object}  domain.MatrixReport
// @Failure     400  {object}  handlers.ErrorResponse "Malformed date"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /dashboard/admin/matrix [get]
func (h *Handlers) Matrix(c *gin.Context) {
	m, err := h.dashSvc.Matrix(c.Request.Context(), c.Query("date"))
	if err != nil {
		writeError(c, err, ErrCodeReportFailed)
		return
	}
	ok(c, http.StatusOK, m)
}
