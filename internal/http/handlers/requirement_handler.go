// Requirement HTTP handlers.
//
//   - GET    /requirements          (filtered, enriched list; ETag support)
//   - POST   /requirements          (strict submit; Idempotency-Key support)
//   - POST   /requirements/bulk     (merge-on-resubmit, all or nothing)
//   - PUT    /requirements/{id}     (partial update)
//   - DELETE /requirements/{id}
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-veg-procurement/internal/domain"
	"github.com/tbourn/go-veg-procurement/internal/http/middleware"
	"github.com/tbourn/go-veg-procurement/internal/services"
)

// ListRequirements godoc
// @ID          listRequirements
// @Summary     List requirements
// @Description Returns requirements with hotel and vegetable names resolved, newest date first.
// @Description seller_id narrows the list to vegetables that seller currently offers.
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        Requirements
// @Produce     json
//
// @Param       hotel_id       query   string  false "Hotel ID"                     format(uuid)
// @Param       seller_id      query   string  false "Seller ID"                    format(uuid)
// @Param       date           query   string  false "Delivery date (YYYY-MM-DD)"   example(2024-01-01)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}   services.RequirementView
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     400  {object}  handlers.ErrorResponse "Malformed date"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /requirements [get]
func (h *Handlers) ListRequirements(c *gin.Context) {
	ctx := c.Request.Context()
	q := services.RequirementQuery{
		HotelID:  c.Query("hotel_id"),
		SellerID: c.Query("seller_id"),
		Date:     c.Query("date"),
	}

	// ETag pre-check (best effort).
	if etag, err := h.reqSvc.ListETag(ctx, q); err == nil {
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, err := h.reqSvc.List(ctx, q)
	if err != nil {
		writeError(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, items)
}

// SubmitRequirement godoc
// @ID          submitRequirement
// @Summary     Submit a requirement
// @Description Creates a pending requirement for (hotel, vegetable, date). Fails with 409 when one already exists.
// @Description With an Idempotency-Key header, a retry returns the stored requirement with Idempotent-Replay: true.
// @Description Reusing a key with a different body fails with 422.
// @Tags        Requirements
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Client key for safe retries"  example(order-2024-01-01-h1-v1)
// @Param       body             body    services.RequirementInput  true  "Requirement"
//
// @Success     201  {object}  domain.Requirement
// @Header      201  {string}  Idempotent-Replay  "true when served from a stored result"
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     409  {object}  handlers.ErrorResponse "Requirement already exists"
// @Failure     422  {object}  handlers.ErrorResponse "Idempotency-Key reused with a different body"
// @Failure     429  {object}  handlers.ErrorResponse "Rate limited"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /requirements [post]
func (h *Handlers) SubmitRequirement(c *gin.Context) {
	var in services.RequirementInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ctx := c.Request.Context()

	if key, has := middleware.GetIdempotencyKey(c); has {
		r, replayed, err := h.reqSvc.SubmitIdempotent(ctx, middleware.IdempotencyScope(c), key, in)
		if err != nil {
			writeError(c, err, ErrCodeCreateFailed)
			return
		}
		if replayed {
			c.Header(middleware.HeaderIdempotentReplay, "true")
		}
		ok(c, http.StatusCreated, r)
		return
	}

	r, err := h.reqSvc.Submit(ctx, in)
	if err != nil {
		writeError(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, r)
}

// BulkSubmitRequirements godoc
// @ID          bulkSubmitRequirements
// @Summary     Submit many requirements
// @Description Replaces the quantity of an existing requirement for the same (hotel, vegetable, date) or creates one; status is kept.
// @Description Every line is validated first; one bad line rejects the whole batch. Results follow input order.
// @Tags        Requirements
// @Accept      json
// @Produce     json
//
// @Param       body  body  []services.RequirementInput  true  "Requirement lines"
//
// @Success     200  {array}   services.BulkResult
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /requirements/bulk [post]
func (h *Handlers) BulkSubmitRequirements(c *gin.Context) {
	var items []services.RequirementInput
	if err := c.ShouldBindJSON(&items); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "body must be a JSON array of requirements")
		return
	}
	out, err := h.reqSvc.BulkSubmit(c.Request.Context(), items)
	if err != nil {
		writeError(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusOK, out)
}

// UpdateRequirement godoc
// @ID          updateRequirement
// @Summary     Update a requirement
// @Description Applies any of quantity, unit and status. Omitted fields are left unchanged.
// @Tags        Requirements
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                     true  "Requirement ID"  format(uuid)
// @Param       body  body  services.RequirementPatch  true  "Fields to change"
//
// @Success     200  {object}  domain.Requirement
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse "Requirement not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /requirements/{id} [put]
func (h *Handlers) UpdateRequirement(c *gin.Context) {
	var p services.RequirementPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	r, err := h.reqSvc.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		writeError(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, r)
}

// DeleteRequirement godoc
// @ID          deleteRequirement
// @Summary     Delete a requirement
// @Tags        Requirements
//
// @Param       id  path  string  true  "Requirement ID"  format(uuid)
//
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse "Requirement not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /requirements/{id} [delete]
func (h *Handlers) DeleteRequirement(c *gin.Context) {
	if err := h.reqSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, ErrCodeDeleteFailed)
		return
	}
	noContent(c)
}

// HotelStatusResponse is the rolled-up delivery state of one hotel.
type HotelStatusResponse struct {
	HotelID string             `json:"hotel_id"`
	Date    string             `json:"date" example:"2024-01-01"`
	Status  domain.HotelStatus `json:"status" example:"pending"`
}

// MarkDelivered godoc
// @ID          markDelivered
// @Summary     Mark a hotel's requirements delivered
// @Description Moves every pending requirement of the hotel on date to delivered and reports how many changed.
// @Tags        Hotels
// @Produce     json
//
// @Param       id    path   string  true  "Hotel ID"                    format(uuid)
// @Param       date  query  string  true  "Delivery date (YYYY-MM-DD)"  example(2024-01-01)
//
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse "Missing or malformed date"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /hotels/{id}/mark-delivered [put]
func (h *Handlers) MarkDelivered(c *gin.Context) {
	n, err := h.reqSvc.MarkDelivered(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		writeError(c, err, ErrCodeDeliveryFailed)
		return
	}
	ok(c, http.StatusOK, MessageResponse{
		Message:       "Marked " + pluralRequirements(n) + " as delivered",
		ModifiedCount: n,
	})
}

// HotelStatus godoc
// @ID          hotelStatus
// @Summary     Hotel delivery status
// @Description Rolls up the hotel's requirements on date: none, pending or delivered. date defaults to today.
// @Tags        Hotels
// @Produce     json
//
// @Param       id    path   string  true   "Hotel ID"                    format(uuid)
// @Param       date  query  string  false  "Delivery date (YYYY-MM-DD)"  example(2024-01-01)
//
// @Success     200  {object}  handlers.HotelStatusResponse
// @Failure     400  {object}  handlers.ErrorResponse "Malformed date"
// @Failure     404  {object}  handlers.ErrorResponse "Hotel not found"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /hotels/{id}/status [get]
func (h *Handlers) HotelStatus(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		date = h.dashSvc.Today()
	}
	st, err := h.reqSvc.HotelStatus(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		writeError(c, err, ErrCodeReportFailed)
		return
	}
	ok(c, http.StatusOK, HotelStatusResponse{HotelID: c.Param("id"), Date: date, Status: st})
}

func pluralRequirements(n int64) string {
	if n == 1 {
		return "1 requirement"
	}
	return strconv.FormatInt(n, 10) + " requirements"
}
