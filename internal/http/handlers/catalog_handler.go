// Catalog HTTP handlers for hotels, sellers and vegetables.
//
// Deleting a hotel also deletes its requirements and deleting a seller also
// deletes its vegetables; both report the number of dependent rows removed.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-veg-procurement/internal/services"
	"github.com/tbourn/go-veg-procurement/internal/utils"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

func bindOr400(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return false
	}
	return true
}

//
// Hotels
//

// CreateHotel godoc
// @ID          createHotel
// @Summary     Create a hotel
// @Tags        Hotels
// @Accept      json
// @Produce     json
// @Param       body  body  services.HotelInput  true  "Hotel"
// @Success     201  {object}  domain.Hotel
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /hotels [post]
func (h *Handlers) CreateHotel(c *gin.Context) {
	var in services.HotelInput
	if !bindOr400(c, &in) {
		return
	}
	hotel, err := h.catSvc.CreateHotel(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, hotel)
}

// ListHotels godoc
// @ID          listHotels
// @Summary     List hotels
// @Description Hotels named with a shared prefix and a number ("Hotel 2", "Hotel 10") are ordered numerically; otherwise by name.
// @Tags        Hotels
// @Produce     json
// @Success     200  {array}   domain.Hotel
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /hotels [get]
func (h *Handlers) ListHotels(c *gin.Context) {
	hotels, err := h.catSvc.ListHotels(c.Request.Context())
	if err != nil {
		writeError(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, hotels)
}

// GetHotel godoc
// @ID          getHotel
// @Summary     Get a hotel
// @Tags        Hotels
// @Produce     json
// @Param       id  path  string  true  "Hotel ID"  format(uuid)
// @Success     200  {object}  domain.Hotel
// @Failure     404  {object}  handlers.ErrorResponse "Hotel not found"
// @Router      /hotels/{id} [get]
func (h *Handlers) GetHotel(c *gin.Context) {
	hotel, err := h.catSvc.GetHotel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, hotel)
}

// UpdateHotel godoc
// @ID          updateHotel
// @Summary     Update a hotel's details
// @Tags        Hotels
// @Accept      json
// @Produce     json
// @Param       id    path  string               true  "Hotel ID"  format(uuid)
// @Param       body  body  services.HotelPatch  true  "Fields to change"
// @Success     200  {object}  domain.Hotel
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse "Hotel not found"
// @Router      /hotels/{id} [put]
func (h *Handlers) UpdateHotel(c *gin.Context) {
	var in services.HotelPatch
	if !bindOr400(c, &in) {
		return
	}
	hotel, err := h.catSvc.UpdateHotel(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, hotel)
}

// DeleteHotel godoc
// @ID          deleteHotel
// @Summary     Delete a hotel and its requirements
// @Tags        Hotels
// @Produce     json
// @Param       id  path  string  true  "Hotel ID"  format(uuid)
// @Success     200  {object}  handlers.MessageResponse "modified_count is the number of requirements removed"
// @Failure     404  {object}  handlers.ErrorResponse "Hotel not found"
// @Router      /hotels/{id} [delete]
func (h *Handlers) DeleteHotel(c *gin.Context) {
	n, err := h.catSvc.DeleteHotel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, ErrCodeDeleteFailed)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "Hotel deleted", ModifiedCount: n})
}

//
// Sellers
//

// CreateSeller godoc
// @ID          createSeller
// @Summary     Create a seller
// @Tags        Sellers
// @Accept      json
// @Produce     json
// @Param       body  body  services.SellerInput  true  "Seller"
// @Success     201  {object}  domain.Seller
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Router      /sellers [post]
func (h *Handlers) CreateSeller(c *gin.Context) {
	var in services.SellerInput
	if !bindOr400(c, &in) {
		return
	}
	s, err := h.catSvc.CreateSeller(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, s)
}

// ListSellers godoc
// @ID          listSellers
// @Summary     List sellers
// @Tags        Sellers
// @Produce     json
// @Success     200  {array}   domain.Seller
// @Router      /sellers [get]
func (h *Handlers) ListSellers(c *gin.Context) {
	sellers, err := h.catSvc.ListSellers(c.Request.Context())
	if err != nil {
		writeError(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, sellers)
}

// GetSeller godoc
// @ID          getSeller
// @Summary     Get a seller
// @Tags        Sellers
// @Produce     json
// @Param       id  path  string  true  "Seller ID"  format(uuid)
// @Success     200  {object}  domain.Seller
// @Failure     404  {object}  handlers.ErrorResponse "Seller not found"
// @Router      /sellers/{id} [get]
func (h *Handlers) GetSeller(c *gin.Context) {
	s, err := h.catSvc.GetSeller(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, s)
}

// UpdateSeller godoc
// @ID          updateSeller
// @Summary     Update a seller's details
// @Tags        Sellers
// @Accept      json
// @Produce     json
// @Param       id    path  string                true  "Seller ID"  format(uuid)
// @Param       body  body  services.SellerPatch  true  "Fields to change"
// @Success     200  {object}  domain.Seller
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse "Seller not found"
// @Router      /sellers/{id} [put]
func (h *Handlers) UpdateSeller(c *gin.Context) {
	var in services.SellerPatch
	if !bindOr400(c, &in) {
		return
	}
	s, err := h.catSvc.UpdateSeller(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err, ErrCodeUpdateFailed)
		return
	}
	ok(c, http.StatusOK, s)
}

// DeleteSeller godoc
// @ID          deleteSeller
// @Summary     Delete a seller and its vegetables
// @Tags        Sellers
// @Produce     json
// @Param       id  path  string  true  "Seller ID"  format(uuid)
// @Success     200  {object}  handlers.MessageResponse "modified_count is the number of vegetables removed"
// @Failure     404  {object}  handlers.ErrorResponse "Seller not found"
// @Router      /sellers/{id} [delete]
func (h *Handlers) DeleteSeller(c *gin.Context) {
	n, err := h.catSvc.DeleteSeller(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, ErrCodeDeleteFailed)
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "Seller deleted", ModifiedCount: n})
}

//
// Vegetables
//

// CreateVegetable godoc
// @ID          createVegetable
// @Summary     Add a vegetable to a seller's catalog
// @Description unit defaults to kg.
// @Tags        Vegetables
// @Accept      json
// @Produce     json
// @Param       body  body  services.VegetableInput  true  "Vegetable"
// @Success     201  {object}  domain.Vegetable
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse "Seller not found"
// @Router      /vegetables [post]
func (h *Handlers) CreateVegetable(c *gin.Context) {
	var in services.VegetableInput
	if !bindOr400(c, &in) {
		return
	}
	v, err := h.catSvc.CreateVegetable(c.Request.Context(), in)
	if err != nil {
		writeError(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, v)
}

// ListVegetables godoc
// @ID          listVegetables
// @Summary     List vegetables
// @Tags        Vegetables
// @Produce     json
// @Success     200  {array}   domain.Vegetable
// @Router      /vegetables [get]
func (h *Handlers) ListVegetables(c *gin.Context) {
	vs, err := h.catSvc.ListVegetables(c.Request.Context())
	if err != nil {
		writeError(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, vs)
}

// ListVegetablesBySeller godoc
// @ID          listVegetablesBySeller
// @Summary     List a seller's vegetables
// @Description An unknown seller yields an empty list.
// @Tags        Vegetables
// @Produce     json
// @Param       seller_id  path  string  true  "Seller ID"  format(uuid)
// @Success     200  {array}   domain.Vegetable
// @Router      /vegetables/by-seller/{seller_id} [get]
func (h *Handlers) ListVegetablesBySeller(c *gin.Context) {
	vs, err := h.catSvc.ListVegetablesBySeller(c.Request.Context(), c.Param("seller_id"))
	if err != nil {
		writeError(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, vs)
}

// SearchVegetables godoc
// @ID          searchVegetables
// @Summary     Search the vegetable catalog
// @Description Ranks vegetables by similarity of their name and seller name to q; prefixes match ("tom" finds Tomatoes).
// @Tags        Vegetables
// @Produce     json
// @Param       q      query  string  true   "Search text"  example(tom)
// @Param       limit  query  int     false  "Max results"  minimum(1) maximum(50) default(10)
// @Success     200  {array}   search.Hit
// @Failure     400  {object}  handlers.ErrorResponse "Missing q"
// @Router      /vegetables/search [get]
func (h *Handlers) SearchVegetables(c *gin.Context) {
	limit := utils.Clamp(utils.AtoiDefault(c.Query("limit"), defaultSearchLimit), 1, maxSearchLimit)
	hits, err := h.catSvc.SearchVegetables(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		writeError(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, hits)
}

// DeleteVegetable godoc
// @ID          deleteVegetable
// @Summary     Delete a vegetable
// @Description Requirements pointing at the vegetable are kept and show as "Unknown" in lists.
// @Tags        Vegetables
// @Param       id  path  string  true  "Vegetable ID"  format(uuid)
// @Success     204  {string}  string "No Content"
// @Failure     404  {object}  handlers.ErrorResponse "Vegetable not found"
// @Router      /vegetables/{id} [delete]
func (h *Handlers) DeleteVegetable(c *gin.Context) {
	if err := h.catSvc.DeleteVegetable(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, ErrCodeDeleteFailed)
		return
	}
	noContent(c)
}
