package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	analyticsapp "casita/internal/app/analytics"
	"casita/internal/app/booking"
	"casita/internal/domain/catalog"
	"casita/internal/domain/reservation"
)

// ReservationHandler books stays and lists reservations.
type ReservationHandler struct {
	Booking   *booking.Service
	Analytics *analyticsapp.Service
}

type createReservationRequest struct {
	UnitID    int64  `json:"unit_id" binding:"required"`
	CheckIn   string `json:"check_in" binding:"required"`
	CheckOut  string `json:"check_out" binding:"required"`
	GuestName string `json:"guest_name"`
	Channel   string `json:"channel"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	checkIn, ok := parseDateQuery(req.CheckIn)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be YYYY-MM-DD"})
		return
	}
	checkOut, ok := parseDateQuery(req.CheckOut)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be YYYY-MM-DD"})
		return
	}

	booked, err := h.Booking.Book(c.Request.Context(), booking.BookParams{
		UnitID:    catalog.UnitID(req.UnitID),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		GuestName: req.GuestName,
		Channel:   req.Channel,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if h.Analytics != nil {
		h.Analytics.InvalidateForecasts(booked.PropertyID)
	}
	c.JSON(http.StatusCreated, gin.H{
		"reservation_id": booked.ID,
		"unit_id":        booked.UnitID,
		"check_in":       booked.Stay.CheckIn.Format("2006-01-02"),
		"check_out":      booked.Stay.CheckOut.Format("2006-01-02"),
		"nights":         booked.Nights,
		"total_price":    booked.TotalPrice,
		"status":         booked.Status,
	})
}

func (h ReservationHandler) List(c *gin.Context) {
	filter := reservation.Filter{}
	if unitID, ok := parseID(c.Query("unit_id")); ok {
		filter.UnitID = catalog.UnitID(unitID)
	}
	if propertyID, ok := parseID(c.Query("property_id")); ok {
		filter.PropertyID = catalog.PropertyID(propertyID)
	}
	if start, ok := parseDateQuery(c.Query("from")); ok {
		filter.Start = start
	}
	if end, ok := parseDateQuery(c.Query("to")); ok {
		filter.End = end
	}

	reservations, err := h.Booking.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations, "count": len(reservations)})
}

var _ ReservationHTTP = ReservationHandler{}
