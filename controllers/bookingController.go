package controllers

import (
	"net/http"
	"strconv"

	"bitbucket.org/mmdatafocus/bridal_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateBookingHandler persists the booking unless the conflict detector
// fires; conflicts come back with 409 and the operator resubmits with
// override=true after confirming.
func CreateBookingHandler(c *gin.Context) {
	var input models.NewBooking
	if !bindJSON(c, &input) {
		return
	}
	booking, conflicts, err := models.CreateBooking(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	if booking == nil {
		c.JSON(http.StatusConflict, gin.H{"conflicts": conflicts})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking, "conflicts": conflicts})
}

func UpdateBookingHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewBooking
	if !bindJSON(c, &input) {
		return
	}
	booking, conflicts, err := models.UpdateBooking(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	if booking == nil {
		c.JSON(http.StatusConflict, gin.H{"conflicts": conflicts})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking, "conflicts": conflicts})
}

func CheckConflictHandler(c *gin.Context) {
	dressId, err := strconv.Atoi(c.Query("dress_id"))
	if err != nil || dressId <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dress_id is required"})
		return
	}
	eventDate := c.Query("event_date")
	if eventDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event_date is required"})
		return
	}
	excludeId, _ := strconv.Atoi(c.Query("exclude_id"))

	conflicts, err := models.CheckConflict(c.Request.Context(), models.ConflictCandidate{
		DressId:          dressId,
		EventDate:        eventDate,
		ExcludeBookingId: excludeId,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts})
}

func DeliverBookingHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	booking, err := models.DeliverBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

type returnBookingInput struct {
	DamageFee decimal.Decimal `json:"damage_fee"`
}

func ReturnBookingHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input returnBookingInput
	if !bindJSON(c, &input) {
		return
	}
	booking, err := models.ReturnBooking(c.Request.Context(), id, input.DamageFee)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func CancelBookingHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	booking, err := models.CancelBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func DeleteBookingHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	report, err := models.DeleteWithCascade(c.Request.Context(), models.CascadeKindBooking, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func GetBookingHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	booking, err := models.GetBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func ListBookingsHandler(c *gin.Context) {
	var status *models.BookingStatus
	if s := c.Query("status"); s != "" {
		v := models.BookingStatus(s)
		status = &v
	}
	var dressId *int
	if s := c.Query("dress_id"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			dressId = &v
		}
	}
	var customerName *string
	if s := c.Query("customer_name"); s != "" {
		customerName = &s
	}
	bookings, err := models.ListBookings(c.Request.Context(), status, dressId, customerName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
