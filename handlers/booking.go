package handlers

import (
	"net/http"

	"gymflow/models"
	"gymflow/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	BookingService booking.Service
}

func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{BookingService: svc}
}

// outcomeStatus picks the response status for a booking outcome.
func outcomeStatus(r *booking.Result, success int) int {
	if r.Outcome == booking.OutcomeSuccess {
		return success
	}
	return statusFor(r.Outcome.Err())
}

// BookClassHandler handles POST /api/bookings/book.
func (h *BookingHandler) BookClassHandler(c *gin.Context) {
	var req models.BookClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	result, err := h.BookingService.BookClass(c.Request.Context(), req.GymMemberID, req.ClassSessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Outcome != booking.OutcomeSuccess {
		getLogger(c).Info("booking refused",
			zap.String("memberId", req.GymMemberID),
			zap.String("sessionId", req.ClassSessionID),
			zap.String("outcome", result.Code))
	}
	c.JSON(outcomeStatus(result, http.StatusCreated), result)
}

// CancelBookingHandler handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	result, err := h.BookingService.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(outcomeStatus(result, http.StatusOK), result)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	dto, err := h.BookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ListMemberBookingsHandler handles GET /api/bookings/member/:memberId.
func (h *BookingHandler) ListMemberBookingsHandler(c *gin.Context) {
	bookings, err := h.BookingService.ListByMember(c.Request.Context(), c.Param("memberId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListClassBookingsHandler handles GET /api/bookings/class/:classId.
func (h *BookingHandler) ListClassBookingsHandler(c *gin.Context) {
	bookings, err := h.BookingService.ListByClass(c.Request.Context(), c.Param("classId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
