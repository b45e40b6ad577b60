package booking

import (
	"net/http"
	"pitstop/internal/domains/booking/model/dto"
	"pitstop/internal/domains/booking/service"
	"pitstop/shared/constant"
	"pitstop/shared/validator"
	"pitstop/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
}

func New(service service.Booking) Handler {
	return Handler{
		service: service,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/occupied", handler.GetOccupiedSlots)
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Put("/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// GetBookings returns every stored booking in storage order.
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := handler.service.GetAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetOccupiedSlots returns the (date, time) pairs taken by active bookings,
// used by the booking form to gray out unavailable times. The server
// re-checks availability at creation time; this list is advisory.
func (handler *Handler) GetOccupiedSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := handler.service.OccupiedSlots(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get occupied slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// CreateBooking validates a booking request and reserves the slot.
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, dto.BookingMessageResponse{
		Message: "Booking created successfully",
		Booking: booking,
	})
}

// UpdateBookingStatus moves a booking through its lifecycle.
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.BookingMessageResponse{
		Message: "Booking status updated",
		Booking: booking,
	})
}

// DeleteBooking removes a booking permanently.
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.MessageResponse{
		Message: "Booking deleted successfully",
	})
}
