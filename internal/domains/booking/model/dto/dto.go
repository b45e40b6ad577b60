package dto

import (
	"pitstop/internal/domains/booking/model"
	"pitstop/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Phone    string `json:"phone"    validate:"required,max=30"`
	Email    string `json:"email"    validate:"omitempty,email,max=100"`
	CarBrand string `json:"carBrand" validate:"required,max=50"`
	CarModel string `json:"carModel" validate:"required,max=50"`
	CarYear  string `json:"carYear"  validate:"omitempty,max=10"`
	Service  string `json:"service"  validate:"required,oneof=stage1 stage2 egr dpf stage1-egr stage1-dpf custom"`
	Date     string `json:"date"     validate:"required,dateformat"`
	Time     string `json:"time"     validate:"required,oneof=09:00 10:00 11:00 12:00 13:00 14:00 15:00 16:00 17:00"`
	Notes    string `json:"notes"    validate:"omitempty,max=500"`
}

func (c *CreateBookingRequest) ToModel() model.Booking {
	return model.Booking{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		CarBrand:  c.CarBrand,
		CarModel:  c.CarModel,
		CarYear:   c.CarYear,
		Service:   c.Service,
		Date:      c.Date,
		Time:      c.Time,
		Notes:     c.Notes,
		Status:    model.StatusPending,
		CreatedAt: timezone.Now().Format(time.RFC3339),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// OccupiedSlot is one bookable appointment window already taken by an
// active booking.
type OccupiedSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type BookingMessageResponse struct {
	Message string        `json:"message"`
	Booking model.Booking `json:"booking"`
}
