package model

const (
	EntityName = "booking"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Booking is a customer's request to occupy a (date, time) slot for a
// described vehicle service. The JSON tags are both the persisted file
// layout and the wire format.
type Booking struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CarBrand  string `json:"carBrand"`
	CarModel  string `json:"carModel"`
	CarYear   string `json:"carYear"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Notes     string `json:"notes"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// Active reports whether the booking still occupies its slot.
// Cancelled bookings free the slot for rebooking.
func (b Booking) Active() bool {
	return b.Status != StatusCancelled
}

var transitionMap = map[string][]string{
	StatusConfirmed: {StatusPending},
	StatusCompleted: {StatusConfirmed},
	StatusCancelled: {StatusPending, StatusConfirmed},
}

// ValidStatus reports whether s is one of the known lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

// ValidTransition reports whether a booking may move from fromStatus to
// toStatus. Completed and cancelled are terminal.
func ValidTransition(fromStatus, toStatus string) bool {
	allowed, ok := transitionMap[toStatus]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}

	return false
}
