package booking

import (
	"net/http"
	"time"

	"github.com/studiobook/studio-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrAttemptNotFound   = apperror.New(http.StatusNotFound, "checkout attempt not found")
	ErrMalformedDate     = apperror.New(http.StatusBadRequest, "date must be in YYYY-MM-DD format")
	ErrMalformedTime     = apperror.New(http.StatusBadRequest, "time must be in HH:mm format")
	ErrInvalidZone       = apperror.New(http.StatusBadRequest, "invalid timezone identifier")
	ErrDateNotBookable   = apperror.New(http.StatusUnprocessableEntity, "date is not open for booking")
	ErrBelowMinimumHours = apperror.New(http.StatusUnprocessableEntity, "duration is below the room minimum")
	ErrCrossesMidnight   = apperror.New(http.StatusUnprocessableEntity, "booking cannot run past midnight")
	ErrOutsideSchedule   = apperror.New(http.StatusUnprocessableEntity, "requested time is outside the room's opening hours")
	ErrSlotTaken         = apperror.New(http.StatusConflict, "slot is no longer available")
	ErrPaymentIncomplete = apperror.New(http.StatusUnprocessableEntity, "payment has not completed")
	ErrUpstream          = apperror.New(http.StatusBadGateway, "service temporarily unavailable, please try again")
)

const StatusCompleted = "completed"

// Booking is a paid reservation of a room. BookingDate, StartTime and
// EndTime are wall-clock values in the room's timezone; the interval is
// half-open [StartTime, EndTime). A booking row exists only once payment
// is confirmed, there is no pending state visible to slot listing.
type Booking struct {
	ID                    string
	RoomID                string
	CustomerID            *string
	CustomerEmail         string
	CustomerName          string
	BookingDate           string
	StartTime             string
	EndTime               string
	Hours                 int
	AmountTotalCents      int64
	Currency              string
	PaymentConfirmationID string
	Status                string
	CreatedAt             time.Time
}

// Slot is one bookable hour on a specific date, room-local. DisplayLabel
// is the same time reprojected into the viewer's zone when one was given;
// StartTime stays authoritative for everything downstream.
type Slot struct {
	StartTime    string `json:"start_time"`
	DisplayLabel string `json:"display_label"`
	Available    bool   `json:"available"`
}

// Attempt is the server-side record of a checkout in flight, keyed by the
// payment confirmation handle. It is what confirmation reads back, so the
// booking never depends on state stashed in the client.
type Attempt struct {
	ID             string
	ConfirmationID string
	RoomID         string
	CustomerID     *string
	BookingDate    string
	StartTime      string
	EndTime        string
	Hours          int
	Timezone       string
	AmountCents    int64
	Currency       string
	CreatedAt      time.Time
}
