package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/application/types"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/domain"
	"github.com/Apurer/cinema-booking-api/internal/domains/cinema/ports"
)

type bookingFingerprint struct {
	CustomerID  int64 `json:"customerId"`
	ScreeningID int64 `json:"screeningId"`
	NumSeats    int   `json:"numSeats"`
}

// FingerprintBooking hashes the booking request without its idempotency key.
func FingerprintBooking(input types.BookTicketInput) string {
	payload, _ := json.Marshal(bookingFingerprint{
		CustomerID:  input.CustomerID,
		ScreeningID: input.ScreeningID,
		NumSeats:    input.NumSeats,
	})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// replayBooking returns the ticket already issued for the key, or nil when the key is new.
func (s *Service) replayBooking(ctx context.Context, input types.BookTicketInput) (*domain.Ticket, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" || s.idempotency == nil {
		return nil, nil
	}
	record, err := s.idempotency.Get(ctx, key)
	if err != nil {
		return nil, mapError(err)
	}
	if record == nil {
		return nil, nil
	}
	if record.RequestHash != FingerprintBooking(input) {
		return nil, Fail(KindConflict, "Idempotency key '%s' was already used for a different booking.", key)
	}
	ticket, err := s.gw.Tickets.GetByID(ctx, record.TicketID)
	if err != nil {
		return nil, notFoundOr(err, "Ticket with id %d not found.", record.TicketID)
	}
	return ticket, nil
}

// rememberBooking records the issued ticket under the request's key. The ticket is already
// committed, so a failed save only costs the replay and never fails the booking.
func (s *Service) rememberBooking(ctx context.Context, input types.BookTicketInput, ticket *domain.Ticket) {
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" || s.idempotency == nil {
		return
	}
	_, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
		Key:         key,
		RequestHash: FingerprintBooking(input),
		TicketID:    ticket.ID,
	})
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to remember idempotency key",
			slog.String("idempotency.key", key),
			slog.Int64("ticket.id", ticket.ID),
			slog.String("error", err.Error()))
	}
}
