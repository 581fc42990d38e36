package entity

import (
	"time"

	"github.com/google/uuid"
)

// Show is the inventory record for one scheduled show. Metadata comes from
// the external scheduler; booked_seats and version are only ever mutated
// inside the commit and cancel transactions.
type Show struct {
	ID             uuid.UUID `db:"id"`
	TicketPrice    float64   `db:"ticket_price"`
	TotalSeatCount int       `db:"total_seat_count"`
	BookedSeats    []string  `db:"booked_seats"`
	Version        int       `db:"version"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (s *Show) SeatsLeft() int {
	return s.TotalSeatCount - len(s.BookedSeats)
}

// ConflictingSeats returns the requested seats already present in BookedSeats.
func (s *Show) ConflictingSeats(seats []string) []string {
	booked := make(map[string]struct{}, len(s.BookedSeats))
	for _, seat := range s.BookedSeats {
		booked[seat] = struct{}{}
	}

	var conflicts []string
	for _, seat := range seats {
		if _, ok := booked[seat]; ok {
			conflicts = append(conflicts, seat)
		}
	}
	return conflicts
}
