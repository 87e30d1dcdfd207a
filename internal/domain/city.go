package domain

import (
	"time"

	"github.com/google/uuid"
)

// City is a catalog entry that itinerary entries are located in.
type City struct {
	ID        uuid.UUID
	Name      string
	Country   string
	CreatedAt time.Time
}
