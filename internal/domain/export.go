package domain

// ExportRow is a single row in a trip's itinerary export.
// It is a flat, denormalized view: one row per scheduled activity, with trip
// and day fields repeated on every row. Days with no activities yield one row
// with zero values for all activity fields.
type ExportRow struct {
	// Trip fields, repeated on every row.
	TripID      string
	TripTitle   string
	Destination string

	// Day fields.
	DayIndex int
	Date     string // "2006-01-02" formatted date

	// Activity fields; zero values when the day is empty.
	EntryID  string
	Title    string
	Type     string
	Time     string
	Location string
	Duration string
	Cost     float64
	Notes    string
}
