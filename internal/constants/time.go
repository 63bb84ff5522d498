package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// StorageFormat is the layout completions and transactions are persisted with.
	// Always written in UTC with millisecond precision and a trailing Z.
	StorageFormat = "2006-01-02T15:04:05.000Z07:00"

	// DisplayFormat is the medium date-with-weekday layout used for task due dates.
	DisplayFormat = "Mon, Jan 2, 2006 3:04 PM"

	// DisplayDateFormat is DisplayFormat without the time of day.
	DisplayDateFormat = "Mon, Jan 2, 2006"
)
