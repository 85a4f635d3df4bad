package domain

import "time"

// Reminder pairs a contact with the date their next birthday should be
// congratulated on. Date is the birthday's next occurrence shifted forward
// past the weekend, so it always falls on a working day.
type Reminder struct {
	Record Record
	Date   time.Time
}
