package models

import "time"

// TimeEntry is the durable record of committed work time on a task.
// Every timer stop and every manual entry produces exactly one entry;
// a task's actual hours is the sum of its entries.
type TimeEntry struct {
	ID          int
	TaskID      int
	StartTime   time.Time // zero value for manual entries
	EndTime     time.Time // zero value for manual entries
	Hours       float64
	Description string
	Date        time.Time // the work date, not the insertion time
	CreatedAt   time.Time
}
