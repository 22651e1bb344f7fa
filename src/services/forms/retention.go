package forms

import "time"

// Retention bounds, exclusive on both ends.
const (
	MinRetentionDays = 1
	MaxRetentionDays = 60
)

const day = 24 * time.Hour

// ValidateRetention accepts a retention period whose derived delete date lies
// strictly between one day and sixty days from now.
func ValidateRetention(days int, now time.Time) error {
	// bounds first so the duration math below cannot overflow
	if days <= MinRetentionDays || days >= MaxRetentionDays {
		return ErrInvalidRetentionPeriod
	}
	return ValidateDeleteDate(now.Add(time.Duration(days)*day), now)
}

// ValidateDeleteDate is the absolute-date form of ValidateRetention.
func ValidateDeleteDate(deleteAt, now time.Time) error {
	if !deleteAt.After(now.Add(MinRetentionDays*day)) || !deleteAt.Before(now.Add(MaxRetentionDays*day)) {
		return ErrInvalidRetentionPeriod
	}
	return nil
}
