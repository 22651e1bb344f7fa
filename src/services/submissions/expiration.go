package submissions

import "Bizonii-Backend/src/models"

// ExpirationTime is the epoch second at which a submission created at
// creation under a form with the given retention period expires.
func ExpirationTime(creation int64, retentionDays int) int64 {
	return creation + int64(retentionDays)*models.SecondsInOneDay
}

// IsExpired reports whether s is due for deletion at now (epoch seconds).
func IsExpired(s models.Submission, now int64) bool {
	return s.SubmissionExpirationTime <= now
}
