package models

// UserProfile is local-first and mirrored from the remote account after a
// successful login or registration.
type UserProfile struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	PeriodStartDate string `json:"periodStartDate"` // YYYY-MM-DD
}
