package domain

import (
	"time"
)

// Activity type constants.
const (
	ActivityTypeWorkout = "workout"
	ActivityTypeMeal    = "meal"
	ActivityTypeSteps   = "steps"
)

// Activity status constants.
const (
	ActivityStatusPlanned    = "planned"
	ActivityStatusInProgress = "in_progress"
	ActivityStatusCompleted  = "completed"
)

// DateLayout is the calendar date format used on the wire (ISO 8601).
const DateLayout = "2006-01-02"

// Activity represents one tracked activity as the server returns it. The
// server owns these records; the client only ever holds a transient cached
// copy and treats the server's list response as ground truth.
type Activity struct {
	ID           int64  `json:"id"`
	User         int64  `json:"user"`
	ActivityType string `json:"activity_type"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ActivityPayload is the user-supplied subset of Activity fields used as the
// request body for create and update calls. The wire shape is identical for
// both.
type ActivityPayload struct {
	ActivityType string `json:"activity_type" validate:"required,oneof=workout meal steps"`
	Description  string `json:"description" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Status       string `json:"status" validate:"required,oneof=planned in_progress completed"`
}

// DefaultActivityPayload returns the form defaults: a planned workout dated
// today with an empty description.
func DefaultActivityPayload(now time.Time) ActivityPayload {
	return ActivityPayload{
		ActivityType: ActivityTypeWorkout,
		Description:  "",
		Date:         now.Format(DateLayout),
		Status:       ActivityStatusPlanned,
	}
}

// PayloadFrom copies an existing activity's editable fields into a payload,
// for populating the edit form.
func PayloadFrom(a Activity) ActivityPayload {
	return ActivityPayload{
		ActivityType: a.ActivityType,
		Description:  a.Description,
		Date:         a.Date,
		Status:       a.Status,
	}
}

// ValidActivityTypes returns the set of valid activity types.
func ValidActivityTypes() []string {
	return []string{ActivityTypeWorkout, ActivityTypeMeal, ActivityTypeSteps}
}

// IsValidActivityType checks whether the given string is a valid activity type.
func IsValidActivityType(t string) bool {
	for _, v := range ValidActivityTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// ValidActivityStatuses returns the set of valid activity statuses.
func ValidActivityStatuses() []string {
	return []string{ActivityStatusPlanned, ActivityStatusInProgress, ActivityStatusCompleted}
}

// IsValidActivityStatus checks whether the given string is a valid activity status.
func IsValidActivityStatus(s string) bool {
	for _, v := range ValidActivityStatuses() {
		if v == s {
			return true
		}
	}
	return false
}

// StatusLabel returns the human-readable label for an activity status.
func StatusLabel(status string) string {
	switch status {
	case ActivityStatusPlanned:
		return "Planned"
	case ActivityStatusInProgress:
		return "In Progress"
	case ActivityStatusCompleted:
		return "Completed"
	default:
		return status
	}
}
