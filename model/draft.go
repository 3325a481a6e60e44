package model

import "time"

// DraftState tracks where a draft sits in the submission flow. Presence in
// the registry alone is not enough to tell whether the bot is waiting for a
// confirmation reaction or for a follow-up comment message.
type DraftState int

const (
	StateAwaitingConfirmation DraftState = iota
	StateAwaitingComment
)

// FallbackTitle is used when the triggering message has no text but carries
// attachments.
const FallbackTitle = "Siehe Bilder:"

// Attachment is a reference to an uploaded image carried by a Discord message.
type Attachment struct {
	ID       string
	URL      string
	Filename string
}

// IssueDraft is an in-progress issue being assembled from chat input.
// At most one draft exists per user at any time.
type IssueDraft struct {
	ID          string
	Owner       string // user ID of the drafting user
	ChannelID   string // channel the draft was started in
	Title       string
	Body        string
	Attachments []Attachment
	State       DraftState
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the draft's deadline has passed.
func (d *IssueDraft) Expired(now time.Time) bool {
	return !d.ExpiresAt.After(now)
}
