package registry

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"issuebot/model"
)

// TTL is the absolute lifetime of a draft from its creation.
const TTL = 5 * time.Minute

// Registry holds the in-flight issue draft of every user, at most one per
// user. discordgo dispatches events on separate goroutines, so all access
// goes through the mutex.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*model.IssueDraft
}

func New() *Registry {
	return &Registry{drafts: make(map[string]*model.IssueDraft)}
}

// Get returns the user's in-flight draft, or nil if there is none.
func (r *Registry) Get(userID string) *model.IssueDraft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drafts[userID]
}

// GetOrCreate returns the user's draft, creating one if absent. A new draft
// is seeded with the message text as title (falling back to a fixed label
// when the message is attachment-only) and the message's attachments.
// The second return value reports whether a draft was created.
func (r *Registry) GetOrCreate(userID, channelID, content string, attachments []model.Attachment) (*model.IssueDraft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.drafts[userID]; ok {
		return d, false
	}

	title := content
	if title == "" && len(attachments) > 0 {
		title = model.FallbackTitle
	}

	now := time.Now()
	d := &model.IssueDraft{
		ID:          uuid.New().String(),
		Owner:       userID,
		ChannelID:   channelID,
		Title:       title,
		Attachments: attachments,
		State:       model.StateAwaitingConfirmation,
		CreatedAt:   now,
		ExpiresAt:   now.Add(TTL),
	}
	r.drafts[userID] = d
	return d, true
}

// Remove drops the user's draft, if any.
func (r *Registry) Remove(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, userID)
}

// Len returns the number of registered drafts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}

// Sweep removes every draft whose deadline has passed and returns the removed
// drafts. It is run opportunistically after each processed event rather than
// on a timer. An outstanding confirmation prompt for a swept draft still
// resolves on its own terms; the sweep only stops the draft from being
// reused afterwards.
func (r *Registry) Sweep(now time.Time) []*model.IssueDraft {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []*model.IssueDraft
	for userID, d := range r.drafts {
		if d.Expired(now) {
			delete(r.drafts, userID)
			removed = append(removed, d)
			log.Printf("Removed expired issue draft %s of user %s", d.ID, userID)
		}
	}
	return removed
}
