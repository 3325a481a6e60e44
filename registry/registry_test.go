package registry

import (
	"testing"
	"time"

	"issuebot/model"
)

func TestGetOrCreate_SeedsTitleAndExpiry(t *testing.T) {
	r := New()

	d, created := r.GetOrCreate("user1", "chan1", "Fix crash", nil)
	if !created {
		t.Fatal("expected a new draft to be created")
	}
	if d.Title != "Fix crash" {
		t.Errorf("unexpected title: %q", d.Title)
	}
	if d.Owner != "user1" || d.ChannelID != "chan1" {
		t.Errorf("unexpected owner/channel: %q/%q", d.Owner, d.ChannelID)
	}
	if d.State != model.StateAwaitingConfirmation {
		t.Errorf("unexpected state: %v", d.State)
	}
	if got := d.ExpiresAt.Sub(d.CreatedAt); got != TTL {
		t.Errorf("expected expiry exactly %v after creation, got %v", TTL, got)
	}
}

func TestGetOrCreate_FallbackTitleForAttachmentOnlyMessage(t *testing.T) {
	r := New()

	atts := []model.Attachment{{ID: "a1", URL: "https://cdn.example/shot.png"}}
	d, _ := r.GetOrCreate("user1", "chan1", "", atts)
	if d.Title != model.FallbackTitle {
		t.Errorf("expected fallback title %q, got %q", model.FallbackTitle, d.Title)
	}
	if len(d.Attachments) != 1 {
		t.Errorf("expected seeded attachments, got %d", len(d.Attachments))
	}
}

func TestGetOrCreate_AtMostOneDraftPerUser(t *testing.T) {
	r := New()

	first, created := r.GetOrCreate("user1", "chan1", "first", nil)
	if !created {
		t.Fatal("expected first call to create")
	}
	second, created := r.GetOrCreate("user1", "chan1", "second", nil)
	if created {
		t.Error("expected second call not to create")
	}
	if second != first {
		t.Error("expected the existing draft to be returned")
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 draft, got %d", r.Len())
	}
}

func TestRemove_AllowsFreshDraft(t *testing.T) {
	r := New()

	r.GetOrCreate("user1", "chan1", "first", nil)
	r.Remove("user1")
	if r.Get("user1") != nil {
		t.Fatal("expected draft to be gone after Remove")
	}

	d, created := r.GetOrCreate("user1", "chan1", "second", nil)
	if !created || d.Title != "second" {
		t.Errorf("expected a fresh draft, created=%v title=%q", created, d.Title)
	}
}

func TestSweep_RemovesOnlyExpiredDrafts(t *testing.T) {
	r := New()

	expired, _ := r.GetOrCreate("user1", "chan1", "old", nil)
	fresh, _ := r.GetOrCreate("user2", "chan1", "new", nil)

	removed := r.Sweep(expired.ExpiresAt)
	if len(removed) != 1 || removed[0] != expired {
		t.Fatalf("expected exactly the expired draft to be removed, got %v", removed)
	}
	if r.Get("user1") != nil {
		t.Error("expected expired draft to be gone")
	}
	if r.Get("user2") != fresh {
		t.Error("expected fresh draft to survive the sweep")
	}
}

func TestSweep_NothingExpired(t *testing.T) {
	r := New()

	r.GetOrCreate("user1", "chan1", "x", nil)
	if removed := r.Sweep(time.Now()); len(removed) != 0 {
		t.Errorf("expected no drafts removed, got %d", len(removed))
	}
}
