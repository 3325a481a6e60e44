package gate

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

type fakeSender struct {
	mu        sync.Mutex
	nextID    int
	embeds    []*discordgo.MessageEmbed
	reactions []string
	sent      chan *discordgo.Message
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(chan *discordgo.Message, 16)}
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	f.nextID++
	msg := &discordgo.Message{ID: fmt.Sprintf("msg-%d", f.nextID), ChannelID: channelID}
	f.embeds = append(f.embeds, embed)
	f.mu.Unlock()
	f.sent <- msg
	return msg, nil
}

func (f *fakeSender) MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reactions = append(f.reactions, emojiID)
	return nil
}

func (f *fakeSender) lastEmbed() *discordgo.MessageEmbed {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.embeds[len(f.embeds)-1]
}

func confirmAsync(g *Gate, s Sender, channelID, userID string, opts Options) chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		o, _ := g.Confirm(s, channelID, userID, &discordgo.MessageEmbed{Title: "prompt"}, opts)
		out <- o
	}()
	return out
}

func TestConfirm_ConfirmReaction(t *testing.T) {
	g := NewWithTimeout(2 * time.Second)
	fs := newFakeSender()

	out := confirmAsync(g, fs, "chan1", "user1", Options{OfferComment: true})
	prompt := <-fs.sent

	g.Deliver(Reaction{MessageID: prompt.ID, UserID: "user1", Emoji: EmojiConfirm})

	if o := <-out; o != Confirmed {
		t.Errorf("expected Confirmed, got %v", o)
	}
}

func TestConfirm_ReactionOrder(t *testing.T) {
	g := NewWithTimeout(200 * time.Millisecond)
	fs := newFakeSender()

	out := confirmAsync(g, fs, "chan1", "user1", Options{OfferComment: true})
	prompt := <-fs.sent
	g.Deliver(Reaction{MessageID: prompt.ID, UserID: "user1", Emoji: EmojiConfirm})
	<-out

	want := []string{EmojiComment, EmojiCancel, EmojiConfirm}
	if len(fs.reactions) != len(want) {
		t.Fatalf("expected %d reactions, got %v", len(want), fs.reactions)
	}
	for i, e := range want {
		if fs.reactions[i] != e {
			t.Errorf("reaction %d: expected %q, got %q", i, e, fs.reactions[i])
		}
	}
}

func TestConfirm_CancelSendsNotice(t *testing.T) {
	g := NewWithTimeout(2 * time.Second)
	fs := newFakeSender()

	out := confirmAsync(g, fs, "chan1", "user1", Options{})
	prompt := <-fs.sent

	g.Deliver(Reaction{MessageID: prompt.ID, UserID: "user1", Emoji: EmojiCancel})

	if o := <-out; o != Cancelled {
		t.Fatalf("expected Cancelled, got %v", o)
	}
	<-fs.sent // the cancellation notice
	if notice := fs.lastEmbed(); !strings.Contains(notice.Description, "abgebrochen") {
		t.Errorf("expected cancellation notice, got %q", notice.Description)
	}
}

func TestConfirm_CommentRequested(t *testing.T) {
	g := NewWithTimeout(2 * time.Second)
	fs := newFakeSender()

	out := confirmAsync(g, fs, "chan1", "user1", Options{OfferComment: true})
	prompt := <-fs.sent

	g.Deliver(Reaction{MessageID: prompt.ID, UserID: "user1", Emoji: EmojiComment})

	if o := <-out; o != CommentRequested {
		t.Errorf("expected CommentRequested, got %v", o)
	}
}

func TestConfirm_CommentNotOfferedIsIgnored(t *testing.T) {
	g := NewWithTimeout(300 * time.Millisecond)
	fs := newFakeSender()

	out := confirmAsync(g, fs, "chan1", "user1", Options{})
	prompt := <-fs.sent

	// Not among the offered emojis, so the wait must run out.
	g.Deliver(Reaction{MessageID: prompt.ID, UserID: "user1", Emoji: EmojiComment})

	if o := <-out; o != TimedOut {
		t.Errorf("expected TimedOut, got %v", o)
	}
}

func TestConfirm_IgnoresNoise(t *testing.T) {
	g := NewWithTimeout(2 * time.Second)
	fs := newFakeSender()

	out := confirmAsync(g, fs, "chan1", "user1", Options{OfferComment: true})
	prompt := <-fs.sent

	// Wrong user, wrong message and foreign emoji must neither resolve nor
	// reset the wait.
	g.Deliver(Reaction{MessageID: prompt.ID, UserID: "someone-else", Emoji: EmojiConfirm})
	g.Deliver(Reaction{MessageID: "other-message", UserID: "user1", Emoji: EmojiConfirm})
	g.Deliver(Reaction{MessageID: prompt.ID, UserID: "user1", Emoji: "🎉"})

	select {
	case o := <-out:
		t.Fatalf("gate resolved on noise with %v", o)
	case <-time.After(100 * time.Millisecond):
	}

	g.Deliver(Reaction{MessageID: prompt.ID, UserID: "user1", Emoji: EmojiConfirm})
	if o := <-out; o != Confirmed {
		t.Errorf("expected Confirmed, got %v", o)
	}
}

func TestConfirm_Timeout(t *testing.T) {
	g := NewWithTimeout(100 * time.Millisecond)
	fs := newFakeSender()

	out := confirmAsync(g, fs, "chan1", "user1", Options{OfferComment: true})
	prompt := <-fs.sent

	if o := <-out; o != TimedOut {
		t.Fatalf("expected TimedOut, got %v", o)
	}

	// A late reaction on the abandoned prompt must not do anything.
	g.Deliver(Reaction{MessageID: prompt.ID, UserID: "user1", Emoji: EmojiConfirm})
}
