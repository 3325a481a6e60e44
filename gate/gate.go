package gate

import (
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Outcome is the single result of one confirmation prompt.
type Outcome int

const (
	Confirmed Outcome = iota
	Cancelled
	CommentRequested
	TimedOut
)

// The distinguished reaction emojis offered on a prompt.
const (
	EmojiConfirm = "✅" // white heavy check mark
	EmojiCancel  = "❌" // cross mark
	EmojiComment = "📝" // memo
)

// DefaultTimeout bounds the wait for a qualifying reaction.
const DefaultTimeout = 60 * time.Second

// Sender is the subset of *discordgo.Session the gate needs.
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
}

// Options selects which choices a prompt offers. Comment is optional.
type Options struct {
	OfferComment bool
}

// Reaction is one reaction-added event as seen by the gate.
type Reaction struct {
	MessageID string
	UserID    string
	Emoji     string
}

type waiter struct {
	messageID string
	userID    string
	emojis    []string
	ch        chan string
}

func (w *waiter) accepts(r Reaction) bool {
	if r.MessageID != w.messageID || r.UserID != w.userID {
		return false
	}
	for _, e := range w.emojis {
		if e == r.Emoji {
			return true
		}
	}
	return false
}

// Gate presents a yes/no(/comment) choice to exactly the triggering user and
// resolves it with a single outcome. Reaction events from the gateway are fed
// in via Deliver; anything not matching a pending prompt is ignored.
type Gate struct {
	mu      sync.Mutex
	waiters map[string]*waiter // keyed by prompt message ID
	timeout time.Duration
}

func New() *Gate {
	return NewWithTimeout(DefaultTimeout)
}

func NewWithTimeout(timeout time.Duration) *Gate {
	return &Gate{
		waiters: make(map[string]*waiter),
		timeout: timeout,
	}
}

// Deliver feeds one reaction-added event into the gate. It resolves at most
// one pending prompt; reactions from the wrong user, on the wrong message or
// with a foreign emoji neither resolve nor reset any wait.
func (g *Gate) Deliver(r Reaction) {
	g.mu.Lock()
	w, ok := g.waiters[r.MessageID]
	if !ok || !w.accepts(r) {
		g.mu.Unlock()
		return
	}
	delete(g.waiters, r.MessageID)
	g.mu.Unlock()

	w.ch <- r.Emoji
}

// Confirm sends a prompt embed to the channel, attaches the offered reactions
// (comment first if offered, then cancel, then confirm) and waits for one
// qualifying reaction from userID on that exact message. On Cancelled a
// visible notice is sent to the channel; a timeout is silent.
func (g *Gate) Confirm(s Sender, channelID, userID string, embed *discordgo.MessageEmbed, opts Options) (Outcome, error) {
	msg, err := s.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return TimedOut, err
	}

	emojis := []string{EmojiCancel, EmojiConfirm}
	if opts.OfferComment {
		emojis = []string{EmojiComment, EmojiCancel, EmojiConfirm}
	}
	for _, e := range emojis {
		if err := s.MessageReactionAdd(channelID, msg.ID, e); err != nil {
			log.Printf("Failed to add reaction %s to prompt %s: %v", e, msg.ID, err)
		}
	}

	w := &waiter{
		messageID: msg.ID,
		userID:    userID,
		emojis:    emojis,
		ch:        make(chan string, 1),
	}
	g.mu.Lock()
	g.waiters[msg.ID] = w
	g.mu.Unlock()

	timer := time.NewTimer(g.timeout)
	defer timer.Stop()

	select {
	case emoji := <-w.ch:
		switch emoji {
		case EmojiConfirm:
			return Confirmed, nil
		case EmojiComment:
			return CommentRequested, nil
		default:
			_, err := s.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
				Title:       "User cancel",
				Description: "Vorgang wurde aufgrund von User abgebrochen",
			})
			if err != nil {
				log.Printf("Failed to send cancellation notice: %v", err)
			}
			return Cancelled, nil
		}
	case <-timer.C:
		g.mu.Lock()
		delete(g.waiters, msg.ID)
		g.mu.Unlock()
		return TimedOut, nil
	}
}
