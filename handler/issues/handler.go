package issues

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"issuebot/gate"
	"issuebot/github"
	"issuebot/mapping"
	"issuebot/model"
	"issuebot/registry"
)

// channelAPI is the subset of *discordgo.Session the issue flow needs.
type channelAPI interface {
	gate.Sender
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Handler owns the issue drafting flow of one bot session: it turns channel
// messages in mapped channels into issue drafts, drives the confirmation
// gate and submits accepted drafts to GitHub.
type Handler struct {
	Store    *mapping.Store
	Registry *registry.Registry
	Gate     *gate.Gate
	Github   *github.Client
	Prefix   string
}

func New(store *mapping.Store, reg *registry.Registry, g *gate.Gate, gh *github.Client, prefix string) *Handler {
	return &Handler{
		Store:    store,
		Registry: reg,
		Gate:     g,
		Github:   gh,
		Prefix:   prefix,
	}
}

// MessageCreate handles new channel messages. Bot messages and prefix
// commands are ignored; the command router handles the latter.
func (h *Handler) MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	if h.Prefix != "" && strings.HasPrefix(m.Content, h.Prefix) {
		return
	}
	h.handleMessage(s, m)
}

// MessageReactionAdd feeds reaction events into the confirmation gate.
func (h *Handler) MessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}
	h.Gate.Deliver(gate.Reaction{
		MessageID: r.MessageID,
		UserID:    r.UserID,
		Emoji:     r.Emoji.Name,
	})
}

// handleMessage runs the draft state machine for one inbound message and
// sweeps expired drafts afterwards. discordgo dispatches every event on its
// own goroutine, so blocking on the gate here does not stall other users.
func (h *Handler) handleMessage(api channelAPI, m *discordgo.MessageCreate) {
	if _, ok := h.Store.First(m.ChannelID); !ok {
		return
	}

	if draft := h.Registry.Get(m.Author.ID); draft == nil {
		h.startDraft(api, m)
	} else {
		h.collectComment(api, m, draft)
	}

	h.Registry.Sweep(time.Now())
}

// startDraft creates a draft from the message and runs the first
// confirmation step, offering confirm, cancel and add-comment.
func (h *Handler) startDraft(api channelAPI, m *discordgo.MessageCreate) {
	draft, created := h.Registry.GetOrCreate(m.Author.ID, m.ChannelID, m.Content, toAttachments(m.Attachments))
	if !created {
		// Lost a race against another message of the same user; that
		// event's flow owns the draft now.
		return
	}

	desc := fmt.Sprintf("Issue `%s` absenden?", draft.Title)
	desc += fmt.Sprintf("\n%s um einen Kommentar hinzuzufügen", gate.EmojiComment)
	desc += fmt.Sprintf("\n%s um den Vorgang abzubrechen", gate.EmojiCancel)
	desc += fmt.Sprintf("\n%s um zu bestätigen und den Issue abzusenden", gate.EmojiConfirm)

	outcome, err := h.Gate.Confirm(api, m.ChannelID, m.Author.ID, &discordgo.MessageEmbed{
		Title:       "Issue absenden?",
		Description: desc,
	}, gate.Options{OfferComment: true})
	if err != nil {
		log.Printf("Error running confirmation prompt for user %s: %v", m.Author.ID, err)
		h.Registry.Remove(m.Author.ID)
		return
	}

	switch outcome {
	case gate.Confirmed:
		if h.submit(api, draft) == SubmitCreated {
			h.Registry.Remove(m.Author.ID)
		}
	case gate.Cancelled:
		// Notice already sent by the gate.
		h.Registry.Remove(m.Author.ID)
	case gate.CommentRequested:
		draft.State = model.StateAwaitingComment
		_, err := api.ChannelMessageSendEmbed(m.ChannelID, &discordgo.MessageEmbed{
			Title:       "Nachricht eingeben",
			Description: "Bevor der Entwurf abläuft wird eine Nachricht erwartet, welche als Kommentar an den Issue gehangen wird",
		})
		if err != nil {
			log.Printf("Failed to send comment instruction: %v", err)
		}
	case gate.TimedOut:
		h.Registry.Remove(m.Author.ID)
		log.Printf("Confirmation prompt for draft %s of user %s timed out", draft.ID, m.Author.ID)
	}
}

// collectComment treats the message as the comment body of the existing
// draft and runs the preview confirmation step, offering confirm and cancel
// only.
func (h *Handler) collectComment(api channelAPI, m *discordgo.MessageCreate, draft *model.IssueDraft) {
	draft.Body = m.Content
	draft.Attachments = append(draft.Attachments, toAttachments(m.Attachments)...)

	outcome, err := h.Gate.Confirm(api, m.ChannelID, m.Author.ID, &discordgo.MessageEmbed{
		Title:       "Folgenden Issue hochladen",
		Description: fmt.Sprintf("Titel: `%s`\nNachricht:\n```md\n%s```", draft.Title, renderBody(draft)),
	}, gate.Options{})
	if err != nil {
		log.Printf("Error running preview prompt for user %s: %v", m.Author.ID, err)
		h.Registry.Remove(m.Author.ID)
		return
	}

	switch outcome {
	case gate.Confirmed:
		if h.submit(api, draft) == SubmitCreated {
			h.Registry.Remove(m.Author.ID)
		}
	case gate.Cancelled:
		h.Registry.Remove(m.Author.ID)
	case gate.TimedOut:
		h.Registry.Remove(m.Author.ID)
		log.Printf("Preview prompt for draft %s of user %s timed out", draft.ID, m.Author.ID)
	}
}

func toAttachments(atts []*discordgo.MessageAttachment) []model.Attachment {
	var out []model.Attachment
	for _, a := range atts {
		out = append(out, model.Attachment{
			ID:       a.ID,
			URL:      a.URL,
			Filename: a.Filename,
		})
	}
	return out
}
