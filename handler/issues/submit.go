package issues

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"issuebot/db"
	"issuebot/github"
	"issuebot/model"
)

// SubmitResult is the outcome of one submission attempt.
type SubmitResult int

const (
	SubmitCreated SubmitResult = iota
	SubmitDisabled
	SubmitFailed
	SubmitInvalidChannel
)

const submitTimeout = 30 * time.Second

// submit creates the issue on the repository mapped to the draft's channel
// and reports the outcome to the channel. Exactly one notice is sent per
// attempt. The caller decides whether the draft survives; only SubmitCreated
// is terminal.
func (h *Handler) submit(api channelAPI, draft *model.IssueDraft) SubmitResult {
	pair, ok := h.Store.First(draft.ChannelID)
	if !ok {
		// The message was only accepted because a mapping existed, so the
		// mapping vanished mid-flight.
		log.Printf("No repository mapping for channel %s while submitting draft %s", draft.ChannelID, draft.ID)
		h.sendError(api, draft.ChannelID, "Invalid channel id")
		return SubmitInvalidChannel
	}

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	issue, err := h.Github.CreateIssue(ctx, pair.RepoOwner, pair.RepoName, draft.Title, renderBody(draft))
	if errors.Is(err, github.ErrIssuesDisabled) {
		h.sendError(api, draft.ChannelID, "Issue konnte nicht veröffentlicht werden, da das Repository Issues deaktiviert hat.")
		return SubmitDisabled
	}
	if err != nil {
		log.Printf("Could not create issue %q on %s/%s: %v", draft.Title, pair.RepoOwner, pair.RepoName, err)
		h.sendError(api, draft.ChannelID, "Etwas ist schiefgelaufen.")
		return SubmitFailed
	}

	issueURL := fmt.Sprintf("https://github.com/%s/%s/issues/%d", pair.RepoOwner, pair.RepoName, issue.Number)
	_, err = api.ChannelMessageSendEmbed(draft.ChannelID, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Issue `%s`", draft.Title),
		Description: fmt.Sprintf("Issue wurde erfolgreich unter %s erstellt!", issueURL),
	})
	if err != nil {
		log.Printf("Failed to send success notice: %v", err)
	}

	if _, err := db.AddIssueRecord(draft.Owner, draft.ChannelID, pair.RepoOwner, pair.RepoName, issue.Number, issueURL, draft.Title); err != nil {
		log.Printf("Failed to record issue %s in history: %v", issueURL, err)
	}

	return SubmitCreated
}

// renderBody renders the issue body: the draft's comment text followed by a
// markdown image section listing every attachment in accumulation order.
func renderBody(d *model.IssueDraft) string {
	b := d.Body
	if len(d.Attachments) > 0 {
		b += "\n\n### Bilder:  \n"
		for _, a := range d.Attachments {
			b += fmt.Sprintf("![Bild](%s)\n", a.URL)
		}
	}
	return b
}

func (h *Handler) sendError(api channelAPI, channelID, description string) {
	_, err := api.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       "Error",
		Description: description,
	})
	if err != nil {
		log.Printf("Failed to send error notice: %v", err)
	}
}
