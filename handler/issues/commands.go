package issues

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"issuebot/db"
	"issuebot/model"
)

const historyLimit = 10

const genericErrorText = "Etwas ist schiefgelaufen."

func (h *Handler) addCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	s.ChannelMessageSend(m.ChannelID, h.addReply(m.ChannelID, args))
}

func (h *Handler) removeCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	s.ChannelMessageSend(m.ChannelID, h.removeReply(m.ChannelID, args))
}

func (h *Handler) listCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	s.ChannelMessageSend(m.ChannelID, h.listReply(m.ChannelID))
}

func (h *Handler) historyCommand(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	s.ChannelMessageSend(m.ChannelID, h.historyReply(m.ChannelID))
}

// addReply maps the channel to a repository after checking that the
// repository exists on GitHub.
func (h *Handler) addReply(channelID string, args []string) string {
	if len(args) != 2 {
		return fmt.Sprintf("Ungültige Eingabe, bitte verwende ``%sadd <RepoOwner> <RepoName>``", h.Prefix)
	}

	pair := model.RepoMapping{
		ChannelID: channelID,
		RepoOwner: args[0],
		RepoName:  args[1],
	}

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()

	exists, err := h.Github.RepositoryExists(ctx, pair.RepoOwner, pair.RepoName)
	if err != nil {
		log.Printf("Error checking repository %s/%s: %v", pair.RepoOwner, pair.RepoName, err)
		return genericErrorText
	}
	if !exists {
		return fmt.Sprintf("Repository %s existiert nicht.", pair.RepoURL())
	}

	if _, err := h.Store.Add(pair); err != nil {
		log.Printf("Error saving repository mapping: %v", err)
		return genericErrorText
	}
	return fmt.Sprintf("Repository <%s> erfolgreich hinzugefügt.", pair.RepoURL())
}

// removeReply removes the exact channel/repository mapping.
func (h *Handler) removeReply(channelID string, args []string) string {
	if len(args) != 2 {
		return fmt.Sprintf("Ungültige Eingabe, bitte verwende ``%sremove <RepoOwner> <RepoName>``", h.Prefix)
	}

	pair := model.RepoMapping{
		ChannelID: channelID,
		RepoOwner: args[0],
		RepoName:  args[1],
	}

	removed, err := h.Store.Remove(pair)
	if err != nil {
		log.Printf("Error saving repository mapping: %v", err)
		return genericErrorText
	}
	if removed {
		return fmt.Sprintf("Repository <%s> wurde entfernt.", pair.RepoURL())
	}
	return fmt.Sprintf("Repository %s existiert nicht.", pair.RepoURL())
}

// listReply lists every repository mapped to the channel.
func (h *Handler) listReply(channelID string) string {
	var b strings.Builder
	for _, pair := range h.Store.ListChannel(channelID) {
		fmt.Fprintf(&b, "<%s>\n", pair.RepoURL())
	}
	if b.Len() == 0 {
		return "Keine Repositories vorhanden."
	}
	return b.String()
}

// historyReply lists the issues most recently created from the channel.
func (h *Handler) historyReply(channelID string) string {
	records, err := db.GetRecentIssuesByChannel(channelID, historyLimit)
	if err != nil {
		log.Printf("Error querying issue history for channel %s: %v", channelID, err)
		return genericErrorText
	}
	if len(records) == 0 {
		return "Keine Issues vorhanden."
	}

	var b strings.Builder
	b.WriteString("Zuletzt erstellte Issues:\n")
	for _, r := range records {
		fmt.Fprintf(&b, "<%s> `%s`\n", r.URL, r.Title)
	}
	return b.String()
}
