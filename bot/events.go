package bot

import (
	"github.com/bwmarrin/discordgo"

	"issuebot/handler"
	"issuebot/handler/issues"
)

func registerEventHandlers(s *discordgo.Session, h *issues.Handler) {
	s.AddHandler(handler.OnMessageCreate)
	s.AddHandler(h.MessageCreate)
	s.AddHandler(h.MessageReactionAdd)

	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions | discordgo.IntentMessageContent
}
