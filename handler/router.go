package handler

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"issuebot/config"
)

// CommandFunc handles one prefix command. args holds the words following the
// command name.
type CommandFunc func(s *discordgo.Session, m *discordgo.MessageCreate, args []string)

var commandHandlers = make(map[string]CommandFunc)

// AddCommandHandler registers a handler for a prefix command.
func AddCommandHandler(name string, handler CommandFunc) {
	commandHandlers[name] = handler
}

// OnMessageCreate is the main command router. Messages not starting with the
// configured prefix are left for other handlers.
func OnMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	prefix := config.Cfg.Prefix
	if prefix == "" || !strings.HasPrefix(m.Content, prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, prefix))
	if len(fields) == 0 {
		return
	}

	if handler, ok := commandHandlers[fields[0]]; ok {
		handler(s, m, fields[1:])
	}
}
