package issues

import (
	"issuebot/handler"
)

// RegisterCommands registers all prefix commands of the issues package.
func (h *Handler) RegisterCommands() {
	handler.AddCommandHandler("add", h.addCommand)
	handler.AddCommandHandler("remove", h.removeCommand)
	handler.AddCommandHandler("list", h.listCommand)
	handler.AddCommandHandler("history", h.historyCommand)
}
