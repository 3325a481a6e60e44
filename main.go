package main

import (
	"issuebot/bot"
)

func main() {
	bot.Run()
}
