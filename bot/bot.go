package bot

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"issuebot/config"
	"issuebot/db"
	"issuebot/gate"
	"issuebot/github"
	"issuebot/handler/issues"
	"issuebot/mapping"
	"issuebot/registry"
)

var dg *discordgo.Session

// Run wires up all components, connects to the Discord gateway and blocks
// until the process is signalled.
func Run() {
	err := config.LoadConfig()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		return
	}
	if config.Cfg.Token == "" {
		log.Fatal("TOKEN is not set")
	}

	db.InitDB(config.Cfg.DBFile)

	store := mapping.NewStore(config.Cfg.MappingFile)
	if err := store.Load(); err != nil {
		log.Printf("Error loading repository mappings: %v", err)
		return
	}

	h := issues.New(
		store,
		registry.New(),
		gate.New(),
		github.New(config.Cfg.GithubToken),
		config.Cfg.Prefix,
	)
	h.RegisterCommands()

	dg, err = discordgo.New("Bot " + config.Cfg.Token)
	if err != nil {
		log.Printf("Error creating Discord session: %v", err)
		return
	}

	registerEventHandlers(dg, h)

	err = dg.Open()
	if err != nil {
		log.Printf("error opening connection, %v", err)
		return
	}

	log.Printf("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	dg.Close()
}

// GetSession returns the current Discord session.
func GetSession() *discordgo.Session {
	return dg
}
