package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"starboard/clients"
	discordclient "starboard/clients/discord"
	"starboard/config"
	"starboard/db"
	"starboard/services/blockedmessages"
	"starboard/services/channelsettings"
	"starboard/services/guildsettings"
	"starboard/services/starcounts"
	"starboard/services/starredmessages"
	"starboard/services/txmanager"
	"starboard/usecases/star"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	guildSettingsRepo := db.NewPostgresGuildSettingsRepository(dbConn, cfg.DatabaseSchema)
	channelSettingsRepo := db.NewPostgresChannelSettingsRepository(dbConn, cfg.DatabaseSchema)
	starCountsRepo := db.NewPostgresStarCountsRepository(dbConn, cfg.DatabaseSchema)
	starredMessagesRepo := db.NewPostgresStarredMessagesRepository(dbConn, cfg.DatabaseSchema)
	blockedMessagesRepo := db.NewPostgresBlockedMessagesRepository(dbConn, cfg.DatabaseSchema)

	// Initialize transaction manager
	txManager := txmanager.NewTransactionManager(dbConn)

	guildSettingsService, err := guildsettings.NewGuildSettingsService(guildSettingsRepo, cfg.SettingsCacheSize)
	if err != nil {
		return err
	}
	channelSettingsService := channelsettings.NewChannelSettingsService(channelSettingsRepo)
	starCountsService := starcounts.NewStarCountsService(starCountsRepo)
	starredMessagesService := starredmessages.NewStarredMessagesService(starredMessagesRepo)
	blockedMessagesService := blockedmessages.NewBlockedMessagesService(blockedMessagesRepo)

	session, err := discordgo.New("Bot " + cfg.DiscordConfig.BotToken)
	if err != nil {
		return err
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions

	discordClient := discordclient.NewDiscordClient(session, cfg.DiscordConfig.ApplicationID)

	starUseCase := star.NewStarUseCase(
		discordClient,
		guildSettingsService,
		channelSettingsService,
		starCountsService,
		starredMessagesService,
		blockedMessagesService,
		txManager,
		cfg.DiscordConfig.IgnoreEmojiID,
	)

	dispatcher := newReactionDispatcher(starUseCase, discordClient)
	session.AddHandler(dispatcher.handleReactionAdd)
	session.AddHandler(dispatcher.handleReactionRemove)

	commandHandler := newCommandHandler(starUseCase, guildSettingsService, channelSettingsService)
	session.AddHandler(commandHandler.handleInteraction)

	if err := session.Open(); err != nil {
		return err
	}
	defer session.Close()

	if err := registerCommands(session, cfg.DiscordConfig.ApplicationID); err != nil {
		return err
	}

	botUser, err := discordClient.GetBotUser()
	if err != nil {
		return err
	}
	log.Printf("✅ Starboard connected as %s", connectedBotName(botUser))
	return waitForShutdown()
}

// connectedBotName prefers the display name Discord shows in guilds over the
// raw account username.
func connectedBotName(user *clients.DiscordUser) string {
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

func waitForShutdown() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")
	return nil
}
