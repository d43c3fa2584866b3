package main

import (
	"context"
	"errors"
	"time"

	"github.com/Brawl345/raven/bot"
	"github.com/Brawl345/raven/config"
	"github.com/Brawl345/raven/logger"
	"github.com/Brawl345/raven/model/sql"
	"github.com/Brawl345/raven/plugin"
	"github.com/Brawl345/raven/plugin/about"
	"github.com/Brawl345/raven/plugin/antilink"
	"github.com/Brawl345/raven/plugin/antispam"
	"github.com/Brawl345/raven/plugin/antiviewonce"
	"github.com/Brawl345/raven/plugin/id"
	"github.com/Brawl345/raven/plugin/manager"
	"github.com/Brawl345/raven/plugin/menu"
	"github.com/Brawl345/raven/plugin/monsterinfo"
	"github.com/Brawl345/raven/plugin/ping"
	"github.com/Brawl345/raven/plugin/settings"
	"github.com/Brawl345/raven/plugin/welcome"
	"github.com/Brawl345/raven/telegram"
	"github.com/Brawl345/raven/utils"
	"github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	_ "github.com/joho/godotenv/autoload"
)

var log = logger.New("main")

func main() {
	versionInfo, err := utils.ReadVersionInfo()
	if err == nil {
		log.Info().Msgf("Raven-%s, %v", versionInfo.ShortRevision(), versionInfo.LastCommit)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Send()
	}

	db, err := sql.New(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	defer db.Close()
	log.Info().Str("driver", cfg.Database.Driver).Msg("Database connection established")

	ctx := context.Background()
	settingsService := sql.NewSettingsService(db)
	chatsCommandsService := sql.NewChatsCommandsService(db)

	registry := bot.NewRegistry()
	managerService, err := bot.NewManagerService(ctx, chatsCommandsService, registry)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load disabled commands")
	}

	monsterPlugin, err := monsterinfo.New()
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	managerPlugin := manager.New(managerService)
	managerService.Protect(managerPlugin.ProtectedCommands()...)
	antiViewOncePlugin := antiviewonce.New()

	plugins := []plugin.Plugin{
		menu.New(registry),
		about.New(),
		id.New(),
		ping.New(),
		settings.New(),
		antiViewOncePlugin,
		monsterPlugin,
		managerPlugin,
	}
	for i, plg := range plugins {
		log.Info().Msgf("Registering plugin (%d/%d): %s", i+1, len(plugins), plg.Name())
		if err := registry.RegisterAll(plg.Commands()...); err != nil {
			log.Error().Err(err).Str("plugin", plg.Name()).Msg("Some commands were not registered")
		}
	}

	dispatcher := bot.NewDispatcher(bot.DispatcherOpts{
		Registry: registry,
		Gate:     bot.NewGate(cfg.Owners, cfg.Premium),
		Settings: settingsService,
		Config:   cfg,
		Manager:  managerService,
		Watchers: []plugin.Watcher{
			welcome.New(),
			antilink.New(),
			antispam.New(cfg.Antispam.Rate, cfg.Antispam.Burst),
			antiViewOncePlugin,
		},
	})

	b, err := gotgbot.NewBot(cfg.BotToken, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	updateDispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Processor: telegram.NewProcessor(dispatcher, settingsService, cfg.Prefix),
		Error: func(b *gotgbot.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			log.Err(err).Msg("Error while handling update")
			return ext.DispatcherActionNoop
		},
		Panic: func(b *gotgbot.Bot, ctx *ext.Context, r any) {
			log.Err(errors.New("panic")).Msgf("%v", r)
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(updateDispatcher, nil)

	err = updater.StartPolling(b, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &gotgbot.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &gotgbot.RequestOpts{
				Timeout: 10 * time.Second,
			},
			AllowedUpdates: []string{"message"},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start polling")
	}

	log.Info().Msgf("Logged in as @%s (%d), prefix %q", b.Username, b.Id, cfg.Prefix)
	updater.Idle()
}
