package main

import (
	"context"

	"github.com/openjam/jamroom/pkg/bot"
	config "github.com/openjam/jamroom/pkg/config/bot"
	"github.com/openjam/jamroom/pkg/logger"
	"github.com/openjam/jamroom/pkg/os"
)

var Version = "?"

func main() {
	conf, err := config.NewConfig("")
	if err != nil {
		logger.Default().Fatal().Err(err).Msg("config load fail")
	}
	conf.ParseFlags()

	log := logger.NewConsole(conf.Bot.Debug, "b", false)
	log.Info().Msgf("version %s", Version)

	b, err := bot.New(conf.Bot, log)
	if err != nil {
		log.Fatal().Err(err).Msg("bot init fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-os.ExpectTermination()
		cancel()
	}()
	if err := b.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("bot run fail")
	}
}
