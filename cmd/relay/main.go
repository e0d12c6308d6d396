package main

import (
	"context"
	"time"

	config "github.com/openjam/jamroom/pkg/config/relay"
	"github.com/openjam/jamroom/pkg/logger"
	"github.com/openjam/jamroom/pkg/os"
	"github.com/openjam/jamroom/pkg/relay"
)

var Version = "?"

func main() {
	conf, err := config.NewConfig("")
	if err != nil {
		logger.Default().Fatal().Err(err).Msg("config load fail")
	}
	conf.ParseFlags()

	log := logger.NewConsole(conf.Relay.Debug, "r", false)

	log.Info().Msgf("version %s", Version)
	if log.GetLevel() < logger.InfoLevel {
		log.Debug().Msgf("config: %+v", conf)
	}

	if conf.Relay.LockFile != "" {
		lock, err := os.NewFileLock(conf.Relay.LockFile)
		if err != nil {
			log.Fatal().Err(err).Msg("lock file fail")
		}
		if err := lock.Lock(); err != nil {
			log.Fatal().Err(err).Msg("another instance holds the lock")
		}
		defer func() { _ = lock.Unlock() }()
	}

	r, err := relay.New(conf, log)
	if err != nil {
		log.Fatal().Err(err).Msg("relay init fail")
	}
	r.Start()

	<-os.ExpectTermination()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("service shutdown errors")
	}
}
