package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smartkiosk/console/internal/accounts"
	"github.com/smartkiosk/console/internal/config"
	"github.com/smartkiosk/console/internal/gateway"
	"github.com/smartkiosk/console/internal/notify"
	"github.com/smartkiosk/console/internal/playlist"
	"github.com/smartkiosk/console/internal/session"
)

func main() {
	cfg, err := config.LoadConsole()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	gw := gateway.NewClient(cfg.GatewayURL, nil)

	var store session.Store
	if cfg.RedisAddress != "" {
		store = session.NewRedisStore(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		log.Info().Str("addr", cfg.RedisAddress).Msg("using redis session store")
	} else {
		store = session.NewMemoryStore()
		log.Info().Msg("using in-memory session store")
	}
	gate := session.NewGate(gw, store, cfg.JWTSecret)

	var notifier playlist.Notifier
	if cfg.MQTTBrokerURL != "" {
		mq, err := notify.NewMQTT(cfg.MQTTBrokerURL, "smartkiosk-console")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MQTT broker")
		}
		defer mq.Close()
		notifier = mq
	}

	engine := playlist.NewEngine(gw, notifier)
	directory := accounts.NewDirectory(gw)

	r := gin.Default()
	RegisterRoutes(r, gate, engine, directory, gw)

	log.Info().Str("addr", cfg.ServerAddress).Str("gateway", cfg.GatewayURL).Msg("console listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
