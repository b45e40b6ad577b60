package main

import (
	"pitstop/config"
	"pitstop/infras/filestore"
	bookingRepository "pitstop/internal/domains/booking/repository"
	bookingService "pitstop/internal/domains/booking/service"
	bookingHandler "pitstop/internal/handlers/booking"
	"pitstop/shared/logger"
	"pitstop/transport/http"
	"pitstop/transport/http/middleware"
	"pitstop/transport/http/router"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	store, err := filestore.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize file store")
	}

	repo := bookingRepository.New(store)
	service := bookingService.New(repo)
	handler := bookingHandler.New(service)

	r := router.New(router.DomainHandlers{
		Booking: handler,
	})

	server := http.New(cfg, r, middleware.NewAppMiddleware(cfg))
	server.Serve()
}
