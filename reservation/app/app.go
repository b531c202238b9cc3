package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dinehall/booking-service/pkg/logger"
	"github.com/dinehall/booking-service/pkg/postgres"
	"github.com/dinehall/booking-service/pkg/server"
	"github.com/dinehall/booking-service/reservation/config"
	"github.com/dinehall/booking-service/reservation/internal/handler"
	"github.com/dinehall/booking-service/reservation/internal/repository"
	"github.com/dinehall/booking-service/reservation/internal/service"
	"github.com/dinehall/booking-service/reservation/internal/service/restaurant"
	"github.com/dinehall/booking-service/reservation/migrations"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "reservation")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo %v", err)
	}
	restaurantClient := restaurant.NewService(log, cfg)
	svc := service.NewService(repo, restaurantClient, log)
	h := handler.New(svc, log)

	srv := server.NewServer(cfg.ServerConfig(), h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}
