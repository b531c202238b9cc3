package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/gateway/config"
	"github.com/dinehall/booking-service/gateway/internal/handler"
	"github.com/dinehall/booking-service/pkg/kafka"
	"github.com/dinehall/booking-service/pkg/logger"
	"github.com/dinehall/booking-service/pkg/server"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "gateway")

	var producer sarama.SyncProducer
	if len(cfg.Kafka.Addrs) > 0 {
		p, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Warn("kafka producer disabled", zap.Error(err))
		} else {
			producer = p
		}
	}

	h := handler.New(log.Named("handler"), cfg, producer)

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

	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if producer != nil {
		_ = producer.Close() //nolint:errcheck
	}
	log.Info("Graceful shutdown finished")
	return nil
}
