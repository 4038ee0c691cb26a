package app

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"os"
	"os/signal"
	"syscall"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka/consumer"
	"go-hrms/internal/notify"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	var mailer notify.Mailer
	if smtpAddr := os.Getenv("SMTP_ADDR"); smtpAddr != "" {
		from := os.Getenv("SMTP_FROM")
		var auth smtp.Auth
		if user := os.Getenv("SMTP_USER"); user != "" {
			host, _, _ := net.SplitHostPort(smtpAddr)
			auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASSWORD"), host)
		}
		mailer = notify.NewSMTPMailer(smtpAddr, from, auth)
	} else {
		mailer = notify.NewLogMailer(logger)
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmailRequestedTopic,
		GroupID:        "go-hrms-notifications",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmailRequested(ctx, reader, mailer, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
