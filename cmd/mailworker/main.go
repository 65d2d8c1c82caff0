package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/crewdeckhq/crewdeck/internal/config"
	"github.com/crewdeckhq/crewdeck/pkg/mailer"
	"github.com/crewdeckhq/crewdeck/pkg/utils/logging"
)

//go:embed templates/*.html
var templatesFS embed.FS

var decisionTemplate = template.Must(template.ParseFS(templatesFS, "templates/exception_decision.html"))

func main() {
	mailEnv, err := config.LoadMailEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load environment: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.InitLogger(mailEnv.Environment, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, mailEnv); err != nil {
		logger.Error("Mail worker failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(logger *zap.Logger, mailEnv *config.MailEnv) error {
	logger.Info("Starting mail worker", zap.String("environment", mailEnv.Environment))

	cfg, err := config.LoadWithEnv(mailEnv.Environment)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, err := mail.NewClient(mailEnv.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithPort(mailEnv.SMTP.Port),
		mail.WithUsername(mailEnv.SMTP.Username),
		mail.WithPassword(mailEnv.SMTP.Password),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	defer client.Close()

	// Verify the SMTP connection before consuming anything, so a bad
	// credential fails the worker instead of requeueing every message
	dialCtx, cancelDial := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelDial()
	if err := client.DialWithContext(dialCtx); err != nil {
		return fmt.Errorf("failed to connect to mail server: %w", err)
	}
	logger.Debug("Mail server connection verified", zap.String("host", mailEnv.SMTP.Host))

	conn, err := amqp.Dial(mailEnv.RabbitMQDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to message broker: %w", err)
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	// Durable declare, matching the publisher side, so whichever end starts
	// first creates the queue
	queue, err := channel.QueueDeclare(mailer.QueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	deliveries, err := channel.Consume(queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		consume(ctx, logger, client, cfg.Notifications.Sender, deliveries)
	}()

	logger.Info("Mail worker ready", zap.String("queue", queue.Name))
	<-sigChan

	logger.Info("Shutting down mail worker")
	cancel()
	wg.Wait()
	logger.Info("Mail worker stopped cleanly")

	return nil
}

func consume(ctx context.Context, logger *zap.Logger, client *mail.Client, sender string, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				logger.Warn("Delivery channel closed by broker")
				return
			}
			handle(logger, client, sender, delivery)
		}
	}
}

// handle sends one queued notification. Malformed messages are dropped;
// transport failures are requeued so the message survives an SMTP outage.
func handle(logger *zap.Logger, client *mail.Client, sender string, delivery amqp.Delivery) {
	var message mailer.Message
	if err := json.Unmarshal(delivery.Body, &message); err != nil {
		logger.Error("Failed to decode message, dropping", zap.Error(err))
		delivery.Nack(false, false)
		return
	}

	logger.Info("Processing message",
		zap.String("type", message.Type),
		zap.String("to", message.To))

	msg := mail.NewMsg()
	if err := msg.From(sender); err != nil {
		logger.Error("Failed to set sender, dropping", zap.Error(err))
		delivery.Nack(false, false)
		return
	}
	if err := msg.To(message.To); err != nil {
		logger.Error("Failed to set recipient, dropping",
			zap.String("to", message.To),
			zap.Error(err))
		delivery.Nack(false, false)
		return
	}

	switch message.Type {
	case mailer.TypeExceptionDecision:
		var data mailer.ExceptionDecisionData
		if err := decodeData(message.Data, &data); err != nil {
			logger.Error("Failed to decode decision data, dropping", zap.Error(err))
			delivery.Nack(false, false)
			return
		}
		if err := msg.SetBodyHTMLTemplate(decisionTemplate, data); err != nil {
			logger.Error("Failed to render decision template, dropping", zap.Error(err))
			delivery.Nack(false, false)
			return
		}
		msg.Subject(fmt.Sprintf("Crewdeck - your %s request was %s", data.Type, data.Status))
	default:
		logger.Error("Unsupported message type, dropping", zap.String("type", message.Type))
		delivery.Nack(false, false)
		return
	}

	if err := client.DialAndSend(msg); err != nil {
		logger.Error("Failed to send mail, requeueing",
			zap.String("to", message.To),
			zap.Error(err))
		delivery.Nack(false, true)
		return
	}

	delivery.Ack(false)
	logger.Info("Notification sent", zap.String("to", message.To))
}

// decodeData re-decodes the envelope's raw payload into the typed data
// struct for the message type.
func decodeData(raw any, out any) error {
	buf, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, out)
}
