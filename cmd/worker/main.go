package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubhub/internal/config"
	"clubhub/internal/logging"
	"clubhub/internal/mailer"
	"clubhub/internal/queue"
	"clubhub/internal/store"
)

const ackSubject = "We received your application"

const ackBody = `Hi {{name}},

Thanks for applying to join the club! Your application is in and the
committee will review it shortly. You will hear from us either way.

See you around campus,
The ClubHub Team`

// ackJob mirrors the payload the API enqueues for each new application.
type ackJob struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// The worker drains the mail queue so a slow SMTP relay never delays an
// application submission.
func main() {
	cfg := config.Load()
	log := logging.New(cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("shutdown signal received")
		cancel()
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "")
	}

	sender := mailer.SMTPSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		From:     cfg.SMTPFrom,
		Password: cfg.SMTPPassword,
	}
	if cfg.SMTPFrom == "" {
		log.Warn("SMTP_FROM not set; acknowledgement emails will fail until configured")
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		log.WithError(err).Fatal("queue consume init failed")
	}

	log.Info("worker started, waiting for messages")
	for msg := range messages {
		if msg.Type != queue.TypeRegistrationEmail {
			continue
		}

		var job ackJob
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			log.WithError(err).Warn("bad mail job payload, dropping")
			continue
		}
		if job.Email == "" {
			log.WithField("name", job.Name).Warn("mail job without email, dropping")
			continue
		}

		body := mailer.RenderTemplate(ackBody, job.Name)
		if err := sender.Send(job.Email, ackSubject, body); err != nil {
			log.WithError(err).WithField("to", job.Email).Error("ack email send failed")
			continue
		}
		log.WithField("to", job.Email).Info("ack email sent")

		time.Sleep(10 * time.Millisecond)
	}

	log.Info("worker stopped")
}
