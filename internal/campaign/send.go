package campaign

import (
	"context"
	"log"

	"github.com/wneessen/go-mail"
	"golang.org/x/time/rate"
)

// SMTPConfig carries everything needed to talk to the outbound relay.
// The password comes from the keychain, never from the yaml file.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends rendered messages through SMTP, throttled so bulk runs
// don't trip relay limits.
type Mailer struct {
	cfg       SMTPConfig
	batchSize int
	limiter   *rate.Limiter
}

// NewMailer builds a mailer sending at most sendsPerSecond, in batches
// of batchSize for progress reporting.
func NewMailer(cfg SMTPConfig, batchSize int, sendsPerSecond float64) *Mailer {
	if batchSize <= 0 {
		batchSize = 10
	}
	if sendsPerSecond <= 0 {
		sendsPerSecond = 0.5
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &Mailer{
		cfg:       cfg,
		batchSize: batchSize,
		limiter:   rate.NewLimiter(rate.Limit(sendsPerSecond), 1),
	}
}

// SendBulk sends every message, one at a time. Per-message failures are
// logged and counted; they never abort the batch.
func (m *Mailer) SendBulk(ctx context.Context, msgs []Message) (sent, failed int) {
	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		log.Printf("[campaign] smtp client: %v", err)
		return 0, len(msgs)
	}

	for i, msg := range msgs {
		if i%m.batchSize == 0 {
			log.Printf("[campaign] batch %d/%d", i/m.batchSize+1, (len(msgs)+m.batchSize-1)/m.batchSize)
		}

		if err := m.limiter.Wait(ctx); err != nil {
			log.Printf("[campaign] send loop stopped: %v", err)
			failed += len(msgs) - sent - failed
			return sent, failed
		}

		if err := m.sendOne(ctx, client, msg); err != nil {
			log.Printf("[campaign] send to %s: %v", msg.RecipientEmail, err)
			failed++
			continue
		}
		sent++
	}

	log.Printf("[campaign] sent=%d failed=%d", sent, failed)
	return sent, failed
}

func (m *Mailer) sendOne(ctx context.Context, client *mail.Client, msg Message) error {
	em := mail.NewMsg()
	if err := em.From(m.cfg.From); err != nil {
		return err
	}
	if err := em.To(msg.RecipientEmail); err != nil {
		return err
	}
	em.Subject(msg.Subject)
	em.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	return client.DialAndSendWithContext(ctx, em)
}
