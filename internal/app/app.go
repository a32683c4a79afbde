// Package app wires the fetch, filter, render, send pipeline for one run.
package app

import (
	"context"
	"time"

	"github.com/deusflow/findigest/internal/config"
	"github.com/deusflow/findigest/internal/digest"
	"github.com/deusflow/findigest/internal/logger"
	"github.com/deusflow/findigest/internal/mailaddr"
	"github.com/deusflow/findigest/internal/mailer"
	"github.com/deusflow/findigest/internal/metrics"
	"github.com/deusflow/findigest/internal/news"
	"github.com/deusflow/findigest/internal/rss"
)

// SendFunc delivers one assembled message. Swapped out in tests.
type SendFunc func(cfg mailer.Config, msg mailer.Message) error

// App runs the digest pipeline once. All configuration is injected; there is
// no ambient state besides the run counters.
type App struct {
	cfg  *config.Config
	send SendFunc
	now  func() time.Time
}

func New(cfg *config.Config) *App {
	return &App{cfg: cfg, send: mailer.Send, now: time.Now}
}

// Run executes one digest cycle. A no-news day is a successful run that
// sends nothing.
func (a *App) Run(ctx context.Context) error {
	now := a.now()

	results := rss.FetchAll(ctx, a.cfg.Feeds, a.cfg.FetchTimeout)
	articles := news.Filter(results, a.cfg.Keywords, a.cfg.RecencyWindow, now)
	logger.Info("articles selected", "count", len(articles))

	if len(articles) == 0 {
		logger.Info("no new articles, skipping mail")
		metrics.Global.SetLastRun()
		return nil
	}

	body, err := digest.Render(articles)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	subject := digest.Subject(now)

	from, err := mailaddr.Clean(a.cfg.SenderEmail)
	if err != nil {
		logger.Error("sender address unusable", "raw", a.cfg.SenderEmail, "error", err)
		metrics.Global.SetError(err.Error())
		return err
	}
	to, err := mailaddr.Clean(a.cfg.ReceiverEmail)
	if err != nil {
		logger.Error("receiver address unusable", "raw", a.cfg.ReceiverEmail, "error", err)
		metrics.Global.SetError(err.Error())
		return err
	}

	msg := mailer.Message{Subject: subject, HTMLBody: body, From: from, To: to}
	smtpCfg := mailer.Config{Host: a.cfg.SMTPHost, Port: a.cfg.SMTPPort, Password: a.cfg.EmailPassword}

	if err := a.send(smtpCfg, msg); err != nil {
		// Raw and cleaned addresses side by side; the secret only as a
		// length hint.
		logger.Error("digest send failed",
			"from_raw", a.cfg.SenderEmail, "from", from,
			"to_raw", a.cfg.ReceiverEmail, "to", to,
			"secret_len", len(a.cfg.EmailPassword),
			"error", err)
		metrics.Global.SetError(err.Error())
		return err
	}

	metrics.Global.SetLastRun()
	logger.Info("run complete", "stats", metrics.Global.GetStats())
	return nil
}
