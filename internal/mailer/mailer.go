// Package mailer assembles the digest into a MIME message and sends it over
// an implicit-TLS SMTP session. One attempt per run, no retry.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"github.com/deusflow/findigest/internal/logger"
	"github.com/deusflow/findigest/internal/metrics"
)

// TransportError wraps an SMTP failure together with the envelope it
// happened on, so the run controller can report actionable context.
type TransportError struct {
	Stage string // dial, auth, mail, rcpt, data or close
	From  string
	To    string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("smtp %s failed (from=%s to=%s): %v", e.Stage, e.From, e.To, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Config is the SMTP endpoint and account secret.
type Config struct {
	Host     string
	Port     int
	Password string
}

// Message is one fully addressed digest mail. From and To must already be
// cleaned envelope addresses.
type Message struct {
	Subject  string
	HTMLBody string
	From     string
	To       string
}

// Send transmits the message in a single attempt. The session is closed on
// every exit path.
func Send(cfg Config, msg Message) error {
	payload := buildMIME(msg)

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: cfg.Host})
	if err != nil {
		return &TransportError{Stage: "dial", From: msg.From, To: msg.To, Err: err}
	}

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		conn.Close()
		return &TransportError{Stage: "dial", From: msg.From, To: msg.To, Err: err}
	}
	defer client.Close()

	auth := smtp.PlainAuth("", msg.From, cfg.Password, cfg.Host)
	if err := client.Auth(auth); err != nil {
		return &TransportError{Stage: "auth", From: msg.From, To: msg.To, Err: err}
	}

	if err := client.Mail(msg.From); err != nil {
		return &TransportError{Stage: "mail", From: msg.From, To: msg.To, Err: err}
	}
	if err := client.Rcpt(msg.To); err != nil {
		return &TransportError{Stage: "rcpt", From: msg.From, To: msg.To, Err: err}
	}

	w, err := client.Data()
	if err != nil {
		return &TransportError{Stage: "data", From: msg.From, To: msg.To, Err: err}
	}
	if _, err := w.Write(payload); err != nil {
		w.Close()
		return &TransportError{Stage: "data", From: msg.From, To: msg.To, Err: err}
	}
	if err := w.Close(); err != nil {
		return &TransportError{Stage: "data", From: msg.From, To: msg.To, Err: err}
	}

	if err := client.Quit(); err != nil {
		return &TransportError{Stage: "close", From: msg.From, To: msg.To, Err: err}
	}

	metrics.Global.IncrementEmailsSent()
	logger.Info("digest sent", "from", msg.From, "to", msg.To)
	return nil
}
