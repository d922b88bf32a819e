package intake

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/mikey/mail-sched-extractor/internal/core"
	"github.com/mikey/mail-sched-extractor/internal/ports"
)

// SMTPIntake receives emails over SMTP, runs the extraction pipeline on
// them and stores the resulting records. It can sit in a Postfix content
// filter slot: when relaying is enabled, the original message is passed on
// unchanged after extraction.
type SMTPIntake struct {
	service      *core.ExtractionService
	store        ports.RecordStore
	logger       *zap.Logger
	listenAddr   string
	domain       string
	relayEnabled bool
	relayAddr    string
	server       *smtp.Server
}

// NewSMTPIntake creates a new SMTP intake
func NewSMTPIntake(
	service *core.ExtractionService,
	store ports.RecordStore,
	logger *zap.Logger,
	listenAddr string,
	domain string,
	relayEnabled bool,
	relayAddr string,
) *SMTPIntake {
	return &SMTPIntake{
		service:      service,
		store:        store,
		logger:       logger,
		listenAddr:   listenAddr,
		domain:       domain,
		relayEnabled: relayEnabled,
		relayAddr:    relayAddr,
	}
}

// Start starts the SMTP intake server
func (f *SMTPIntake) Start() error {
	f.server = smtp.NewServer(&smtpBackend{intake: f})

	f.server.Addr = f.listenAddr
	f.server.Domain = f.domain
	f.server.ReadTimeout = 30 * time.Second
	f.server.WriteTimeout = 30 * time.Second
	f.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	f.server.MaxRecipients = 50
	f.server.AllowInsecureAuth = true

	f.logger.Info("SMTP intake starting", zap.String("address", f.listenAddr))

	go func() {
		if err := f.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				f.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP intake server
func (f *SMTPIntake) Stop() error {
	if f.server != nil {
		return f.server.Close()
	}
	return nil
}

// ProcessText runs the extraction pipeline over a raw email or thread blob
// and stores the resulting records
func (f *SMTPIntake) ProcessText(ctx context.Context, text string) (core.Thread, error) {
	records := f.service.ParseThread(ctx, text)
	if len(records) == 0 {
		return nil, fmt.Errorf("no processable emails in message")
	}

	threadID, err := f.store.SaveThread(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("failed to store extraction records: %w", err)
	}

	f.logger.Info("Processed email thread",
		zap.String("thread_id", threadID),
		zap.Int("record_count", len(records)))

	return records, nil
}

// relay sends the original message on to the upstream SMTP listener
func (f *SMTPIntake) relay(sender string, recipients []string, emailData []byte) error {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", f.relayAddr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to relay: %w", err)
	}
	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			f.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
			continue
		}
		recipientOK = true
	}
	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(emailData); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send email data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		// Message already handed over, log only
		f.logger.Warn("QUIT command failed", zap.Error(err))
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	intake *SMTPIntake
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		intake:     b.intake,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	intake     *SMTPIntake
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not supported)
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data receives the message, extracts its scheduling intent and optionally
// relays the unmodified original upstream. Extraction failures never block
// the relay.
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.intake.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	blob, err := canonicalText(rawData, s.sender, s.recipients)
	if err != nil {
		s.intake.logger.Error("Failed to parse email message", zap.Error(err))
	} else if _, err := s.intake.ProcessText(ctx, blob); err != nil {
		s.intake.logger.Warn("Extraction produced no records",
			zap.Error(err),
			zap.String("sender", s.sender))
	}

	if s.intake.relayEnabled {
		if err := s.intake.relay(s.sender, s.recipients, rawData); err != nil {
			s.intake.logger.Error("Failed to relay email",
				zap.Error(err),
				zap.String("sender", s.sender))
			return err
		}
	}

	return nil
}

// Logout handles SMTP logout
func (s *smtpSession) Logout() error {
	return nil
}

// canonicalText rebuilds the parsed message as the header-plus-body text the
// extraction pipeline expects. Message headers win over envelope values.
func canonicalText(rawData []byte, sender string, recipients []string) (string, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		return "", err
	}

	from := msg.Header.Get("From")
	if from == "" {
		from = sender
	}
	to := msg.Header.Get("To")
	if to == "" {
		to = strings.Join(recipients, ", ")
	}
	subject := msg.Header.Get("Subject")

	body, err := extractPlainText(msg)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\n", from)
	fmt.Fprintf(&b, "To: %s\n", to)
	fmt.Fprintf(&b, "Subject: %s\n", subject)
	b.WriteString("\n")
	b.WriteString(body)

	return b.String(), nil
}
