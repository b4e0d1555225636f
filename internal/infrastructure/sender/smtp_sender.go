// Package sender delivers purchase orders to vendors. The production
// implementation renders the purchase order as a plain-text email and hands it
// to an SMTP relay; the log sender stands in for it in development and tests.
package sender

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"lunchly/internal/domain/aggregate"
)

// SMTPConfig holds configuration for the SMTP relay
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

// SMTPSender sends purchase orders by email through an SMTP relay.
type SMTPSender struct {
	config SMTPConfig
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(config SMTPConfig) *SMTPSender {
	return &SMTPSender{config: config}
}

// SendPurchaseOrder renders and emails the purchase order to the vendor.
func (s *SMTPSender) SendPurchaseOrder(ctx context.Context, po *aggregate.PurchaseOrder, fromEmail, toEmail string) error {
	if toEmail == "" {
		return fmt.Errorf("vendor has no email address")
	}

	msg := buildMessage(po, fromEmail, toEmail)

	addr := s.config.Host + ":" + s.config.Port
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, fromEmail, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send purchase order email: %w", err)
	}
	return nil
}

func buildMessage(po *aggregate.PurchaseOrder, fromEmail, toEmail string) []byte {
	id := po.ID()

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", toEmail)
	fmt.Fprintf(&b, "Subject: Purchase order for %s\r\n", id.Date)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	fmt.Fprintf(&b, "Purchase order %s\r\n\r\n", id)
	for _, order := range po.Orders() {
		fmt.Fprintf(&b, "Order %s:\r\n", order.ID)
		for _, dish := range order.Dishes {
			fmt.Fprintf(&b, "  - %s\r\n", dish.Name)
		}
	}
	return []byte(b.String())
}
