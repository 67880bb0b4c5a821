package mailer

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/domain"
	gomail "gopkg.in/gomail.v2"
)

//go:embed templates/order_confirmation.html
var orderConfirmationTmpl string

type Config struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	OperatorEmail string
}

// Mailer delivers transactional email over SMTP.
type Mailer interface {
	SendOrderConfirmation(data OrderConfirmationData) error
}

// OrderConfirmationData feeds the order-confirmation template. The same
// rendering goes to the purchaser and to the store operator.
type OrderConfirmationData struct {
	UserName    string
	UserEmail   string
	Orders      []domain.Order
	Address     domain.Address
	GrandTotal  float64
	PlacedAtStr string
}

type SMTPMailer struct {
	cfg  Config
	tmpl *template.Template
}

func New(cfg Config) (*SMTPMailer, error) {
	tmpl, err := template.New("order_confirmation").Parse(orderConfirmationTmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order confirmation template: %w", err)
	}

	return &SMTPMailer{cfg: cfg, tmpl: tmpl}, nil
}

// SendOrderConfirmation mails the rendered confirmation to the purchaser and,
// when configured, to the store operator. Both recipients get the same body.
func (m *SMTPMailer) SendOrderConfirmation(data OrderConfirmationData) error {
	var buf bytes.Buffer
	if err := m.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render order confirmation: %w", err)
	}
	body := buf.String()

	recipients := []string{data.UserEmail}
	if m.cfg.OperatorEmail != "" {
		recipients = append(recipients, m.cfg.OperatorEmail)
	}

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	for _, to := range recipients {
		msg := gomail.NewMessage()
		msg.SetHeader("From", m.cfg.From)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", fmt.Sprintf("Order confirmation (%d items)", len(data.Orders)))
		msg.SetBody("text/html", body)

		if err := dialer.DialAndSend(msg); err != nil {
			return fmt.Errorf("failed to send order confirmation to %s: %w", to, err)
		}
	}

	return nil
}
