package mail

import (
	"fmt"

	"github.com/ksarmiento/blog-backend/internal/config"
	gomail "github.com/wneessen/go-mail"
)

// Mailer sends password-reset mail over SMTP.
type Mailer struct {
	client *gomail.Client
	from   string
}

func NewMailer(cfg *config.Config) (*Mailer, error) {
	client, err := gomail.NewClient(cfg.SMTPHost,
		gomail.WithPort(cfg.SMTPPort),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.SMTPUser),
		gomail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}
	from := cfg.MailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{client: client, from: from}, nil
}

// SendResetLink mails the password-reset link to the given address.
// The send is synchronous; a failure surfaces to the caller.
func (m *Mailer) SendResetLink(to, link string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Reset Password Request")
	msg.SetBodyString(gomail.TypeTextPlain, link)

	return m.client.DialAndSend(msg)
}
