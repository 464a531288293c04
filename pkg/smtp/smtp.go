package smtp

import (
	"context"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/Badsnus/qrgen-studio/pkg/logger/types"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the sender address; Domain is used for Message-ID.
	From   string
	Domain string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client sends transactional mail.
type Client struct {
	dialer sender
	from   string
	domain string
	logger *types.Logger
}

func NewClient(cfg Config, logger *types.Logger) *Client {
	return &Client{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		domain: cfg.Domain,
		logger: logger,
	}
}

// SendSaveLink mails the link that moves a captured code into the user's history.
func (c *Client) SendSaveLink(ctx context.Context, to, link string) error {
	msg := c.newMessage(to, "Save your QR code")
	msg.SetBody("text/plain", fmt.Sprintf("Open this link to save your QR code and see your history:\n\n%s\n", link))
	msg.AddAlternative("text/html", fmt.Sprintf(
		`<p>Open this link to save your QR code and see your history:</p><p><a href="%[1]s">%[1]s</a></p>`,
		html.EscapeString(link),
	))
	return c.send(ctx, msg)
}

// SendCode mails a rendered code as an attachment of the given content type.
func (c *Client) SendCode(ctx context.Context, to, filename, contentType string, data []byte) error {
	msg := c.newMessage(to, "Your QR code")
	msg.SetBody("text/plain", "Your QR code is attached.")
	msg.Attach(filename,
		gomail.SetHeader(map[string][]string{"Content-Type": {contentType}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}),
	)
	return c.send(ctx, msg)
}

func (c *Client) newMessage(to, subject string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	return msg
}

func (c *Client) send(ctx context.Context, msg *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.dialer.DialAndSend(msg); err != nil {
		c.logger.Errorf("failed to send email to %s: %v", msg.GetHeader("To"), err)
		return err
	}
	c.logger.Infof("email sent to %s", msg.GetHeader("To"))
	return nil
}

func generateMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
