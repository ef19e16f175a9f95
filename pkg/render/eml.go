package render

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/wneessen/go-mail"
)

// Message is a rendered draft ready to be written as an RFC 5322 file
type Message struct {
	FromName  string
	FromEmail string
	To        []string
	Subject   string
	HTML      string
	Text      string
	Date      time.Time
	MessageID string
}

func (m Message) build() (*mail.Msg, error) {
	msg := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if m.FromEmail != "" {
		if err := msg.FromFormat(m.FromName, m.FromEmail); err != nil {
			return nil, fmt.Errorf("failed to set email from address: %w", err)
		}
	}
	if len(m.To) > 0 {
		if err := msg.To(m.To...); err != nil {
			return nil, fmt.Errorf("failed to set email recipient: %w", err)
		}
	}

	msg.Subject(m.Subject)
	if m.Date.IsZero() {
		msg.SetDate()
	} else {
		msg.SetDateWithValue(m.Date)
	}
	if m.MessageID != "" {
		msg.SetMessageIDWithValue(m.MessageID)
	} else {
		msg.SetMessageID()
	}

	switch {
	case m.HTML != "" && m.Text != "":
		msg.SetBodyString(mail.TypeTextHTML, m.HTML)
		msg.AddAlternativeString(mail.TypeTextPlain, m.Text)
	case m.HTML != "":
		msg.SetBodyString(mail.TypeTextHTML, m.HTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, m.Text)
	}

	return msg, nil
}

// WriteEML writes the message in .eml form to w. Nothing is sent.
func WriteEML(w io.Writer, m Message) error {
	msg, err := m.build()
	if err != nil {
		return err
	}
	if _, err := msg.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// EML returns the message in .eml form
func EML(m Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteEML(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
