package model

import "maps"

// Attachment keys recognized by Rocket.Chat. Attachment accepts any other key
// as well and forwards it verbatim.
const (
	AttachmentTitle     = "title"
	AttachmentTitleLink = "title_link"
	AttachmentText      = "text"
	AttachmentImageURL  = "image_url"
	AttachmentColor     = "color"
)

// Attachment is a rich card rendered under the message text. Values should be
// strings, numbers or booleans.
type Attachment map[string]any

// Message is the content posted through a webhook. It can be filled at
// construction or built up line by line, and posted more than once.
type Message struct {
	Text        string
	IconURL     string
	Attachments []Attachment
}

type MessageOption func(*Message)

// WithIconURL sets the avatar shown next to the message.
func WithIconURL(iconURL string) MessageOption {
	return func(m *Message) {
		m.IconURL = iconURL
	}
}

func NewMessage(text string, opts ...MessageOption) *Message {
	m := &Message{
		Text:        text,
		Attachments: []Attachment{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AppendText adds text as a new line.
func (m *Message) AppendText(text string) {
	m.AppendTextWithDelimiter(text, "\n")
}

// AppendTextWithDelimiter joins text to the existing text with delimiter. The
// delimiter is skipped while the message is still empty.
func (m *Message) AppendTextWithDelimiter(text, delimiter string) {
	if m.Text == "" {
		m.Text = text
		return
	}
	m.Text = m.Text + delimiter + text
}

// AddAttachment appends a copy of fields as a new attachment.
func (m *Message) AddAttachment(fields Attachment) {
	attachment := make(Attachment, len(fields))
	maps.Copy(attachment, fields)
	m.Attachments = append(m.Attachments, attachment)
}

// Payload returns the wire representation of the message.
func (m *Message) Payload() Payload {
	return Payload{
		Text:        m.Text,
		IconURL:     m.IconURL,
		Attachments: m.Attachments,
	}
}

// Payload represents the JSON sent in the "payload" form field. Empty fields
// are omitted.
type Payload struct {
	Text        string       `json:"text,omitempty"`
	IconURL     string       `json:"icon_url,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}
