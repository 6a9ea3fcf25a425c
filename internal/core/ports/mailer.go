package ports

import "context"

// MailMessage is a single outbound email (HTML body).
type MailMessage struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers a message synchronously. Implementations talk SMTP.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// MailQueue accepts messages for asynchronous, fire-and-forget delivery.
// Enqueue must not block the caller on delivery; a failed delivery is
// logged and counted, never propagated back.
type MailQueue interface {
	Enqueue(msg MailMessage)
}
