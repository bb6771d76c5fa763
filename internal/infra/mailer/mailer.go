package mailer

import "context"

type Mailer interface {
	Send(ctx context.Context, toEmail, subject, plainText, htmlContent string) error
}
