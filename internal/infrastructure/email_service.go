package infrastructure

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"library-service/internal/config"
)

// EmailService sends the welcome e-mail after registration. Delivery is best
// effort: a missing API key disables it and send failures are only logged.
type EmailService struct {
	apiKey string
	sender string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		apiKey: cfg.SendgridAPIKey,
		sender: cfg.EmailSender,
	}
}

func (e *EmailService) SendWelcome(recipientEmail, firstName string) {
	if e.apiKey == "" {
		return
	}

	from := mail.NewEmail("Library", e.sender)
	to := mail.NewEmail(firstName, recipientEmail)
	subject := "Welcome to our library!"

	plain := fmt.Sprintf("Hi %s, your library account is ready. Happy reading!", firstName)
	html := fmt.Sprintf("<p>Hi %s, your library account is ready. Happy reading!</p>", firstName)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(e.apiKey)
	if _, err := client.Send(message); err != nil {
		log.Printf("failed to send welcome email to %s: %v", recipientEmail, err)
	}
}
