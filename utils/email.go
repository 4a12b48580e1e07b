package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an email using SendGrid
func SendEmail(fromEmail, toName, toEmail, subject, textContent, htmlContent string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
	}

	from := mail.NewEmail("Student Insight", fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	client := sendgrid.NewSendClient(apiKey)

	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}

	if response.StatusCode >= 400 {
		log.Printf("SendGrid API Error: Status Code %d, Body: %s", response.StatusCode, response.Body)
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	log.Printf("Email sent successfully to %s. Status Code: %d", toEmail, response.StatusCode)
	return nil
}

// SendWelcomeEmail greets a newly registered student. Failures are the
// caller's to log; signup never fails because of email delivery.
func SendWelcomeEmail(fromEmail, name, email string) error {
	text := fmt.Sprintf("Hi %s, welcome to Student Insight! Complete the quiz to unlock your performance predictions.", name)
	html := fmt.Sprintf("<p>Hi <strong>%s</strong>, welcome to Student Insight!</p><p>Complete the quiz to unlock your performance predictions.</p>", name)
	return SendEmail(fromEmail, name, email, "Welcome to Student Insight", text, html)
}
