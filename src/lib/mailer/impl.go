package mailer

import (
	"bookit/src/lib"
	awslib "bookit/src/lib/aws"
	"bookit/src/types"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sesTypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// NewMailerMessage hands a message to the delivery pipeline. When an email
// queue is configured the message is enqueued on SQS and a consumer delivers
// it, otherwise it is sent directly.
func NewMailerMessage(input *lib.SendMailInput) error {
	emailQueue := os.Getenv("EMAIL_QUEUE")
	if emailQueue == "" {
		return Deliver(input)
	}
	emailBody := &types.JSONB{
		"from":      input.From,
		"from-name": input.FromName,
		"to":        input.To,
		"cc":        input.Cc,
		"bcc":       input.Bcc,
		"reply-to":  input.ReplyTo,
		"body":      input.Body,
		"html":      input.Html,
		"subject":   input.Subject,
	}
	body, err := json.Marshal(&emailBody)
	if err != nil {
		return err
	}
	if err := lib.SQSProduceMessage(emailQueue, string(body)); err != nil {
		return fmt.Errorf("error sending message to queue: %s", err.Error())
	}
	return nil
}

// Deliver sends a message out immediately, over SES when MAIL_DRIVER=ses
// and over SMTP otherwise.
func Deliver(input *lib.SendMailInput) error {
	driver := os.Getenv("MAIL_DRIVER")
	if driver == "ses" {
		dest := &sesTypes.Destination{
			ToAddresses:  input.To,
			CcAddresses:  input.Cc,
			BccAddresses: input.Bcc,
		}
		content := &sesTypes.Content{Data: aws.String(input.Body)}
		body := &sesTypes.Body{}
		if input.Html {
			body.Html = content
		} else {
			body.Text = content
		}
		msg := &sesTypes.Message{
			Subject: &sesTypes.Content{Data: aws.String(input.Subject)},
			Body:    body,
		}
		awslib.SESSendMessage(aws.String(input.From), dest, msg)
		return nil
	}
	return lib.SendMail(input)
}

// QueueHandler decodes a queued message body and delivers it. Wired as the
// SQS consumer handler on boot.
func QueueHandler(body string) {
	var payload types.JSONB
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		log.Printf("[mailer] Could not decode queued message: %s\n", err.Error())
		return
	}
	input := lib.SendMailInput{
		From:     str(payload["from"]),
		FromName: str(payload["from-name"]),
		To:       strs(payload["to"]),
		Cc:       strs(payload["cc"]),
		Bcc:      strs(payload["bcc"]),
		ReplyTo:  str(payload["reply-to"]),
		Subject:  str(payload["subject"]),
		Body:     str(payload["body"]),
	}
	if h, ok := payload["html"].(bool); ok {
		input.Html = h
	}
	if err := Deliver(&input); err != nil {
		log.Printf("[mailer] Failed to deliver queued message: %s\n", err.Error())
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strs(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

type BookingEmailData struct {
	ReferenceNumber string
	ProductTitle    string
	Name            string
	Email           string
	Date            time.Time
	Time            string
	Qty             int
	Currency        string
	Subtotal        float64
	Taxes           float64
	Discount        float64
	Total           float64
	PromoCode       string
}

// BookingConfirmationBody renders the order confirmation email.
func BookingConfirmationBody(data *BookingEmailData) string {
	var sb strings.Builder
	sb.WriteString("<h2>Booking confirmed</h2>")
	sb.WriteString(fmt.Sprintf("<p>Hi %s, your booking <strong>%s</strong> is confirmed.</p>", data.Name, data.ReferenceNumber))
	sb.WriteString(fmt.Sprintf("<p>%s on %s at %s for %d guest(s).</p>", data.ProductTitle, data.Date.Format("Monday, 02 Jan 2006"), data.Time, data.Qty))
	sb.WriteString("<table>")
	sb.WriteString(fmt.Sprintf("<tr><td>Subtotal</td><td>%s %.2f</td></tr>", data.Currency, data.Subtotal))
	sb.WriteString(fmt.Sprintf("<tr><td>Taxes</td><td>%s %.2f</td></tr>", data.Currency, data.Taxes))
	if data.Discount > 0 {
		sb.WriteString(fmt.Sprintf("<tr><td>Discount (%s)</td><td>-%s %.2f</td></tr>", data.PromoCode, data.Currency, data.Discount))
	}
	sb.WriteString(fmt.Sprintf("<tr><td><strong>Total</strong></td><td><strong>%s %.2f</strong></td></tr>", data.Currency, data.Total))
	sb.WriteString("</table>")
	return sb.String()
}

// OTPBody renders the one-time code email used for account verification and
// password resets.
func OTPBody(name, code string, ttlMinutes int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<p>Hi %s,</p>", name))
	sb.WriteString(fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p>", code))
	sb.WriteString(fmt.Sprintf("<p>It expires in %d minutes.</p>", ttlMinutes))
	return sb.String()
}
