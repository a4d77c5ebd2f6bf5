package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

// InitMailer is called once from main; if AWS config cannot be loaded the
// app still runs, email sends just report an error.
func InitMailer() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Printf("AWS config load failed, email disabled: %v", err)
		return
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	if sesClient == nil {
		return errors.New("mailer not initialized")
	}
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// Sent once per user when a month's bill is generated.
func SendBillReadyEmail(to string, month time.Month, year int, total float64) error {
	subject := fmt.Sprintf("Canteen bill for %s %d", month, year)
	body := fmt.Sprintf("Your canteen bill for %s %d is ready.\n\nTotal amount: %.2f\n\nLog in to your dashboard to see the breakdown.", month, year, total)
	return sendEmail(to, subject, body)
}

// Sent after a payment is recorded against a bill.
func SendPaymentReceiptEmail(to string, amount float64, reference string, due float64) error {
	subject := "Canteen payment received"
	body := fmt.Sprintf("We recorded a payment of %.2f.\n\nReference: %s\nRemaining due: %.2f", amount, reference, due)
	return sendEmail(to, subject, body)
}
