package services

import (
	"fmt"
	"os"
	"time"

	"rentbook/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendPaymentReceipt emails a receipt to the renter after a payment has
// been written. The DB is the source of truth; email is best effort and
// never fails the request.
func SendPaymentReceipt(landlord models.User, renter models.Renter, payment models.Payment) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("RECEIPT_FROM_EMAIL")

	if apiKey == "" || fromEmail == "" {
		fmt.Println("Missing SendGrid config, skipping receipt email")
		return
	}

	kind := "Lease payment"
	if payment.LeaseID == nil {
		kind = "Deposit"
	}

	subject := fmt.Sprintf("Payment received: $%.2f", payment.Amount)

	body := fmt.Sprintf(`Hi %s,

We received your payment.

RECEIPT:
Type: %s
Amount: $%.2f
Date: %s
Paid to: %s %s`,
		renter.FirstName,
		kind,
		payment.Amount,
		payment.Date.Format(time.RFC3339),
		landlord.FirstName,
		landlord.LastName,
	)
	if payment.Description != "" {
		body += fmt.Sprintf("\nNote: %s", payment.Description)
	}
	body += fmt.Sprintf("\n\n---\nPayment ID: %d", payment.ID)

	from := mail.NewEmail("Rentbook", fromEmail)
	to := mail.NewEmail(renter.FirstName+" "+renter.LastName, renter.Email)
	message := mail.NewSingleEmail(from, subject, to, body, body)
	client := sendgrid.NewSendClient(apiKey)

	response, err := client.Send(message)
	if err != nil {
		fmt.Printf("Error sending receipt: %v\n", err)
	} else {
		fmt.Printf("Receipt sent. Status Code: %d\n", response.StatusCode)
	}
}
