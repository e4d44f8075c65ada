package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"rentbook/models"
)

// SendLeaseNotice posts to a Slack webhook when a lease is signed.
// Fire-and-forget: callers run this in a goroutine and a failure only logs.
func SendLeaseNotice(property models.Property, lease models.Lease, renterName string) {
	// Safety: recover from any panic so a notification can't take down a request
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Slack panic recovered: %v\n", r)
		}
	}()

	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")
	if webhookURL == "" {
		fmt.Println("Slack skipped: SLACK_WEBHOOK_URL not set")
		return
	}

	street := ""
	if property.Address != nil {
		street = property.Address.Street
	}

	end := "open-ended"
	if lease.EndDate != nil {
		end = lease.EndDate.Format("2006-01-02")
	}

	payload := map[string]string{
		"text": fmt.Sprintf("New lease signed\n\nProperty: %s\nRenter: %s\nStart: %s\nEnd: %s\nRate: $%.2f",
			street,
			renterName,
			lease.StartDate.Format("2006-01-02"),
			end,
			lease.Rate,
		),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error marshaling Slack payload: %v\n", err)
		return
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		fmt.Printf("Error sending Slack request: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		fmt.Printf("Slack API error: Status %d\n", resp.StatusCode)
	}
}
