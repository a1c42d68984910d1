// Package notifier abstracts the channel that delivers verification codes
// to users. Services depend only on the interface; main picks the log
// implementation for development or the AMQP one for production.
package notifier

import (
	"encoding/json"
	"fmt"
	"log"

	"cardshop/pkg/rabbitmq"
)

// Notifier delivers a verification code to an email address.
type Notifier interface {
	SendVerificationCode(email, code string) error
}

// LogNotifier is the development channel: it prints the code instead of
// sending anything.
type LogNotifier struct{}

// SendVerificationCode logs the code to stdout.
func (LogNotifier) SendVerificationCode(email, code string) error {
	log.Printf("[EMAIL SIMULATION] Code for %s: %s", email, code)
	return nil
}

// AMQPNotifier publishes verification-code events to the notification
// queue, where a delivery worker turns them into real email/SMS.
type AMQPNotifier struct {
	client *rabbitmq.Client
}

// NewAMQPNotifier creates a new AMQPNotifier.
func NewAMQPNotifier(client *rabbitmq.Client) *AMQPNotifier {
	return &AMQPNotifier{client: client}
}

// SendVerificationCode publishes the code event as JSON.
func (n *AMQPNotifier) SendVerificationCode(email, code string) error {
	body, err := json.Marshal(map[string]string{
		"type":  "verification_code",
		"email": email,
		"code":  code,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	return n.client.Publish("", rabbitmq.NotificationQueue, body)
}
