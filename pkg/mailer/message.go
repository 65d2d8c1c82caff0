// Package mailer defines the notification messages exchanged over RabbitMQ
// between the CLI and the mail worker, and the publisher that queues them.
package mailer

// QueueName is the durable queue the mail worker consumes
const QueueName = "crewdeck.notifications"

// Message types understood by the mail worker
const (
	TypeExceptionDecision = "exception_decision"
)

// Message is one queued notification. Data carries the type-specific
// template payload.
type Message struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

// ExceptionDecisionData is the payload for an exception decision notice
type ExceptionDecisionData struct {
	WorkerName string `json:"workerName"`
	Title      string `json:"title"`
	Type       string `json:"exceptionType"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Status     string `json:"status"`
}
