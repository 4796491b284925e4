package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"hiremate/internal/config"
	hiremateErrors "hiremate/internal/errors"
	"hiremate/internal/types"

	"github.com/streadway/amqp"
)

// Publisher emits application events to an AMQP topic exchange. A nil
// Publisher drops events, which is how a disabled broker is modeled.
type Publisher struct {
	conn     *amqp.Connection
	exchange string
	logger   *hiremateErrors.Logger
}

// applicationEvent is the wire format for application submitted events
type applicationEvent struct {
	ApplicationID string    `json:"applicationId"`
	JobID         string    `json:"jobId"`
	JobTitle      string    `json:"jobTitle"`
	ApplicantName string    `json:"applicantName"`
	Score         *int      `json:"score,omitempty"`
	Source        string    `json:"source,omitempty"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// New connects to the broker when notifications are enabled. Returns nil
// when disabled.
func New(cfg config.BrokerConfig, logger *hiremateErrors.Logger) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, hiremateErrors.NewIOError("BROKER_UNAVAILABLE",
			"Failed to connect to message broker", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, hiremateErrors.NewIOError("BROKER_UNAVAILABLE",
			"Failed to open broker channel", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, hiremateErrors.NewIOError("BROKER_UNAVAILABLE",
			"Failed to declare exchange", err)
	}

	return &Publisher{conn: conn, exchange: cfg.Exchange, logger: logger}, nil
}

// ApplicationSubmitted publishes an event for a stored application. Failures
// are logged and swallowed: notification delivery never fails a submission.
func (p *Publisher) ApplicationSubmitted(job *types.Job, app *types.Application, source types.AnalysisSource) {
	if p == nil {
		return
	}

	event := applicationEvent{
		ApplicationID: app.ID.String(),
		JobID:         job.ID.String(),
		JobTitle:      job.Title,
		ApplicantName: app.Name,
		Source:        string(source),
		SubmittedAt:   app.CreatedAt,
	}
	if app.Analysis != nil {
		event.Score = &app.Analysis.Score
	}

	if err := p.publish(fmt.Sprintf("application.submitted.%s", job.ID), event); err != nil {
		p.logger.Warn("Failed to publish application event",
			"application_id", app.ID.String(),
			"job_id", job.ID.String(),
			"error", err.Error())
	}
}

func (p *Publisher) publish(routingKey string, payload any) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return ch.Publish(
		p.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// Close closes the broker connection
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.conn.Close()
}
