package notification

import (
	"context"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/rabbitmq"
	"gatekeeper/internal/rabbitmq/schema"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ publishes user notifications to the notifier worker instead of
// sending email inline with the request.
type RabbitMQ struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
}

func NewRabbitMQ(
	log logging.Logger,
	channel *rabbitmq.Channel,
	exchange string,
	routingKey string,
) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey}
}

func (s *RabbitMQ) SendResetLink(ctx context.Context, u user.User, link string) error {
	return s.publish(ctx, schema.Notification{
		Kind:   schema.KindPasswordReset,
		UserID: int64(u.ID),
		Email:  string(u.Email),
		Name:   u.Name,
		Link:   link,
	})
}

func (s *RabbitMQ) SendPasswordChanged(ctx context.Context, u user.User) error {
	return s.publish(ctx, schema.Notification{
		Kind:   schema.KindPasswordChanged,
		UserID: int64(u.ID),
		Email:  string(u.Email),
		Name:   u.Name,
	})
}

func (s *RabbitMQ) publish(ctx context.Context, n schema.Notification) error {
	body, err := n.Marshal()
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		MessageId:   uuid.New().String(),
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("kind", n.Kind),
		logging.Entry("userID", n.UserID),
	)
	return nil
}
