package notification

import (
	"context"
	"gatekeeper/internal/core/domain/common"
	e "gatekeeper/internal/core/domain/errors"
	"gatekeeper/internal/core/domain/logging"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/rabbitmq"
	"gatekeeper/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

// EmailSender delivers both notification kinds the worker handles.
type EmailSender interface {
	user.PasswordResetLinkSender
	user.PasswordChangedSender
}

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	sender  EmailSender
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	sender EmailSender,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, sender: sender}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			n := &schema.Notification{}
			if err := n.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal notification.",
					logging.Entry("err", err),
					logging.Entry("messageID", delivery.MessageId),
				)
				c.Ack(delivery)
				continue
			}

			c.log.Info(
				context.Background(),
				"Got notification to deliver.",
				logging.Entry("kind", n.Kind),
				logging.Entry("userID", n.UserID),
			)
			if err := c.deliver(context.Background(), n); err != nil {
				c.log.Error(
					context.Background(),
					"Could not deliver notification.",
					logging.Entry("kind", n.Kind),
					logging.Entry("userID", n.UserID),
					logging.Entry("err", err),
				)
			}
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) deliver(ctx context.Context, n *schema.Notification) error {
	u := user.User{
		ID:    user.ID(n.UserID),
		Email: common.Email(n.Email),
		Name:  n.Name,
	}
	switch n.Kind {
	case schema.KindPasswordReset:
		return c.sender.SendResetLink(ctx, u, n.Link)
	case schema.KindPasswordChanged:
		return c.sender.SendPasswordChanged(ctx, u)
	default:
		c.log.Warning(ctx, "Unknown notification kind.", logging.Entry("kind", n.Kind))
		return nil
	}
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
