package rabbitmq

import (
	"context"
	"fmt"
	"gatekeeper/internal/core/domain/logging"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection wraps amqp.Connection and re-dials when the broker closes it.
type Connection struct {
	*amqp.Connection
	log logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{
		Connection: conn,
		log:        log,
	}

	go func() {
		for {
			reason, ok := <-connection.Connection.NotifyClose(make(chan *amqp.Error))
			if !ok {
				log.Info(context.Background(), "RabbitMQ connection closed.")
				break
			}

			log.Warning(context.Background(), "RabbitMQ connection closed.", logging.Entry("reason", *reason))
			for {
				time.Sleep(reconnectDelay)

				conn, err := amqp.Dial(url)
				if err == nil {
					connection.Connection = conn
					log.Info(context.Background(), "RabbitMQ reconnect success.")
					break
				}
				log.Error(context.Background(), "RabbitMQ reconnect failed.", logging.Entry("err", err))
			}
		}
	}()

	return connection, nil
}

// Channel returns an auto-reconnecting wrapper around amqp.Channel.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{
		Channel: ch,
		log:     c.log,
	}

	go func() {
		for {
			reason, ok := <-channel.Channel.NotifyClose(make(chan *amqp.Error))
			// exit this goroutine if closed by developer
			if !ok || channel.IsClosed() {
				channel.Close() // close again, ensure closed flag set when connection closed
				break
			}

			c.log.Warning(context.Background(), "RabbitMQ channel closed.", logging.Entry("reason", *reason))
			for {
				time.Sleep(reconnectDelay)

				ch, err := c.Connection.Channel()
				if err == nil {
					c.log.Info(context.Background(), "Channel recreate success.")
					channel.Channel = ch
					break
				}

				c.log.Error(context.Background(), "Channel recreate failed.", logging.Entry("err", err))
			}
		}
	}()

	return channel, nil
}

type Channel struct {
	*amqp.Channel
	closed int32
	log    logging.Logger
}

// IsClosed reports whether Close was called by the application, as opposed
// to the broker dropping the channel.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if ch.IsClosed() {
		return amqp.ErrClosed
	}

	atomic.StoreInt32(&ch.closed, 1)

	return ch.Channel.Close()
}

// Consume wraps amqp.Channel.Consume. The returned channel keeps delivering
// across reconnects and ends only when the channel is closed by the
// application.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		for {
			d, err := ch.Channel.Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
			if err != nil {
				ch.log.Error(context.Background(), "Consume failed.", logging.Entry("err", err))
				time.Sleep(reconnectDelay)
				continue
			}

			for msg := range d {
				deliveries <- msg
			}

			// sleep before IsClosed call, the closed flag may not be set yet
			time.Sleep(reconnectDelay)

			if ch.IsClosed() {
				ch.log.Info(context.Background(), "Channel is closed, stop consuming.", logging.Entry("queue", queue))
				close(deliveries)
				break
			}
		}
	}()

	return deliveries, nil
}
