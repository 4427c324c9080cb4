package consumers

import (
	"context"
	"gatekeeper/internal/app/deps"
	dl "gatekeeper/internal/core/domain/logging"
	notificationconsumer "gatekeeper/internal/rabbitmq/consumers/notification"
)

func initNotificationConsumer(deps *deps.Deps) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqNotificationQueue
	if _, err := rabbitmqChannel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		deps.Logger.Error(context.Background(), "Could not declare queue.", dl.Entry("err", err))
		panic(err)
	}

	notificationConsumer := notificationconsumer.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		deps.EmailSender,
	)
	if err := notificationConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps) func() {
	shutdownNotificationConsumer := initNotificationConsumer(deps)

	return func() {
		shutdownNotificationConsumer()
	}
}
