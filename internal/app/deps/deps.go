package deps

import (
	"context"
	"gatekeeper/internal/config"
	dl "gatekeeper/internal/core/domain/logging"
	duow "gatekeeper/internal/core/domain/unit_of_work"
	"gatekeeper/internal/core/domain/user"
	"gatekeeper/internal/db"
	uow "gatekeeper/internal/db/unit_of_work"
	dbuser "gatekeeper/internal/db/user"
	"gatekeeper/internal/implementations/email"
	"gatekeeper/internal/implementations/logging"
	passwordhasher "gatekeeper/internal/implementations/password_hasher"
	secretgenerator "gatekeeper/internal/implementations/secret_generator"
	"gatekeeper/internal/implementations/session"
	"gatekeeper/internal/rabbitmq"
	notificationpublisher "gatekeeper/internal/rabbitmq/publishers/notification"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork     duow.UnitOfWork
	UserRepository user.UserRepository

	PasswordHasher       user.PasswordHasher
	SessionIssuer        user.SessionIssuer
	ResetSecretGenerator user.ResetSecretGenerator

	EmailSender           *email.EmailSender
	ResetLinkSender       user.PasswordResetLinkSender
	PasswordChangedSender user.PasswordChangedSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.SessionIssuer = session.NewJWTIssuer(
		deps.Config.Secret,
		deps.Config.SessionValidDuration,
		deps.Now,
	)
	deps.ResetSecretGenerator = secretgenerator.NewGenerator()

	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailPasswordResetTemplate,
		deps.Config.AwsEmailPasswordChangedTemplate,
	)

	closeNotificationPublisher := deps.initNotificationPublisher()

	return deps, func() {
		closeFuncs := []func(){
			closeNotificationPublisher,
			closeRabbitmqConn,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	if err := db.ApplyMigrations(deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}
	pool, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = pool
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	connection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic(err)
	}
	deps.Rabbitmq = connection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		connection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initNotificationPublisher() func() {
	channel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	if _, err := channel.QueueDeclare(
		deps.Config.RabbitmqNotificationQueue, true, false, false, false, nil,
	); err != nil {
		deps.Logger.Error(context.Background(), "Could not declare queue.", dl.Entry("err", err))
		panic(err)
	}

	publisher := notificationpublisher.NewRabbitMQ(
		deps.Logger,
		channel,
		deps.Config.RabbitmqNotificationExchange,
		deps.Config.RabbitmqNotificationQueue,
	)
	deps.ResetLinkSender = publisher
	deps.PasswordChangedSender = publisher
	return func() { channel.Close() }
}
