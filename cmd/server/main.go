package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"shopfront/internal/config"
	httpctrl "shopfront/internal/controllers/http"
	"shopfront/internal/domain"
	"shopfront/internal/infra/mailer"
	mmongo "shopfront/internal/infra/mongo"
	"shopfront/internal/infra/payment"
	"shopfront/internal/infra/rabbitmq"
	mongorepo "shopfront/internal/repository/mongo"
	"shopfront/internal/services"
	"shopfront/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := mmongo.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo: connect: %v", err)
	}

	orderRepo := mongorepo.NewOrderRepository(db)
	userRepo := mongorepo.NewUserRepository(db)
	productRepo := mongorepo.NewProductRepository(db)
	businessRepo := mongorepo.NewBusinessRepository(db)

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.OrderExchange, logger)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	gateways := map[domain.PaymentMethod]payment.Gateway{}
	if cfg.StripeSecretKey != "" {
		gateways[domain.MethodStripe] = payment.NewStripeGateway(cfg.StripeSecretKey, cfg.Currency)
	}
	if cfg.RazorpayKeyID != "" {
		gateways[domain.MethodRazorpay] = payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.Currency)
	}

	orderSvc := services.NewOrderService(logger, orderRepo, userRepo, gateways, publisher, cfg.DeliveryFee)
	productSvc := services.NewProductService(logger, productRepo)
	userSvc := services.NewUserService(logger, userRepo, cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword)
	businessSvc := services.NewBusinessService(logger, businessRepo, orderRepo)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisHost + ":6379",
		DB:           0,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	productSvc.SetRedisClient(redisClient)

	handler := httpctrl.NewHandler(orderSvc, productSvc, userSvc, businessSvc, cfg.JWTSecret)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting shopfront server", "port", cfg.Port)
		return r.Run(":" + cfg.Port)
	})

	if !cfg.DisableWorkers && cfg.SendGridAPIKey != "" {
		consumer, err := rabbitmq.NewConsumer(
			cfg.RabbitURL,
			cfg.OrderExchange,
			cfg.NotifyQueue,
			[]string{"order.*"},
			logger,
		)
		if err != nil {
			log.Fatalf("failed to init consumer: %v", err)
		}
		defer consumer.Close()

		mail := mailer.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFromEmail)
		notifier := worker.NewNotifier(logger, consumer, userRepo, mail)

		g.Go(func() error {
			return notifier.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Fatalf("server run: %v", err)
	}
}
