package main

import (
	"context"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"caseflow/agency"
	"caseflow/auth"
	"caseflow/authz"
	"caseflow/beneficiary"
	"caseflow/broadcastlist"
	"caseflow/config"
	"caseflow/counselor"
	"caseflow/db"
	"caseflow/groupactivity"
	"caseflow/monitor"
	"caseflow/notify"
	"caseflow/reassignment"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("bootstrap config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("bootstrap logger: %v", err)
	}
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("bootstrap database pool", zap.Error(err))
	}
	defer pool.Close()

	notifier, closeNotifier, err := newNotifier(cfg, logger)
	if err != nil {
		logger.Fatal("bootstrap notifier", zap.Error(err))
	}
	defer closeNotifier()

	authService := auth.NewService(auth.NewRepository(pool), cfg.JWTSecret)

	svc := reassignment.NewService(reassignment.Deps{
		Rules:         authz.NewRules(authz.NewSupervisorRegistry(pool)),
		Counselors:    counselor.NewStore(pool),
		Agencies:      agency.NewStore(pool),
		Beneficiaries: beneficiary.NewStore(pool),
		Activities:    groupactivity.NewStore(pool),
		Broadcasts:    broadcastlist.NewStore(pool),
		Notifier:      notifier,
		Audit:         monitor.NewRecorder(pool),
		Log:           logger,
	})

	logger.Info("reassignment service ready",
		zap.Bool("auth", authService != nil),
		zap.Bool("amqp", cfg.AMQPURL != ""),
		zap.String("port", cfg.ServerPort),
	)
	_ = svc
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// newNotifier picks the transfer-notice sender: AMQP when a broker URL is
// configured, log-only otherwise.
func newNotifier(cfg config.Config, logger *zap.Logger) (notify.Sender, func(), error) {
	if cfg.AMQPURL == "" {
		return notify.NewLogSender(logger), func() {}, nil
	}
	sender, err := notify.NewAMQPSender(cfg.AMQPURL, cfg.TransferNoticeQueue)
	if err != nil {
		return nil, nil, err
	}
	return sender, func() { _ = sender.Close() }, nil
}
