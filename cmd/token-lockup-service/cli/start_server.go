package cli

import (
	"fmt"

	"github.com/lockuplabs/token-lockup-service/internal/api"
	"github.com/lockuplabs/token-lockup-service/internal/auth"
	"github.com/lockuplabs/token-lockup-service/internal/clients/ledgerclient"
	"github.com/lockuplabs/token-lockup-service/internal/config"
	"github.com/lockuplabs/token-lockup-service/internal/db"
	dbmodel "github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/lockuplabs/token-lockup-service/internal/observability/metrics"
	"github.com/lockuplabs/token-lockup-service/internal/observability/tracing"
	"github.com/lockuplabs/token-lockup-service/internal/queue"
	"github.com/lockuplabs/token-lockup-service/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the token lockup service",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up lockup db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	qm, err := queue.NewQueueManager(&cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize queue manager")
	}

	var ledgerClient ledgerclient.LedgerInterface
	ledgerClient = ledgerclient.NewLedgerClient(&cfg.Ledger)
	ledgerClient = ledgerclient.NewLedgerClientWithMetrics(ledgerClient)

	service := services.NewService(cfg, dbClient, ledgerClient, qm, auth.NewPrincipalGate())

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service.StartBackgroundProcesses(ctx)

	return api.New(&cfg.Api, service).Start()
}
