package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dsapi "github.com/bitcoin-sv/directsend/internal/api"
	"github.com/bitcoin-sv/directsend/internal/config"
	"github.com/bitcoin-sv/directsend/internal/directsend"
	"github.com/bitcoin-sv/directsend/internal/directsend/gossip/nats_mq"
	"github.com/bitcoin-sv/directsend/internal/directsend/nodeadapter"
	"github.com/bitcoin-sv/directsend/internal/directsend/notify"
	"github.com/bitcoin-sv/directsend/internal/directsend/registry"
	"github.com/bitcoin-sv/directsend/internal/directsend/sigscheme"
	"github.com/bitcoin-sv/directsend/internal/directsend/zmqfeed"
	dslogger "github.com/bitcoin-sv/directsend/internal/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("failed to run directsend: %v", err)
	}

	os.Exit(0)
}

func run() error {
	configDir := parseFlags()

	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load app config: %w", err)
	}

	logger, err := dslogger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	hostname, err := os.Hostname()
	if err == nil {
		logger = logger.With(slog.String("host", hostname))
	}

	logger.Info("Starting directsend")

	shutdownFns := make([]func(), 0)

	if cfg.ProfilerAddr != "" {
		go func() {
			logger.Info("starting profiler", slog.String("addr", cfg.ProfilerAddr))
			if err := http.ListenAndServe(cfg.ProfilerAddr, nil); err != nil {
				logger.Error("profiler server stopped", slog.String("err", err.Error()))
			}
		}()
	}

	node, err := buildNodeAdapter(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to node: %w", err)
	}

	// gossip connects before the engine exists; its Engine reference is
	// attached with SetEngine once buildEngine returns, breaking what
	// would otherwise be a construction cycle (the engine needs a
	// Transport, and this client needs the Engine it drives).
	gossipClient, err := nats_mq.Connect(cfg.Gossip.NatsURL, nil, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to gossip transport: %w", err)
	}
	shutdownFns = append(shutdownFns, func() {
		if err := gossipClient.Shutdown(); err != nil {
			logger.Error("failed to shut down gossip client", slog.String("err", err.Error()))
		}
	})

	engine, err := buildEngine(cfg, logger, node, gossipClient)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	shutdownFns = append(shutdownFns, engine.Shutdown)

	gossipClient.SetEngine(engine)
	if err := gossipClient.Subscribe(); err != nil {
		return fmt.Errorf("failed to subscribe gossip client: %w", err)
	}

	if cfg.PrometheusAddr != "" {
		if collector := directsend.NewPrometheusCollector(engine); collector != nil {
			prometheus.MustRegister(collector)
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: cfg.PrometheusAddr, Handler: mux}
		go func() {
			logger.Info("starting prometheus", slog.String("addr", cfg.PrometheusAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("prometheus server stopped", slog.String("err", err.Error()))
			}
		}()
		shutdownFns = append(shutdownFns, func() { _ = srv.Close() })
	}

	if cfg.ApiAddr != "" {
		e := echo.New()
		dsapi.New(engine, dsapi.WithLogger(logger)).Register(e)
		go func() {
			logger.Info("starting api", slog.String("addr", cfg.ApiAddr))
			if err := e.Start(cfg.ApiAddr); err != nil && err != http.ErrServerClosed {
				logger.Error("api server stopped", slog.String("err", err.Error()))
			}
		}()
		shutdownFns = append(shutdownFns, func() { _ = e.Close() })
	}

	for _, peer := range cfg.Peers {
		if peer.Port == nil || peer.Port.ZMQ == 0 {
			continue
		}

		feed := zmqfeed.New(peer.Host, peer.Port.ZMQ, engine, node.FetchRawTx, node.CurrentHeight, logger)
		if err := feed.Start(); err != nil {
			logger.Warn("zmq feed not started", slog.String("peer", peer.Host), slog.String("err", err.Error()))
		}
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-signalChan
	logger.Info("Received shutdown signal", slog.String("reason", sig.String()))

	appCleanup(logger, shutdownFns)

	return nil
}

func buildNodeAdapter(cfg *config.DirectSendConfig) (*nodeadapter.Adapter, error) {
	n := cfg.Node
	if n == nil {
		return nil, fmt.Errorf("node RPC endpoint not configured")
	}

	return nodeadapter.New(n.Host, n.Port, n.User, n.Password, n.UseSSL)
}

func buildEngine(cfg *config.DirectSendConfig, logger *slog.Logger, node *nodeadapter.Adapter, transport *nats_mq.Client) (*directsend.Engine, error) {
	engineCfg := directsend.DefaultEngineConfig()
	if cfg.Engine != nil {
		engineCfg = cfg.Engine.ToEngineConfig()
	}

	return directsend.NewEngine(
		node,
		registry.New(nil, nil),
		transport,
		registry.DefaultSporks(),
		node,
		registry.NewLoggingWalletSink(logger),
		sigscheme.New(),
		registry.NewStaticKeyStore(nil),
		directsend.WithLogger(logger),
		directsend.WithEngineConfig(engineCfg),
		directsend.WithShellNotifier(notify.New(cfg.NotifyCommand, logger)),
	)
}

func appCleanup(logger *slog.Logger, shutdownFns []func()) {
	logger.Info("cleaning up")
	for _, fn := range shutdownFns {
		fn()
	}
}

func parseFlags() string {
	configDir := flag.String("config", "", "path to configuration file")
	help := flag.Bool("help", false, "Show help")

	flag.Parse()

	if *help {
		fmt.Println("usage: directsend [options]")
		fmt.Println("    -config=<path>")
		fmt.Println("          path to a directory containing config.yaml")
		os.Exit(0)
	}

	return *configDir
}
