package cmd

import (
	"context"
	"expo-booth/common/currency"
	jetstreamCommon "expo-booth/common/jetstream"
	"expo-booth/common/metrics"
	"expo-booth/common/otel"
	inboundCron "expo-booth/inbound/cron"
	inboundHttp "expo-booth/inbound/http"
	"expo-booth/outbound/bakong"
	"expo-booth/outbound/sqlgen"
	"expo-booth/settlement"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"runtime/pprof"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func runHttpServerCmd(ctx context.Context) {
	cfg := newCfg("env")

	if cfg.GetString("env") == "dev" {
		cpu, err := os.Create("http-cpu.prof")
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		defer cpu.Close()

		err = pprof.StartCPUProfile(cpu)
		if err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()

		mem, err := os.Create("http-mem.prof")
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer mem.Close()

		err = pprof.WriteHeapProfile(mem)
		if err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
		defer mem.Close()
	}

	shutdownTracer := otel.InitTracerProvider(ctx, cfg.GetString("otel.endpoint"))

	validate := validator.New()

	db := newDb(cfg)
	defer db.Close()

	cacheClient := newRedis(cfg)
	defer cacheClient.Close()

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	jetstreamCommon.CreateQueueStream(ctx, js)

	querier := sqlgen.New(db)

	converter := currency.NewConverter(cfg.GetFloat64("currency.khr_per_usd"))

	gateway := bakong.NewClient(bakong.Config{
		BaseURL:     cfg.GetString("bakong.base_url"),
		AccountID:   cfg.GetString("bakong.account_id"),
		AccountName: cfg.GetString("bakong.account_name"),
		PhoneNumber: cfg.GetString("bakong.phone_number"),
		RenewEmail:  cfg.GetString("bakong.renew_email"),
	}, cacheClient)

	stl := settlement.New(cfg, db, querier, js, converter, gateway)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		slog.DebugContext(r.Context(), "health check")
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("GET /metrics", metrics.Handler())

	timeoutMiddleware := inboundHttp.TimeoutMiddleware(20 * time.Second)

	inboundHttp.RegisterBoothHttp(mux, querier)
	inboundHttp.RegisterOrderHttp(mux, cfg, stl, querier, cacheClient, js, validate, message.NewPrinter(language.English))
	inboundHttp.RegisterPaymentHttp(mux, stl, querier, gateway, validate)

	boothCron := inboundCron.BoothCron{
		Cfg:     cfg,
		Querier: querier,
	}

	boothCron.Refresh(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.GetInt("server.port")),
		Handler:           timeoutMiddleware(inboundHttp.CorsMiddleware(mux)),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln("unable to start server", err)
		}
	}()

	slog.Info("http server started")

	go func() {
		boothCron.Start(ctx)
	}()

	<-ctx.Done()

	ctxShutDown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutDown); err != nil {
		log.Fatalln("unable to shutdown server", err)
	}

	if err := shutdownTracer(ctxShutDown); err != nil {
		slog.Error("unable to shutdown tracer provider", slog.Any("error", err))
	}

	slog.Info("http server stopped")
}
