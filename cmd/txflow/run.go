package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"txhandoff/internal/audit"
	"txhandoff/internal/config"
	"txhandoff/internal/consumer"
	"txhandoff/internal/metrics"
	"txhandoff/internal/notify"
	"txhandoff/internal/pipeline"
	"txhandoff/internal/record"
	"txhandoff/internal/store"
	"txhandoff/internal/util"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "build one record and process it with the configured strategy",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "strategy", Aliases: []string{"s"}, Usage: "transfer|borrow|clone|share"},
			&cli.StringFlag{Name: "id", Usage: "transaction id; generated when set to \"auto\""},
			&cli.StringFlag{Name: "amount", Usage: "decimal amount, e.g. 1000.50"},
			&cli.StringFlag{Name: "from", Usage: "source account"},
			&cli.StringFlag{Name: "to", Usage: "destination account"},
		},
		Action: run,
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	var envFiles []string
	if f := c.String("env-file"); f != "" {
		envFiles = append(envFiles, f)
	}
	config.ApplyEnv(cfg, envFiles...)

	if v := c.String("strategy"); v != "" {
		cfg.Pipeline.Strategy = v
	}
	if v := c.String("id"); v != "" {
		cfg.Record.ID = v
	}
	if v := c.String("amount"); v != "" {
		cfg.Record.Amount = v
	}
	if v := c.String("from"); v != "" {
		cfg.Record.Source = v
	}
	if v := c.String("to"); v != "" {
		cfg.Record.Destination = v
	}
	return cfg, nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := util.NewLogger(cfg.App.LogLevel)
	ctx := c.Context

	if cfg.App.MetricsAddr != "" {
		srv := metrics.Serve(cfg.App.MetricsAddr)
		defer srv.Close()
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}

	consumers, closeAll, err := buildConsumers(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeAll()

	p, err := pipeline.Build(cfg.Pipeline.Strategy, consumers, log)
	if err != nil {
		return err
	}

	rec, err := buildRecord(cfg.Record)
	if err != nil {
		return err
	}
	log.Info().Str("strategy", p.Name()).Str("id", rec.ID()).Msg("processing record")
	if err := pipeline.Run(ctx, p, rec); err != nil {
		return fmt.Errorf("process record: %w", err)
	}
	return nil
}

func buildRecord(cfg config.Record) (record.Record, error) {
	amount, err := record.ParseAmount(cfg.Amount)
	if err != nil {
		return record.Record{}, err
	}
	if cfg.ID == "" || cfg.ID == "auto" {
		return record.Generate(amount, cfg.Source, cfg.Destination), nil
	}
	return record.New(cfg.ID, amount, time.Now().UTC(), cfg.Source, cfg.Destination), nil
}

// buildConsumers opens every sink and returns the consumers in persist,
// notify, audit order together with a function closing the sinks.
func buildConsumers(ctx context.Context, cfg *config.Config, log zerolog.Logger) ([]consumer.Consumer, func(), error) {
	s, err := store.Build(ctx, cfg.Store.Driver, store.Options{
		Path:     cfg.Store.Path,
		DSN:      cfg.Store.DSN,
		Addr:     cfg.Store.Addr,
		Password: cfg.Store.Password,
	})
	if err != nil {
		return nil, nil, err
	}

	pub, err := notify.Build(ctx, cfg.Notify.Driver, notify.Options{
		Brokers: cfg.Notify.Brokers,
		NSQAddr: cfg.Notify.NSQAddr,
		URL:     cfg.Notify.URL,
	}, log)
	if err != nil {
		s.Close()
		return nil, nil, err
	}

	recorder, err := audit.OpenRotating(cfg.Audit.Path, cfg.Audit.MaxSizeMB, cfg.Audit.MaxBackups, cfg.Audit.MaxAgeDays)
	if err != nil {
		pub.Close()
		s.Close()
		return nil, nil, err
	}

	closeAll := func() {
		if err := recorder.Close(); err != nil {
			log.Warn().Err(err).Msg("close audit trail")
		}
		if err := pub.Close(); err != nil {
			log.Warn().Err(err).Msg("close publisher")
		}
		if err := s.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}
	consumers := []consumer.Consumer{
		consumer.NewPersister(s, log),
		consumer.NewNotifier(pub, cfg.Notify.Topic, log),
		consumer.NewAuditor(recorder, log),
	}
	return consumers, closeAll, nil
}
