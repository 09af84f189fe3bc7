package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/bytenews/pkg/audio"
	"github.com/umputun/bytenews/pkg/classifier"
	"github.com/umputun/bytenews/pkg/config"
	"github.com/umputun/bytenews/pkg/content"
	"github.com/umputun/bytenews/pkg/domain"
	"github.com/umputun/bytenews/pkg/feed"
	"github.com/umputun/bytenews/pkg/ingest"
	"github.com/umputun/bytenews/pkg/repository"
	"github.com/umputun/bytenews/pkg/scheduler"
	"github.com/umputun/bytenews/pkg/summary"
	"github.com/umputun/bytenews/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DBPath  string `long:"db" env:"DB" description:"database DSN, overrides config"`
	Once    bool   `long:"once" description:"ingest all sources once and exit"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"dotenv file loaded before start"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	// dotenv goes first so go-flags can pick values from it
	loadEnvFile(envFileFromArgs(os.Args[1:]))

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	SetupLog(opts.Debug, opts.NoColor, os.Getenv("OPENAI_API_KEY"))

	lgr.Printf("[INFO] starting bytenews version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	lgr.Printf("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DBPath != "" {
		cfg.Database.DSN = opts.DBPath
	}
	if cfg.Audio.APIKey != "" {
		// key may come from the config file rather than env
		SetupLog(opts.Debug, opts.NoColor, os.Getenv("OPENAI_API_KEY"), cfg.Audio.APIKey)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	if err != nil {
		return fmt.Errorf("failed to init repositories: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	pipeline := makePipeline(cfg, repos)
	sched := scheduler.NewScheduler(scheduler.Params{
		Ingester:       pipeline,
		Sources:        feedSources(cfg.Sources),
		UpdateInterval: cfg.UpdateInterval(),
	})

	if opts.Once {
		added := sched.UpdateNow(ctx)
		lgr.Printf("[INFO] single ingestion pass done, %d new articles", added)
		return nil
	}

	sched.Start(ctx)
	defer sched.Stop()

	mediaDir := ""
	if cfg.Audio.Enabled {
		mediaDir = cfg.Audio.MediaDir
	}
	srv := server.New(server.Params{
		Listen:   cfg.Server.Listen,
		Timeout:  cfg.Server.Timeout,
		BaseURL:  cfg.Server.BaseURL,
		MediaDir: mediaDir,
		Version:  revision,
		Debug:    opts.Debug,
	}, repos.Article, repos.Category, pipeline, sched)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makePipeline wires fetching, extraction, classification, summarization and audio into the ingest pipeline
func makePipeline(cfg *config.Config, repos *repository.Repositories) *ingest.Pipeline {
	downloader := content.NewHTTPDownloader(content.DownloaderParams{
		Timeout:   cfg.Fetch.Timeout,
		UserAgent: cfg.Fetch.UserAgent,
		Retries:   cfg.Fetch.Retries,
		Delay:     500 * time.Millisecond,
	})
	chain := content.NewChain(downloader, cfg.Fetch.MinContentLength, content.DefaultStrategies()...)

	fetcher := feed.NewFetcher(chain, classifier.New(cfg.Categories), feed.Params{
		Timeout:        cfg.Fetch.Timeout,
		UserAgent:      cfg.Fetch.UserAgent,
		Retries:        cfg.Fetch.Retries,
		Delay:          500 * time.Millisecond,
		ExtractWorkers: cfg.Fetch.ExtractWorkers,
	})

	// must stay a nil interface when audio is disabled
	var renderer ingest.Renderer
	if cfg.Audio.Enabled {
		speaker := audio.NewOpenAISpeaker(audio.OpenAIParams{
			APIKey:   cfg.Audio.APIKey,
			Endpoint: cfg.Audio.Endpoint,
			Model:    cfg.Audio.Model,
			Voice:    cfg.Audio.Voice,
		})
		renderer = audio.NewRenderer(speaker, audio.Params{
			MediaDir: cfg.Audio.MediaDir,
			Language: cfg.Audio.Language,
			MaxChars: cfg.Audio.MaxChars,
			Timeout:  cfg.Audio.Timeout,
		})
		lgr.Printf("[INFO] audio enabled, media dir %s, model %s", cfg.Audio.MediaDir, cfg.Audio.Model)
	}

	return ingest.NewPipeline(ingest.Config{
		Articles:      repos.Article,
		Categories:    repos.Category,
		Fetcher:       fetcher,
		Summarizer:    summary.New(),
		Renderer:      renderer,
		MaxWorkers:    cfg.Fetch.MaxWorkers,
		SummaryLength: summary.ParseLength(cfg.Summary.Length),
		SummaryPolicy: cfg.Summary.Policy,
	})
}

func feedSources(sources []config.Source) []domain.FeedSource {
	res := make([]domain.FeedSource, 0, len(sources))
	for _, s := range sources {
		res = append(res, domain.FeedSource{Name: s.Name, URL: s.URL})
	}
	return res
}

// envFileFromArgs finds --env-file before flags are parsed, falls back to ENV_FILE and .env
func envFileFromArgs(args []string) string {
	for i, a := range args {
		if a == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(a, "--env-file="); ok {
			return v
		}
	}
	if v := os.Getenv("ENV_FILE"); v != "" {
		return v
	}
	return ".env"
}

// loadEnvFile loads variables from a dotenv file, existing variables are not overridden
func loadEnvFile(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", path, err)
	}
}

// SetupLog configures lgr and the std logger, secrets are masked in the output
func SetupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
