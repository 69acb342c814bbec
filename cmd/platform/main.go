package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"shopkeeper"
	"shopkeeper/api"
	"shopkeeper/cache"
	"shopkeeper/docstore"
	"shopkeeper/shoplog"
	"shopkeeper/store"
	"shopkeeper/uploader"

	"github.com/jpillora/backoff"
	"github.com/ninja-software/log_helpers"
	"github.com/ninja-software/terror/v2"
	"github.com/oklog/run"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// Variable passed in at compile time using `-ldflags`
var (
	Version          string // -X main.Version=$(git describe --tags --abbrev=0)
	GitHash          string // -X main.GitHash=$(git rev-parse HEAD)
	GitBranch        string // -X main.GitBranch=$(git rev-parse --abbrev-ref HEAD)
	BuildDate        string // -X main.BuildDate=$(date -u +%Y%m%d%H%M%S)
	UnCommittedFiles string // -X main.UnCommittedFiles=$(git status --porcelain | wc -l)"
)

const SentryReleasePrefix = "shopkeeper_api"
const envPrefix = "SHOPKEEPER"

func main() {
	app := &cli.App{
		Compiled: time.Now(),
		Usage:    "Run the shopkeeper admin API server",
		Flags:    []cli.Flag{},
		Commands: []*cli.Command{
			{
				// This is not using the built in version so ansible can more easily read the version
				Name: "version",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "full", Usage: "Prints full version and build info", Value: false},
				},
				Action: func(c *cli.Context) error {
					if c.Bool("full") {
						fmt.Printf("Version=%s\n", Version)
						fmt.Printf("Commit=%s\n", GitHash)
						fmt.Printf("Branch=%s\n", GitBranch)
						fmt.Printf("BuildDate=%s\n", BuildDate)
						fmt.Printf("WorkingCopyState=%s uncommitted\n", UnCommittedFiles)
						return nil
					}
					fmt.Printf("%s-\n", Version)
					return nil
				},
			},
			{
				Name:    "serve",
				Aliases: []string{"s"},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "backend_endpoint", Value: "http://localhost/v1", EnvVars: []string{envPrefix + "_BACKEND_ENDPOINT", "BACKEND_ENDPOINT"}, Usage: "The document backend endpoint"},
					&cli.StringFlag{Name: "backend_project", Value: "", EnvVars: []string{envPrefix + "_BACKEND_PROJECT", "BACKEND_PROJECT"}, Usage: "The document backend project ID"},
					&cli.StringFlag{Name: "backend_api_key", Value: "", EnvVars: []string{envPrefix + "_BACKEND_API_KEY", "BACKEND_API_KEY"}, Usage: "The document backend server API key"},
					&cli.StringFlag{Name: "backend_database", Value: "shop", EnvVars: []string{envPrefix + "_BACKEND_DATABASE", "BACKEND_DATABASE"}, Usage: "The document backend database ID"},
					&cli.StringFlag{Name: "backend_bucket", Value: "shop-images", EnvVars: []string{envPrefix + "_BACKEND_BUCKET", "BACKEND_BUCKET"}, Usage: "The storage bucket ID for uploaded images"},

					&cli.StringFlag{Name: "environment", Value: "development", DefaultText: "development", EnvVars: []string{envPrefix + "_ENVIRONMENT", "ENVIRONMENT"}, Usage: "This program environment (development, testing, training, staging, production), it sets the log levels"},
					&cli.StringFlag{Name: "sentry_dsn_backend", Value: "", EnvVars: []string{envPrefix + "_SENTRY_DSN_BACKEND", "SENTRY_DSN_BACKEND"}, Usage: "Sends error to remote server. If set, it will send error."},
					&cli.StringFlag{Name: "sentry_server_name", Value: "dev-pc", EnvVars: []string{envPrefix + "_SENTRY_SERVER_NAME", "SENTRY_SERVER_NAME"}, Usage: "The machine name that this program is running on."},
					&cli.Float64Flag{Name: "sentry_sample_rate", Value: 1, EnvVars: []string{envPrefix + "_SENTRY_SAMPLE_RATE", "SENTRY_SAMPLE_RATE"}, Usage: "The percentage of trace sample to collect (0.0-1)"},
					&cli.StringFlag{Name: "log_level", Value: "InfoLevel", EnvVars: []string{envPrefix + "_LOG_LEVEL"}, Usage: "Set the log level for zerolog (Options: PanicLevel, FatalLevel, ErrorLevel, WarnLevel, InfoLevel, DebugLevel, TraceLevel"},

					&cli.StringFlag{Name: "admin_web_host_url", Value: "http://localhost:3000", EnvVars: []string{envPrefix + "_HOST_URL_FRONTEND"}, Usage: "The admin panel URL used for CORS"},
					&cli.StringFlag{Name: "api_addr", Value: ":8086", EnvVars: []string{envPrefix + "_API_ADDR", "API_ADDR"}, Usage: "host:port to run the API"},
					&cli.BoolFlag{Name: "cookie_secure", Value: true, EnvVars: []string{envPrefix + "_COOKIE_SECURE", "COOKIE_SECURE"}, Usage: "set cookie secure"},
					&cli.IntFlag{Name: "session_expiry_days", Value: 30, EnvVars: []string{envPrefix + "_SESSION_EXPIRY_DAYS", "SESSION_EXPIRY_DAYS"}, Usage: "expiry days for the session cookie"},
				},

				Usage: "run server",
				Action: func(c *cli.Context) error {
					ctx, cancel := context.WithCancel(c.Context)
					environment := c.String("environment")
					level := c.String("log_level")
					log := shoplog.New(environment, level)
					if environment == "production" || environment == "staging" {
						logPtr := zerolog.New(os.Stdout)
						log = &logPtr
						shoplog.L = log
					}

					g := &run.Group{}
					// Listen for os.interrupt
					g.Add(run.SignalHandler(ctx, os.Interrupt))
					// start the server
					g.Add(func() error { return ServeFunc(ctx, c, log) }, func(err error) { cancel() })

					err := g.Run()
					if errors.Is(err, run.SignalError{Signal: os.Interrupt}) {
						err = terror.Warn(err)
					}
					log_helpers.TerrorEcho(ctx, err, log)
					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		terror.Echo(err)
		os.Exit(1) // so ci knows it no good
	}
}

// waitForBackend blocks until the document backend answers its health
// check, backing off between attempts.
func waitForBackend(ctx context.Context, client *docstore.Client, log *zerolog.Logger) error {
	b := &backoff.Backoff{
		Min:    1 * time.Second,
		Max:    30 * time.Second,
		Factor: 2,
		Jitter: true,
	}
	for {
		err := client.Health(ctx)
		if err == nil {
			return nil
		}
		wait := b.Duration()
		log.Warn().Err(err).Dur("retry_in", wait).Msg("backend not ready")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func ServeFunc(ctx context.Context, ctxCLI *cli.Context, log *zerolog.Logger) error {
	environment := ctxCLI.String("environment")
	sentryDSNBackend := ctxCLI.String("sentry_dsn_backend")
	sentryServerName := ctxCLI.String("sentry_server_name")
	sentryTraceRate := ctxCLI.Float64("sentry_sample_rate")
	sentryRelease := fmt.Sprintf("%s@%s", SentryReleasePrefix, Version)
	err := log_helpers.SentryInit(sentryDSNBackend, sentryServerName, sentryRelease, environment, sentryTraceRate, log)
	switch errors.Unwrap(err) {
	case log_helpers.ErrSentryInitEnvironment:
		return terror.Error(err, fmt.Sprintf("got environment %s", environment))
	case log_helpers.ErrSentryInitDSN, log_helpers.ErrSentryInitVersion:
		if terror.GetLevel(err) == terror.ErrLevelPanic {
			// if the level is panic then in a prod environment
			// so keep panicing
			return terror.Panic(err)
		}
	default:
		if err != nil {
			return terror.Error(err)
		}
	}

	config := &shopkeeper.Config{
		CookieSecure:    ctxCLI.Bool("cookie_secure"),
		AdminWebHostURL: ctxCLI.String("admin_web_host_url"),
		SessionDays:     ctxCLI.Int("session_expiry_days"),
	}

	backendEndpoint := ctxCLI.String("backend_endpoint")
	backendProject := ctxCLI.String("backend_project")
	if backendProject == "" {
		return terror.Panic(fmt.Errorf("missing backend project ID"))
	}
	backendAPIKey := ctxCLI.String("backend_api_key")
	if backendAPIKey == "" {
		return terror.Panic(fmt.Errorf("missing backend API key"))
	}

	client := docstore.New(
		backendEndpoint,
		backendProject,
		backendAPIKey,
		ctxCLI.String("backend_database"),
		ctxCLI.String("backend_bucket"),
		log_helpers.NamedLogger(log, "docstore"),
	)
	err = waitForBackend(ctx, client, log)
	if err != nil {
		return terror.Error(err, "backend never became reachable")
	}

	st := store.New(client, store.DefaultCollections(), log_helpers.NamedLogger(log, "store"))
	cacheStore := cache.New(log_helpers.NamedLogger(log, "cache"))
	up := uploader.New(client, log_helpers.NamedLogger(log, "uploader"))

	apiServer, err := api.NewAPI(
		log_helpers.NamedLogger(log, "api"),
		ctxCLI.String("api_addr"),
		config,
		st,
		cacheStore,
		up,
		client,
		client,
	)
	if err != nil {
		return terror.Error(err)
	}

	return apiServer.Run(ctx)
}
