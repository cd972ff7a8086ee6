package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/s0up4200/facturation/config"
	"github.com/s0up4200/facturation/facturation"
	"github.com/s0up4200/facturation/filter"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *facturation.Client
	filters *filter.Manager

	// Command flags
	firmID     int64
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "facturation",
	Short: "A command line client for the facturation.pro invoicing API",
	Long: `facturation is a CLI for the facturation.pro invoicing service. It runs the
OAuth2 authorization flow, lists and creates customers, invoices and credit
notes, downloads invoice PDFs and reports the API rate-limit budget.`,
	SilenceUsage: true,
}

// SetVersion sets the version reported by --version
func SetVersion(version, buildTime string) {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle: initializeApp reads rootCmd.Version.
	rootCmd.PersistentPreRunE = initializeApp
	rootCmd.PersistentPostRunE = shutdownApp

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Int64Var(&firmID, "firm", 0, "firm ID (overrides api.firm_id)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of a summary")
}

// initializeApp initializes the configuration and client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("firm") {
		cfg.API.FirmID = firmID
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filters); err != nil {
		return fmt.Errorf("invalid filter in config: %w", err)
	}

	opts := []facturation.Option{
		facturation.WithBaseURL(cfg.API.BaseURL),
		facturation.WithTimeout(cfg.API.Timeout),
		facturation.WithUserAgent("facturation-cli/" + rootCmd.Version),
	}
	if token := tokenFromConfig(cfg.OAuth); token != nil {
		opts = append(opts, facturation.WithToken(token))
	}

	client, err = facturation.NewClient(facturation.Config{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURI:  cfg.OAuth.RedirectURI,
		Scope:        cfg.OAuth.Scope,
	}, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create facturation client: %w", err)
	}

	return nil
}

func shutdownApp(cmd *cobra.Command, args []string) error {
	if client != nil {
		client.Close()
	}
	return nil
}

// tokenFromConfig builds a token from configured credentials. A token with
// only a refresh token is invalid, so the first call renews it.
func tokenFromConfig(oc config.OAuthConfig) *oauth2.Token {
	if !oc.HasToken() {
		return nil
	}

	return &oauth2.Token{
		AccessToken:  oc.AccessToken,
		RefreshToken: oc.RefreshToken,
		TokenType:    "bearer",
	}
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// requireFirm returns the firm ID from flags or config
func requireFirm() (int64, error) {
	if cfg.API.FirmID <= 0 {
		return 0, fmt.Errorf("no firm selected: pass --firm or set api.firm_id")
	}
	return cfg.API.FirmID, nil
}
