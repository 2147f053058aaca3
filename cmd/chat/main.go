package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"loan-origination/internal/config"
	"loan-origination/internal/conversation"
	"loan-origination/internal/domain/customer"
	"loan-origination/internal/domain/negotiation"
	"loan-origination/internal/domain/underwriting"
	"loan-origination/internal/infrastructure/bureau"
	"loan-origination/internal/infrastructure/directory"
	"loan-origination/internal/infrastructure/letter"
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Terminal driver for the loan-origination chatbot",
	Long: `Runs the loan-origination conversation in the terminal against the same
engine the HTTP service uses. The credit bureau and offer mart endpoints must
be reachable (see the mockbureau command for local runs).`,
	RunE: runChat,
}

func init() {
	rootCmd.Flags().String("config", ".", "directory containing config.yml")
	rootCmd.Flags().String("bureau-url", "", "override the bureau base URL")
	rootCmd.Flags().String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("bureau.baseUrl", rootCmd.Flags().Lookup("bureau-url"))
	_ = viper.BindPFlag("logger.level", rootCmd.Flags().Lookup("log-level"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	configDir, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Keep the chat transcript clean: logs stay on stderr behind the
	// configured level, replies go to stdout.
	logger := newStderrLogger(cfg.Logger)

	engine, err := buildEngine(cfg, logger)
	if err != nil {
		return err
	}

	session, greeting := engine.StartSession()
	fmt.Printf("Chatbot: %s\n", greeting)

	scanner := bufio.NewScanner(os.Stdin)
	for session.State != conversation.StateEnded {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		reply := engine.Advance(cmd.Context(), session, input)
		for _, line := range strings.Split(reply, "\n") {
			if line == "" {
				continue
			}
			fmt.Printf("Chatbot: %s\n", line)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println("\n--- Conversation End ---")
	return nil
}

func buildEngine(cfg *config.Config, logger *slog.Logger) (*conversation.Engine, error) {
	dir, err := directory.NewJSONDirectory(cfg.Directory.DataFile, logger)
	if err != nil {
		return nil, fmt.Errorf("loading customer directory: %w", err)
	}

	interestRate, err := decimal.NewFromString(cfg.Loan.AnnualInterestRate)
	if err != nil {
		return nil, fmt.Errorf("invalid loan.annualInterestRate: %w", err)
	}

	policy, err := negotiation.ParseSuggestionPolicy(cfg.Negotiation.SuggestionPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid negotiation.suggestionPolicy: %w", err)
	}

	renderer, err := letter.NewPDFRenderer(cfg.Letter.OutputDir, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing letter renderer: %w", err)
	}

	bureauClient := bureau.NewClient(cfg.Bureau, logger)

	return conversation.NewEngine(conversation.EngineConfig{
		Verifier: customer.NewVerificationService(dir, logger),
		Negotiator: negotiation.NewNegotiator(bureauClient, negotiation.Config{
			AnnualInterestRate: interestRate,
			MinTenureMonths:    cfg.Negotiation.MinTenureMonths,
			MaxTenureMonths:    cfg.Negotiation.MaxTenureMonths,
		}, logger),
		Underwriter:        underwriting.NewService(bureauClient, logger),
		Renderer:           renderer,
		SuggestionPolicy:   policy,
		AnnualInterestRate: interestRate,
		Logger:             logger,
	}), nil
}

func newStderrLogger(cfg config.LoggerConfig) *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
