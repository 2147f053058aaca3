package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"loan-origination/internal/domain/customer"
	"loan-origination/internal/infrastructure/directory"
)

// mockbureau serves the credit bureau and offer mart endpoints from the same
// customer data file the chat service loads, for local runs and demos.
var rootCmd = &cobra.Command{
	Use:   "mockbureau",
	Short: "Mock credit bureau and offer mart server",
	RunE:  runServer,
}

func init() {
	rootCmd.Flags().Int("port", 5001, "listen port")
	rootCmd.Flags().String("data-file", "data/customers.json", "customer data file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	port, _ := cmd.Flags().GetInt("port")
	dataFile, _ := cmd.Flags().GetString("data-file")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	dir, err := directory.NewJSONDirectory(dataFile, logger)
	if err != nil {
		return fmt.Errorf("loading customer data: %w", err)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/credit-score", lookupHandler(dir, func(rec *customer.Record) (string, int64) {
		return "credit_score", rec.CreditScore
	}))
	router.Get("/pre-approved-limit", lookupHandler(dir, func(rec *customer.Record) (string, int64) {
		return "pre_approved_limit", rec.PreApprovedLimit
	}))
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	logger.Info("Mock bureau listening", "port", port, "customers", dir.Count())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), router)
}

func lookupHandler(dir *directory.JSONDirectory, field func(*customer.Record) (string, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := r.URL.Query().Get("phone")
		w.Header().Set("Content-Type", "application/json")

		rec, err := dir.FindByPhone(r.Context(), phone)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "customer not found"})
			return
		}

		name, value := field(rec)
		json.NewEncoder(w).Encode(map[string]int64{name: value})
	}
}
