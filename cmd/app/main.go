package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/nexlevel/referral-ledger/pkg/api"
	"github.com/nexlevel/referral-ledger/pkg/gateway"
	"github.com/nexlevel/referral-ledger/pkg/handlers"
	"github.com/nexlevel/referral-ledger/pkg/loan"
	"github.com/nexlevel/referral-ledger/pkg/middleware"
	"github.com/nexlevel/referral-ledger/pkg/scheduler"
	dydbstore "github.com/nexlevel/referral-ledger/pkg/storage/dynamodb"
	"github.com/nexlevel/referral-ledger/pkg/wallet"
	"github.com/nexlevel/referral-ledger/pkg/webhook"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	membersTable := os.Getenv("DYNAMODB_MEMBERS_TABLE_NAME")
	ledgerTable := os.Getenv("DYNAMODB_LEDGER_TABLE_NAME")
	payoutsTable := os.Getenv("DYNAMODB_PAYOUTS_TABLE_NAME")

	if membersTable == "" || ledgerTable == "" || payoutsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// SQS Client and Scheduler
	sqsClient := sqs.NewFromConfig(cfg)
	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	sqsScheduler := scheduler.NewSQSScheduler(sqsClient, sqsQueueURL)

	// Create our storage implementation
	store := dydbstore.New(dbClient, membersTable, ledgerTable, payoutsTable)

	// Payment gateway client
	gatewayClient := gateway.NewCashfreeClient(gateway.Config{
		BaseURL:   os.Getenv("CASHFREE_BASE_URL"),
		AppID:     os.Getenv("CASHFREE_APP_ID"),
		SecretKey: os.Getenv("CASHFREE_SECRET_KEY"),
		Timeout:   10 * time.Second,
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Domain services
	tiers := loan.TierTable(nil)
	if raw := os.Getenv("LOAN_TIERS_JSON"); raw != "" {
		var err error
		tiers, err = loan.TierTableFromJSON([]byte(raw))
		if err != nil {
			log.Fatalf("invalid LOAN_TIERS_JSON: %v", err)
		}
	}
	loans := loan.NewManager(store, gatewayClient, tiers)
	wallets := wallet.NewService(store, store)
	webhooks := webhook.NewProcessor(
		store,
		loans,
		os.Getenv("CASHFREE_SECRET_KEY"),
		os.Getenv("WEBHOOK_PROCESS_UNVERIFIED") != "false",
		logger,
	)

	// Create our handler
	handler := handlers.NewApiHandler(store, loans, wallets, webhooks, sqsScheduler)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(chimiddleware.Recoverer)

	// Mount our handler on the router
	api.HandlerFromMux(handler, router)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
