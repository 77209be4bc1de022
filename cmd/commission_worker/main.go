package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/nexlevel/referral-ledger/pkg/commission"
	"github.com/nexlevel/referral-ledger/pkg/referral"
	"github.com/nexlevel/referral-ledger/pkg/scheduler"
	dydbstore "github.com/nexlevel/referral-ledger/pkg/storage/dynamodb"
	"github.com/nexlevel/referral-ledger/pkg/upline"
)

var engine *commission.Engine

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
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

	store := dydbstore.New(dbClient, membersTable, ledgerTable, payoutsTable)

	rates := commission.DefaultRateTable()
	if raw := os.Getenv("COMMISSION_RATES_JSON"); raw != "" {
		rates, err = commission.RateTableFromJSON([]byte(raw))
		if err != nil {
			log.Fatalf("invalid COMMISSION_RATES_JSON: %v", err)
		}
	}

	engine = commission.NewEngine(
		upline.NewResolver(store),
		rates,
		commission.NewProcessor(store, store),
		referral.NewUpdater(store),
	)
}

// HandleRequest processes queued activation events and pays out commissions.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var event scheduler.ActivationEvent
		if err := json.Unmarshal([]byte(message.Body), &event); err != nil {
			log.Printf("ERROR: failed to unmarshal activation event from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		log.Printf("Processing activation for member %s (sponsor %s)", event.MemberCode, event.SponsorCode)

		outcome, err := engine.ProcessActivation(ctx, event.MemberCode, event.SponsorCode)
		if err != nil {
			log.Printf("ERROR: failed to process activation for %s: %v", event.MemberCode, err)
			// Every stage is idempotent, so an SQS retry cannot double pay.
			return err
		}

		log.Printf("Activation for %s complete: upline depth %d, %d commissions paid, referral added: %t",
			outcome.MemberCode, outcome.UplineDepth, outcome.PaidCommissions, outcome.ReferralAdded)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
