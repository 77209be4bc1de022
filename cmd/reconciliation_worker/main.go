package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/nexlevel/referral-ledger/pkg/gateway"
	"github.com/nexlevel/referral-ledger/pkg/loan"
	"github.com/nexlevel/referral-ledger/pkg/storage"
	dydbstore "github.com/nexlevel/referral-ledger/pkg/storage/dynamodb"
	"github.com/nexlevel/referral-ledger/pkg/webhook"
)

var store storage.Storage
var loans *loan.Manager
var gatewayClient gateway.API

const stuckOrderThreshold = 30 * time.Minute

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	membersTable := os.Getenv("DYNAMODB_MEMBERS_TABLE_NAME")
	ledgerTable := os.Getenv("DYNAMODB_LEDGER_TABLE_NAME")
	payoutsTable := os.Getenv("DYNAMODB_PAYOUTS_TABLE_NAME")

	store = dydbstore.New(dbClient, membersTable, ledgerTable, payoutsTable)

	gatewayClient = gateway.NewCashfreeClient(gateway.Config{
		BaseURL:   os.Getenv("CASHFREE_BASE_URL"),
		AppID:     os.Getenv("CASHFREE_APP_ID"),
		SecretKey: os.Getenv("CASHFREE_SECRET_KEY"),
	})

	tiers := loan.TierTable(nil)
	if raw := os.Getenv("LOAN_TIERS_JSON"); raw != "" {
		tiers, err = loan.TierTableFromJSON([]byte(raw))
		if err != nil {
			log.Fatalf("invalid LOAN_TIERS_JSON: %v", err)
		}
	}
	loans = loan.NewManager(store, gatewayClient, tiers)
}

// HandleRequest is triggered by an EventBridge Schedule. It re-drives
// repayment orders whose gateway callback never arrived: the gateway is
// polled for the order's status, and settled or failed orders are applied
// through the same idempotent path the webhook uses.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation process for stuck repayment orders...")

	stuck, err := store.GetStuckRepaymentOrders(ctx, stuckOrderThreshold)
	if err != nil {
		log.Printf("ERROR: failed to get stuck repayment orders: %v", err)
		return err
	}

	if len(stuck) == 0 {
		log.Println("No stuck repayment orders found.")
		return nil
	}

	log.Printf("Found %d stuck repayment orders. Polling the gateway...", len(stuck))

	for i := range stuck {
		entry := &stuck[i]

		order, err := gatewayClient.GetOrderStatus(ctx, entry.OrderRef)
		if err != nil {
			log.Printf("ERROR: failed to poll order %s: %v", entry.OrderRef, err)
			// Continue to the next order, don't let one failure stop the whole batch.
			continue
		}

		status := webhook.Event{Status: order.OrderStatus}
		switch {
		case status.Settled():
			if err := loans.SettleOrder(ctx, entry); err != nil {
				switch {
				case errors.Is(err, storage.ErrCallbackAlreadyApplied):
					log.Printf("Order %s already settled, skipping", entry.OrderRef)
				case errors.Is(err, storage.ErrDueAmountMoved):
					// A concurrent repayment consumed this order's baseline.
					// Fail it the same way the webhook path does, so it
					// reaches a terminal state instead of being re-polled
					// forever.
					reason := "loan due amount changed before settlement; repayment not applied"
					if err := store.MarkEntryFailed(ctx, entry.EntryID, reason); err != nil && !errors.Is(err, storage.ErrCallbackAlreadyApplied) {
						log.Printf("ERROR: failed to fail superseded order %s: %v", entry.OrderRef, err)
						continue
					}
					log.Printf("Order %s superseded by a concurrent repayment, marked failed", entry.OrderRef)
				default:
					log.Printf("ERROR: failed to settle order %s: %v", entry.OrderRef, err)
				}
				continue
			}
			log.Printf("Settled stuck order %s", entry.OrderRef)
		case status.Failed():
			if err := store.MarkEntryFailed(ctx, entry.EntryID, "Gateway reported "+order.OrderStatus+" during reconciliation"); err != nil {
				if errors.Is(err, storage.ErrCallbackAlreadyApplied) {
					continue
				}
				log.Printf("ERROR: failed to mark order %s failed: %v", entry.OrderRef, err)
				continue
			}
			log.Printf("Marked stuck order %s as failed (%s)", entry.OrderRef, order.OrderStatus)
		default:
			log.Printf("Order %s still in flight at the gateway (%s), leaving pending", entry.OrderRef, order.OrderStatus)
		}
	}

	log.Println("Reconciliation process finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
