package dynamodb

import (
	"github.com/nexlevel/referral-ledger/pkg/storage"
)

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client           DynamoDBAPI
	MembersTableName string
	LedgerTableName  string
	PayoutsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, membersTable, ledgerTable, payoutsTable string) *Store {
	return &Store{
		Client:           client,
		MembersTableName: membersTable,
		LedgerTableName:  ledgerTable,
		PayoutsTableName: payoutsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

const (
	memberCodeGSI = "member_code-index"
	orderRefGSI   = "order_ref-index"
	loanEntryGSI  = "loan_entry_id-index"
	statusGSI     = "status-created_at-index"
	receiverGSI   = "receiver_code-index"
)
