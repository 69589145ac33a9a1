package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "swiftmint/internal/errors"
	"swiftmint/internal/model"
	"swiftmint/internal/repository"
	"swiftmint/internal/testutil"
)

type transferFixture struct {
	db       *gorm.DB
	service  TransferService
	userRepo repository.UserRepository
	txnRepo  repository.TransactionRepository
}

func newTransferFixture(t *testing.T) (*transferFixture, func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	userService := NewUserService(userRepo, nil)

	f := &transferFixture{
		db:       db,
		service:  NewTransferService(userRepo, userService),
		userRepo: userRepo,
		txnRepo:  txnRepo,
	}
	return f, func() { testutil.TeardownTestDB(t, db) }
}

func TestTransferService_TransferInternal(t *testing.T) {
	f, teardown := newTransferFixture(t)
	defer teardown()

	sender := testutil.CreateUser(t, f.db, "sender@example.com", decimal.NewFromInt(300))
	recipient := testutil.CreateUser(t, f.db, "recipient@example.com", decimal.NewFromInt(40))

	debit, err := f.service.TransferInternal(context.Background(), sender.ID, recipient.AccountNumber, decimal.NewFromInt(120), "rent")
	require.NoError(t, err)

	assert.Equal(t, model.TransactionTypeDebit, debit.Type)
	assert.Equal(t, model.TransactionStatusCompleted, debit.Status)
	assert.True(t, debit.BalanceAfter.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, recipient.AccountNumber, debit.RecipientAccount)

	// Money is conserved: what left the sender arrived at the recipient.
	reloadedSender, err := f.userRepo.FindByID(context.Background(), sender.ID)
	require.NoError(t, err)
	reloadedRecipient, err := f.userRepo.FindByID(context.Background(), recipient.ID)
	require.NoError(t, err)
	assert.True(t, reloadedSender.Balance.Equal(decimal.NewFromInt(180)))
	assert.True(t, reloadedRecipient.Balance.Equal(decimal.NewFromInt(160)))

	// Both sides get a completed record sharing the reference stem.
	recipientTxns, err := f.txnRepo.FindByUserID(context.Background(), recipient.ID)
	require.NoError(t, err)
	require.Len(t, recipientTxns, 1)
	assert.Equal(t, model.TransactionTypeCredit, recipientTxns[0].Type)
	assert.Equal(t, debit.Reference+"C", recipientTxns[0].Reference)
	assert.True(t, recipientTxns[0].BalanceAfter.Equal(decimal.NewFromInt(160)))
}

func TestTransferService_TransferInternal_Failures(t *testing.T) {
	f, teardown := newTransferFixture(t)
	defer teardown()

	sender := testutil.CreateUser(t, f.db, "sender@example.com", decimal.NewFromInt(100))
	recipient := testutil.CreateUser(t, f.db, "recipient@example.com", decimal.NewFromInt(0))

	tests := []struct {
		name             string
		recipientAccount string
		amount           decimal.Decimal
		expectedError    error
	}{
		{"non-positive amount", recipient.AccountNumber, decimal.Zero, apperrors.ErrInvalidAmount},
		{"self transfer", sender.AccountNumber, decimal.NewFromInt(10), apperrors.ErrSelfTransfer},
		{"insufficient balance", recipient.AccountNumber, decimal.NewFromInt(101), apperrors.ErrInsufficientBalance},
		{"recipient not found", "0000000000", decimal.NewFromInt(10), apperrors.ErrRecipientNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.TransferInternal(context.Background(), sender.ID, tt.recipientAccount, tt.amount, "x")
			assert.Equal(t, tt.expectedError, err)
		})
	}

	// A failed transfer leaves balances and the transaction log untouched.
	reloadedSender, err := f.userRepo.FindByID(context.Background(), sender.ID)
	require.NoError(t, err)
	assert.True(t, reloadedSender.Balance.Equal(decimal.NewFromInt(100)))

	txns, err := f.txnRepo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestTransferService_TransferInternal_LedgerCommitsWithBalances(t *testing.T) {
	f, teardown := newTransferFixture(t)
	defer teardown()

	sender := testutil.CreateUser(t, f.db, "sender@example.com", decimal.NewFromInt(300))
	recipient := testutil.CreateUser(t, f.db, "recipient@example.com", decimal.NewFromInt(40))

	// With the ledger unwritable, the whole transfer must fail and the
	// balance updates roll back with it. No money moves without its records.
	require.NoError(t, f.db.Migrator().DropTable(&model.Transaction{}))

	_, err := f.service.TransferInternal(context.Background(), sender.ID, recipient.AccountNumber, decimal.NewFromInt(120), "rent")
	require.Error(t, err)

	reloadedSender, err := f.userRepo.FindByID(context.Background(), sender.ID)
	require.NoError(t, err)
	reloadedRecipient, err := f.userRepo.FindByID(context.Background(), recipient.ID)
	require.NoError(t, err)
	assert.True(t, reloadedSender.Balance.Equal(decimal.NewFromInt(300)))
	assert.True(t, reloadedRecipient.Balance.Equal(decimal.NewFromInt(40)))
}

func TestTransferService_TransferExternal(t *testing.T) {
	f, teardown := newTransferFixture(t)
	defer teardown()

	sender := testutil.CreateUser(t, f.db, "sender@example.com", decimal.NewFromInt(250))

	beneficiary := ExternalBeneficiary{
		BankName:      "First National",
		AccountNumber: "9988776655",
		AccountName:   "Jordan Smith",
	}

	debit, err := f.service.TransferExternal(context.Background(), sender.ID, beneficiary, decimal.NewFromInt(75), "invoice")
	require.NoError(t, err)

	assert.Equal(t, model.TransactionTypeDebit, debit.Type)
	assert.Equal(t, model.TransactionStatusCompleted, debit.Status)
	assert.Equal(t, "external_transfer", debit.Category)
	assert.Equal(t, "Jordan Smith", debit.RecipientName)
	assert.Contains(t, debit.Metadata, "First National")
	assert.True(t, debit.BalanceAfter.Equal(decimal.NewFromInt(175)))

	reloaded, err := f.userRepo.FindByID(context.Background(), sender.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(decimal.NewFromInt(175)))

	// Only the sender-side record exists; there is no local recipient.
	txns, err := f.txnRepo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, txns, 1)
}

func TestTransferService_TransferExternal_InsufficientBalance(t *testing.T) {
	f, teardown := newTransferFixture(t)
	defer teardown()

	sender := testutil.CreateUser(t, f.db, "sender@example.com", decimal.NewFromInt(10))

	_, err := f.service.TransferExternal(context.Background(), sender.ID, ExternalBeneficiary{
		BankName:      "First National",
		AccountNumber: "9988776655",
		AccountName:   "Jordan Smith",
	}, decimal.NewFromInt(11), "invoice")
	assert.Equal(t, apperrors.ErrInsufficientBalance, err)

	reloaded, err := f.userRepo.FindByID(context.Background(), sender.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(decimal.NewFromInt(10)))

	txns, err := f.txnRepo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txns)
}
