package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "swiftmint/internal/errors"
	"swiftmint/internal/model"
	"swiftmint/internal/repository"
	"swiftmint/internal/testutil"
)

type adminFixture struct {
	db             *gorm.DB
	service        AdminService
	userRepo       repository.UserRepository
	withdrawalRepo repository.WithdrawalRepository
	cardRepo       repository.CardRepository
}

func newAdminFixture(t *testing.T) (*adminFixture, func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	userRepo := repository.NewUserRepository(db)
	cardRepo := repository.NewCardRepository(db)
	withdrawalRepo := repository.NewWithdrawalRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	userService := NewUserService(userRepo, nil)

	f := &adminFixture{
		db:             db,
		service:        NewAdminService(userRepo, cardRepo, withdrawalRepo, txnRepo, userService),
		userRepo:       userRepo,
		withdrawalRepo: withdrawalRepo,
		cardRepo:       cardRepo,
	}
	return f, func() { testutil.TeardownTestDB(t, db) }
}

func TestParseAdminResource(t *testing.T) {
	for _, valid := range []string{"users", "cards", "withdrawals"} {
		resource, err := ParseAdminResource(valid)
		assert.NoError(t, err)
		assert.EqualValues(t, valid, resource)
	}

	for _, invalid := range []string{"transactions", "currencies", "User", ""} {
		_, err := ParseAdminResource(invalid)
		assert.Equal(t, apperrors.ErrUnknownResource, err, invalid)
	}
}

// A pending deposit never settles on its own; crediting the balance is a
// manual admin edit. The two writes are independent, so the transaction log
// and the balance only agree when the operator makes them agree.
func TestAdminService_EditBalanceSettlesManually(t *testing.T) {
	f, teardown := newAdminFixture(t)
	defer teardown()

	txnRepo := repository.NewTransactionRepository(f.db)
	cardRepo := repository.NewCardRepository(f.db)
	deposits := NewDepositService(f.userRepo, txnRepo, cardRepo)

	user := testutil.CreateUser(t, f.db, "member@example.com", decimal.Zero)

	_, err := deposits.SubmitDeposit(context.Background(), user.ID, decimal.NewFromInt(100), PaymentMethodPayPal, PaymentDetails{
		PayPalEmail: "member@example.com",
	})
	require.NoError(t, err)

	reloaded, err := f.userRepo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Balance.IsZero())

	err = f.service.Edit(context.Background(), ResourceUsers, strconv.Itoa(int(user.ID)), map[string]interface{}{
		"balance": "100",
	})
	require.NoError(t, err)

	reloaded, err = f.userRepo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Balance.Equal(decimal.NewFromInt(100)))

	// The deposit record itself is still pending; the edit touched only the
	// balance column.
	txns, err := txnRepo.FindByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, model.TransactionStatusPending, txns[0].Status)
}

func TestAdminService_EditHashesPassword(t *testing.T) {
	f, teardown := newAdminFixture(t)
	defer teardown()

	user := testutil.CreateUser(t, f.db, "member@example.com", decimal.Zero)

	err := f.service.Edit(context.Background(), ResourceUsers, strconv.Itoa(int(user.ID)), map[string]interface{}{
		"password": "new-password-123",
	})
	require.NoError(t, err)

	reloaded, err := f.userRepo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "new-password-123", reloaded.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.PasswordHash), []byte("new-password-123")))
}

func TestAdminService_EditWithdrawalStatus(t *testing.T) {
	f, teardown := newAdminFixture(t)
	defer teardown()

	user := testutil.CreateUser(t, f.db, "member@example.com", decimal.NewFromInt(500))
	withdrawals := NewWithdrawalService(f.userRepo, f.withdrawalRepo)

	withdrawal, err := withdrawals.SubmitWithdrawal(context.Background(), user.ID, decimal.NewFromInt(100), "TAX123456")
	require.NoError(t, err)

	err = f.service.Edit(context.Background(), ResourceWithdrawals, withdrawal.ID.String(), map[string]interface{}{
		"status": "rejected",
	})
	require.NoError(t, err)

	reloaded, err := f.withdrawalRepo.FindByID(context.Background(), withdrawal.ID)
	require.NoError(t, err)
	assert.Equal(t, model.WithdrawalStatusRejected, reloaded.Status)
}

func TestAdminService_EditErrors(t *testing.T) {
	f, teardown := newAdminFixture(t)
	defer teardown()

	t.Run("unknown resource", func(t *testing.T) {
		err := f.service.Edit(context.Background(), AdminResource("sessions"), "1", map[string]interface{}{"a": "b"})
		assert.Equal(t, apperrors.ErrUnknownResource, err)
	})

	t.Run("missing user", func(t *testing.T) {
		err := f.service.Edit(context.Background(), ResourceUsers, "99999", map[string]interface{}{"balance": "1"})
		assert.Equal(t, apperrors.ErrResourceNotFound, err)
	})

	t.Run("malformed record id", func(t *testing.T) {
		err := f.service.Edit(context.Background(), ResourceCards, "not-a-uuid", map[string]interface{}{"is_active": false})
		assert.Equal(t, apperrors.ErrResourceNotFound, err)
	})

	t.Run("empty update map is a no-op", func(t *testing.T) {
		err := f.service.Edit(context.Background(), ResourceUsers, "99999", map[string]interface{}{})
		assert.NoError(t, err)
	})
}

func TestAdminService_Delete(t *testing.T) {
	f, teardown := newAdminFixture(t)
	defer teardown()

	user := testutil.CreateUser(t, f.db, "member@example.com", decimal.Zero)

	card := &model.Card{UserID: user.ID, CardNumber: "****1111", CardType: "visa", CardExpiry: "01/30", IsActive: true}
	require.NoError(t, f.db.Create(card).Error)

	require.NoError(t, f.service.Delete(context.Background(), ResourceCards, card.ID.String()))
	_, err := f.cardRepo.FindByID(context.Background(), card.ID)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	require.NoError(t, f.service.Delete(context.Background(), ResourceUsers, strconv.Itoa(int(user.ID))))
	_, err = f.userRepo.FindByID(context.Background(), user.ID)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	err = f.service.Delete(context.Background(), AdminResource("sessions"), "1")
	assert.Equal(t, apperrors.ErrUnknownResource, err)
}

func TestAdminService_Listings(t *testing.T) {
	f, teardown := newAdminFixture(t)
	defer teardown()

	userA := testutil.CreateUser(t, f.db, "a@example.com", decimal.NewFromInt(500))
	testutil.CreateUser(t, f.db, "b@example.com", decimal.Zero)

	withdrawals := NewWithdrawalService(f.userRepo, f.withdrawalRepo)
	_, err := withdrawals.SubmitWithdrawal(context.Background(), userA.ID, decimal.NewFromInt(10), "TAX123456")
	require.NoError(t, err)

	users, err := f.service.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	pending, err := f.service.ListWithdrawals(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	cards, err := f.service.ListCards(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cards)

	txns, err := f.service.ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txns)
}
