package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retailpos/backend/internal/domain/notification"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories for Reminder Service
// =============================================================================

// MockInstallmentRepository is a mock implementation of trade.InstallmentRepository
type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Installment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) FindBySource(ctx context.Context, sourceType trade.InstallmentSourceType, sourceID uuid.UUID) ([]trade.Installment, error) {
	args := m.Called(ctx, sourceType, sourceID)
	return args.Get(0).([]trade.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) FindAll(ctx context.Context, filter trade.InstallmentFilter) ([]trade.Installment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) Save(ctx context.Context, installment *trade.Installment) error {
	args := m.Called(ctx, installment)
	return args.Error(0)
}

func (m *MockInstallmentRepository) SaveWithLock(ctx context.Context, installment *trade.Installment) error {
	args := m.Called(ctx, installment)
	return args.Error(0)
}

func (m *MockInstallmentRepository) Count(ctx context.Context, filter trade.InstallmentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInstallmentRepository) SystemFindDueBetween(ctx context.Context, from, to time.Time) ([]trade.Installment, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]trade.Installment), args.Error(1)
}

// MockNotificationRepository is a mock implementation of notification.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByInstallmentAndDate(ctx context.Context, installmentID uuid.UUID, notifyDate time.Time) (*notification.Notification, error) {
	args := m.Called(ctx, installmentID, notifyDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindAll(ctx context.Context, filter notification.NotificationFilter) ([]notification.Notification, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// MockSender is a mock implementation of notification.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// =============================================================================
// Test Helper Functions
// =============================================================================

var today = time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

func createDueInstallment(t *testing.T, dueDate time.Time) *trade.Installment {
	t.Helper()
	inst, err := trade.NewInstallment(
		uuid.New(), "INST-001", trade.InstallmentSourceSale, uuid.New(),
		valueobject.NewMoneyBDT(decimal.NewFromInt(500)), dueDate)
	assert.NoError(t, err)
	return inst
}

func newReminderServiceForTest() (*ReminderService, *MockInstallmentRepository, *MockNotificationRepository, *MockSender) {
	installmentRepo := new(MockInstallmentRepository)
	notificationRepo := new(MockNotificationRepository)
	sender := new(MockSender)
	svc := NewReminderService(installmentRepo, notificationRepo, sender)
	return svc, installmentRepo, notificationRepo, sender
}

// =============================================================================
// Tests
// =============================================================================

func TestReminderService_SendDueReminders_SendsForUpcomingInstallments(t *testing.T) {
	svc, installmentRepo, notificationRepo, sender := newReminderServiceForTest()

	dueToday := createDueInstallment(t, today)
	dueInTwoDays := createDueInstallment(t, today.AddDate(0, 0, 2))

	installmentRepo.On("SystemFindDueBetween", mock.Anything, today, today.AddDate(0, 0, 2)).
		Return([]trade.Installment{*dueToday, *dueInTwoDays}, nil)
	notificationRepo.On("FindByInstallmentAndDate", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)
	sender.On("Send", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)
	notificationRepo.On("Save", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)

	result, err := svc.SendDueReminders(context.Background(), today)

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Candidates)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 0, result.Failed)
	notificationRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.InstallmentID == dueToday.ID && n.NotifyDate.Equal(today)
	}))
}

func TestReminderService_SendDueReminders_KeysReminderOnDueDate(t *testing.T) {
	svc, installmentRepo, notificationRepo, sender := newReminderServiceForTest()

	dueDate := today.AddDate(0, 0, 2)
	inst := createDueInstallment(t, dueDate)

	installmentRepo.On("SystemFindDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]trade.Installment{*inst}, nil)
	notificationRepo.On("FindByInstallmentAndDate", mock.Anything, inst.ID, dueDate).Return(nil, nil)
	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)
	sender.On("Send", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)
	notificationRepo.On("Save", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)

	result, err := svc.SendDueReminders(context.Background(), today)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	// The dedup lookup and the stored row both use the due date, never the
	// run date; otherwise the same installment would be reminded on each of
	// the three days it sits inside the window.
	notificationRepo.AssertCalled(t, "FindByInstallmentAndDate", mock.Anything, inst.ID, dueDate)
	notificationRepo.AssertNotCalled(t, "FindByInstallmentAndDate", mock.Anything, inst.ID, today)
	notificationRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.InstallmentID == inst.ID && n.NotifyDate.Equal(dueDate)
	}))
}

func TestReminderService_SendDueReminders_RemindsOncePerDueDate(t *testing.T) {
	svc, installmentRepo, notificationRepo, sender := newReminderServiceForTest()

	dueDate := today.AddDate(0, 0, 1)
	inst := createDueInstallment(t, dueDate)
	existing, err := notification.NewInstallmentDueNotification(inst)
	assert.NoError(t, err)

	installmentRepo.On("SystemFindDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]trade.Installment{*inst}, nil)
	notificationRepo.On("FindByInstallmentAndDate", mock.Anything, inst.ID, dueDate).Return(existing, nil)

	// Yesterday's run already reminded this due date; today's run must skip.
	result, err := svc.SendDueReminders(context.Background(), today)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Sent)
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestReminderService_SendDueReminders_SkipsPaidInstallments(t *testing.T) {
	svc, installmentRepo, notificationRepo, _ := newReminderServiceForTest()

	inst := createDueInstallment(t, today)
	assert.NoError(t, inst.ApplyPayment(valueobject.NewMoneyBDT(decimal.NewFromInt(500))))

	installmentRepo.On("SystemFindDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]trade.Installment{*inst}, nil)

	result, err := svc.SendDueReminders(context.Background(), today)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	notificationRepo.AssertNotCalled(t, "FindByInstallmentAndDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService_SendDueReminders_DuplicateCreateNotAnError(t *testing.T) {
	svc, installmentRepo, notificationRepo, sender := newReminderServiceForTest()

	inst := createDueInstallment(t, today)

	installmentRepo.On("SystemFindDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]trade.Installment{*inst}, nil)
	notificationRepo.On("FindByInstallmentAndDate", mock.Anything, inst.ID, today).Return(nil, nil)
	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*notification.Notification")).
		Return(shared.ErrAlreadyExists)

	result, err := svc.SendDueReminders(context.Background(), today)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestReminderService_SendDueReminders_DeliveryFailureRecorded(t *testing.T) {
	svc, installmentRepo, notificationRepo, sender := newReminderServiceForTest()

	failing := createDueInstallment(t, today)
	working := createDueInstallment(t, today.AddDate(0, 0, 1))

	installmentRepo.On("SystemFindDueBetween", mock.Anything, mock.Anything, mock.Anything).
		Return([]trade.Installment{*failing, *working}, nil)
	notificationRepo.On("FindByInstallmentAndDate", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.InstallmentID == failing.ID
	})).Return(errors.New("gateway timeout"))
	sender.On("Send", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.InstallmentID == working.ID
	})).Return(nil)
	notificationRepo.On("Save", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)

	result, err := svc.SendDueReminders(context.Background(), today)

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Sent)
	notificationRepo.AssertCalled(t, "Save", mock.Anything, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.InstallmentID == failing.ID && n.Status == notification.NotificationStatusFailed
	}))
}

func TestReminderService_SendDueReminders_MessageNamesSourceAndAmount(t *testing.T) {
	inst := createDueInstallment(t, today)

	msg := notification.FormatDueMessage(inst)

	assert.Contains(t, msg, "500.00")
	assert.Contains(t, msg, "sale")
	assert.Contains(t, msg, inst.SourceID.String())
	assert.Contains(t, msg, "2026-08-30")
}
