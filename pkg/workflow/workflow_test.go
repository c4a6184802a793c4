package workflow_test

import (
	"context"
	"math/rand"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/onboarding-funnel/pkg/activation"
	"github.com/chris/onboarding-funnel/pkg/anchor"
	"github.com/chris/onboarding-funnel/pkg/feed"
	"github.com/chris/onboarding-funnel/pkg/ledger"
	"github.com/chris/onboarding-funnel/pkg/models"
	"github.com/chris/onboarding-funnel/pkg/registry"
	"github.com/chris/onboarding-funnel/pkg/storage/memory"
	"github.com/chris/onboarding-funnel/pkg/workflow"
)

// fakeClock is a settable clock shared by the machine's components.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	machine *workflow.Machine
	store   *memory.Store
	clock   *fakeClock
}

func newFixture(t *testing.T, mode workflow.ActivationMode) *fixture {
	t.Helper()

	store := memory.New()
	clock := newFakeClock()
	reg := registry.New(store)
	issuer := activation.NewWithSource(store, rand.NewSource(7), clock.Now)
	timer := anchor.NewWithClock(store, anchor.DefaultTotal, clock.Now)
	sim := ledger.NewWithSource(store, &feed.NoOpPublisher{}, ledger.Config{
		CommissionRate: 0.12,
		MinDelay:       time.Hour,
		MaxDelay:       2 * time.Hour,
	}, rand.NewSource(7), clock.Now)

	machine := workflow.New(store, reg, issuer, timer, sim, workflow.Config{Mode: mode, UpgradeFee: 99})
	return &fixture{machine: machine, store: store, clock: clock}
}

// login registers alice and points the session at her.
func (f *fixture) login(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	result, err := f.machine.Registry.Register(ctx, "alice@example.com", "alice", "secret1")
	require.NoError(t, err)
	require.True(t, result.Success)

	result, err = f.machine.Registry.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.True(t, result.Success)
}

func accountDetails() *models.AccountDetails {
	return &models.AccountDetails{
		AccountHolder: "Alice A",
		AccountNumber: "123456789012",
		IfscCode:      "HDFC0001234",
		BankName:      "HDFC",
		ContactNumber: "9876543210",
	}
}

func autodebitDetails() *models.AutodebitDetails {
	return &models.AutodebitDetails{
		AccountHolder: "Alice A",
		CardNumber:    "4111111111111111",
		CardExpiry:    "12/27",
		CardCvv:       "123",
		CardPin:       "4321",
	}
}

func withdrawalDetails() *models.WithdrawalDetails {
	return &models.WithdrawalDetails{
		AccountNumber: "123456789012",
		IfscCode:      "HDFC0001234",
		BankName:      "HDFC",
		ContactNumber: "9876543210",
	}
}

func TestAdvanceNoSession(t *testing.T) {
	f := newFixture(t, workflow.ModeTimedWait)

	_, err := f.machine.Advance(context.Background(), models.StageSetupProfile, workflow.Payload{})
	assert.ErrorIs(t, err, workflow.ErrNoSession)

	_, err = f.machine.Resume(context.Background())
	assert.ErrorIs(t, err, workflow.ErrNoSession)
}

func TestTimedWaitFunnel(t *testing.T) {
	f := newFixture(t, workflow.ModeTimedWait)
	f.login(t)
	ctx := context.Background()

	result, err := f.machine.Advance(ctx, models.StageSetupProfile, workflow.Payload{})
	require.NoError(t, err)
	assert.True(t, result.Success)

	t.Run("Bank Details Skip Autodebit", func(t *testing.T) {
		result, err := f.machine.Advance(ctx, models.StageBankDetails, workflow.Payload{AccountDetails: accountDetails()})
		require.NoError(t, err)
		assert.True(t, result.Success)

		stage, err := f.store.GetStage(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StageActivationPayment, stage)

		// Autodebit is only part of the code-verification variant.
		result, err = f.machine.Advance(ctx, models.StageAutodebit, workflow.Payload{AutodebitDetails: autodebitDetails()})
		require.NoError(t, err)
		assert.False(t, result.Success)
	})

	t.Run("Payment Requires UTR", func(t *testing.T) {
		result, err := f.machine.Advance(ctx, models.StageActivationPayment, workflow.Payload{})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Please enter UTR number!", result.Message)
	})

	t.Run("Payment Activates And Anchors Timer", func(t *testing.T) {
		result, err := f.machine.Advance(ctx, models.StageActivationPayment, workflow.Payload{UTR: "UTR123456"})
		require.NoError(t, err)
		assert.True(t, result.Success)

		user, err := f.store.GetUser(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, user.Activated)

		stage, err := f.store.GetStage(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StageTimedWait, stage)

		active, err := f.machine.Timer.Active(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("Wait Not Elapsed", func(t *testing.T) {
		f.clock.Advance(30 * time.Minute)

		result, err := f.machine.Advance(ctx, models.StageTimedWait, workflow.Payload{})
		require.NoError(t, err)
		assert.False(t, result.Success)

		stage, err := f.store.GetStage(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StageTimedWait, stage)
	})

	t.Run("Wait Elapsed Unlocks Ledger", func(t *testing.T) {
		f.clock.Advance(61 * time.Minute)

		result, err := f.machine.Advance(ctx, models.StageTimedWait, workflow.Payload{})
		require.NoError(t, err)
		assert.True(t, result.Success)

		stage, err := f.store.GetStage(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StageRunningLedger, stage)
		assert.True(t, f.machine.Simulator.Running("alice"))
	})
}

func TestCodeVerificationFunnel(t *testing.T) {
	f := newFixture(t, workflow.ModeCodeVerification)
	f.login(t)
	ctx := context.Background()

	_, err := f.machine.Advance(ctx, models.StageSetupProfile, workflow.Payload{})
	require.NoError(t, err)

	t.Run("Bank Details Lead To Autodebit", func(t *testing.T) {
		result, err := f.machine.Advance(ctx, models.StageBankDetails, workflow.Payload{AccountDetails: accountDetails()})
		require.NoError(t, err)
		assert.True(t, result.Success)

		stage, err := f.store.GetStage(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StageAutodebit, stage)
	})

	t.Run("Autodebit Capture", func(t *testing.T) {
		result, err := f.machine.Advance(ctx, models.StageAutodebit, workflow.Payload{AutodebitDetails: autodebitDetails()})
		require.NoError(t, err)
		assert.True(t, result.Success)

		stage, err := f.store.GetStage(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StageActivationPayment, stage)
	})

	var issued string
	t.Run("Payment Issues Code", func(t *testing.T) {
		result, err := f.machine.Advance(ctx, models.StageActivationPayment, workflow.Payload{UTR: "UTR123456"})
		require.NoError(t, err)
		assert.True(t, result.Success)

		match := regexp.MustCompile(`\d{7}`).FindString(result.Message)
		require.NotEmpty(t, match)
		issued = match

		stage, err := f.store.GetStage(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StageActivationCodeIssued, stage)

		// No timed wait in this variant.
		active, err := f.machine.Timer.Active(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("Wrong Code Rejected", func(t *testing.T) {
		_, err := f.machine.Advance(ctx, models.StageActivationCodeIssued, workflow.Payload{})
		require.NoError(t, err)

		result, err := f.machine.Advance(ctx, models.StageCodeVerification, workflow.Payload{Code: issued + "0"})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Invalid activation code!", result.Message)
	})

	t.Run("Correct Code Activates And Starts Ledger", func(t *testing.T) {
		result, err := f.machine.Advance(ctx, models.StageCodeVerification, workflow.Payload{Code: issued})
		require.NoError(t, err)
		assert.True(t, result.Success)

		user, err := f.store.GetUser(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, user.Activated)

		stage, err := f.store.GetStage(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StageRunningLedger, stage)
		assert.True(t, f.machine.Simulator.Running("alice"))
	})
}

func TestWithdrawalAndUpsell(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) *fixture {
		f := newFixture(t, workflow.ModeTimedWait)
		f.login(t)
		require.NoError(t, f.store.PutStage(ctx, "alice", models.StageRunningLedger))
		_, err := f.machine.Simulator.ApplyTransaction(ctx, "alice", 12000)
		require.NoError(t, err)
		require.NoError(t, f.machine.Simulator.Start(ctx, "alice"))
		return f
	}

	t.Run("Withdraw Request Validates Fields", func(t *testing.T) {
		f := setup(t)

		w := withdrawalDetails()
		w.IfscCode = ""
		result, err := f.machine.Advance(ctx, models.StageWithdrawRequest, workflow.Payload{Withdrawal: w})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Please fill all fields!", result.Message)
		assert.True(t, f.machine.Simulator.Running("alice"))
	})

	t.Run("Withdraw Request Stops Simulator And Upsells", func(t *testing.T) {
		f := setup(t)

		result, err := f.machine.Advance(ctx, models.StageWithdrawRequest, workflow.Payload{Withdrawal: withdrawalDetails()})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "You have exceeded the account volume. Kindly wait 24 hours or upgrade your plan.", result.Message)
		assert.False(t, f.machine.Simulator.Running("alice"))

		stage, err := f.store.GetStage(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StageVolumeLimitUpsell, stage)

		user, err := f.store.GetUser(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, user.WithdrawalDetails)
		assert.Equal(t, "123456789012", user.WithdrawalDetails.AccountNumber)
	})

	t.Run("Upsell Cancel Resumes Ledger", func(t *testing.T) {
		f := setup(t)
		_, err := f.machine.Advance(ctx, models.StageWithdrawRequest, workflow.Payload{Withdrawal: withdrawalDetails()})
		require.NoError(t, err)

		result, err := f.machine.Advance(ctx, models.StageVolumeLimitUpsell, workflow.Payload{Cancel: true})
		require.NoError(t, err)
		assert.True(t, result.Success)

		stage, err := f.store.GetStage(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StageRunningLedger, stage)
		assert.True(t, f.machine.Simulator.Running("alice"))
	})

	t.Run("Upgrade Payment Settles And Resets Balance", func(t *testing.T) {
		f := setup(t)
		_, err := f.machine.Advance(ctx, models.StageWithdrawRequest, workflow.Payload{Withdrawal: withdrawalDetails()})
		require.NoError(t, err)

		result, err := f.machine.Advance(ctx, models.StageVolumeLimitUpsell, workflow.Payload{})
		require.NoError(t, err)
		assert.True(t, result.Success)

		result, err = f.machine.Advance(ctx, models.StageUpgradePayment, workflow.Payload{UTR: "UTR999"})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "Your payment is credited in 24 hours.", result.Message)

		state, err := f.store.GetLedgerState(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, 0.0, state.Balance)
		assert.Equal(t, 0.0, state.Commission)

		result, err = f.machine.Advance(ctx, models.StageWithdrawalSettled, workflow.Payload{})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.True(t, f.machine.Simulator.Running("alice"))
	})

	t.Run("Upgrade Payment Without Pending Upsell Fails", func(t *testing.T) {
		f := setup(t)

		result, err := f.machine.Advance(ctx, models.StageUpgradePayment, workflow.Payload{UTR: "UTR999"})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "No upgrade payment is pending.", result.Message)
	})
}

func TestResume(t *testing.T) {
	ctx := context.Background()

	t.Run("Fresh User Starts At Setup Profile", func(t *testing.T) {
		f := newFixture(t, workflow.ModeTimedWait)
		f.login(t)

		state, err := f.machine.Resume(ctx)
		require.NoError(t, err)
		assert.Equal(t, "alice", state.Username)
		assert.Equal(t, models.StageSetupProfile, state.Stage)
		assert.False(t, state.Activated)
	})

	t.Run("Timed Wait In Progress", func(t *testing.T) {
		f := newFixture(t, workflow.ModeTimedWait)
		f.login(t)
		_, err := f.machine.Advance(ctx, models.StageSetupProfile, workflow.Payload{})
		require.NoError(t, err)
		_, err = f.machine.Advance(ctx, models.StageBankDetails, workflow.Payload{AccountDetails: accountDetails()})
		require.NoError(t, err)
		_, err = f.machine.Advance(ctx, models.StageActivationPayment, workflow.Payload{UTR: "UTR1"})
		require.NoError(t, err)

		f.clock.Advance(10 * time.Minute)

		state, err := f.machine.Resume(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StageTimedWait, state.Stage)
		assert.Equal(t, 80*time.Minute, state.TimerRemaining)
		assert.True(t, state.Activated)
		assert.False(t, state.SimulatorRunning)
	})

	t.Run("Expired Timed Wait Rolls Into Running Ledger", func(t *testing.T) {
		f := newFixture(t, workflow.ModeTimedWait)
		f.login(t)
		_, err := f.machine.Advance(ctx, models.StageSetupProfile, workflow.Payload{})
		require.NoError(t, err)
		_, err = f.machine.Advance(ctx, models.StageBankDetails, workflow.Payload{AccountDetails: accountDetails()})
		require.NoError(t, err)
		_, err = f.machine.Advance(ctx, models.StageActivationPayment, workflow.Payload{UTR: "UTR1"})
		require.NoError(t, err)

		f.clock.Advance(3 * time.Hour)

		state, err := f.machine.Resume(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StageRunningLedger, state.Stage)
		assert.True(t, state.SimulatorRunning)

		stage, err := f.store.GetStage(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StageRunningLedger, stage)
	})

	t.Run("Code Stage Without Code Falls Back To Payment", func(t *testing.T) {
		f := newFixture(t, workflow.ModeCodeVerification)
		f.login(t)
		require.NoError(t, f.store.PutStage(ctx, "alice", models.StageCodeVerification))

		state, err := f.machine.Resume(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StageActivationPayment, state.Stage)
	})

	t.Run("Code Stage With Code Survives", func(t *testing.T) {
		f := newFixture(t, workflow.ModeCodeVerification)
		f.login(t)
		_, err := f.machine.Issuer.Issue(ctx, "alice")
		require.NoError(t, err)
		require.NoError(t, f.store.PutStage(ctx, "alice", models.StageCodeVerification))

		state, err := f.machine.Resume(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StageCodeVerification, state.Stage)
	})

	t.Run("Running Ledger Restarts Simulator", func(t *testing.T) {
		f := newFixture(t, workflow.ModeTimedWait)
		f.login(t)
		require.NoError(t, f.store.PutStage(ctx, "alice", models.StageRunningLedger))
		_, err := f.machine.Simulator.ApplyTransaction(ctx, "alice", 500)
		require.NoError(t, err)

		state, err := f.machine.Resume(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.StageRunningLedger, state.Stage)
		assert.True(t, state.SimulatorRunning)
		assert.Equal(t, 500.0, state.Ledger.Balance)
	})
}

func TestAdvanceUnknownStage(t *testing.T) {
	f := newFixture(t, workflow.ModeTimedWait)
	f.login(t)

	result, err := f.machine.Advance(context.Background(), models.WorkflowStage("NOT_A_STAGE"), workflow.Payload{})
	require.NoError(t, err)
	assert.False(t, result.Success)
}
