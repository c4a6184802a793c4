// Package registry owns user record creation, uniqueness enforcement, and
// session identity.
package registry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/chris/onboarding-funnel/pkg/models"
	"github.com/chris/onboarding-funnel/pkg/storage"
)

// Registry implements the account operations over a RegistryStore. Every
// mutating operation returns a models.Result for direct user-facing display;
// the error return is reserved for store faults.
type Registry struct {
	Store storage.RegistryStore
}

// New creates a Registry with a storage dependency.
func New(store storage.RegistryStore) *Registry {
	return &Registry{Store: store}
}

// Register creates a new user record after validating input and enforcing
// username and email uniqueness.
func (r *Registry) Register(ctx context.Context, email, username, password string) (models.Result, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if !strings.Contains(email, "@") {
		return models.Fail("Please enter a valid email!"), nil
	}
	if len(username) < 3 {
		return models.Fail("Username must be at least 3 characters!"), nil
	}
	if len(password) < 4 {
		return models.Fail("Password must be at least 4 characters!"), nil
	}

	existing, err := r.Store.GetUser(ctx, username)
	if err != nil {
		return models.Result{}, err
	}
	if existing != nil {
		return models.Fail("Username already exists!"), nil
	}

	byEmail, err := r.Store.FindUserByEmail(ctx, email)
	if err != nil {
		return models.Result{}, err
	}
	if byEmail != nil {
		return models.Fail("Email already registered!"), nil
	}

	user := &models.UserRecord{
		Username:  username,
		Email:     email,
		Password:  password,
		Activated: false,
		CreatedAt: time.Now(),
	}
	if err := r.Store.PutUser(ctx, user); err != nil {
		return models.Result{}, err
	}

	slog.InfoContext(ctx, "user registered", "username", username)
	return models.Ok("Registration successful! Please login."), nil
}

// Login checks credentials and, on success, points the session at the user.
// A failed login leaves the session untouched.
func (r *Registry) Login(ctx context.Context, username, password string) (models.Result, error) {
	user, err := r.Store.GetUser(ctx, username)
	if err != nil {
		return models.Result{}, err
	}
	if user == nil {
		return models.Fail("Username not found!"), nil
	}
	if user.Password != password {
		return models.Fail("Incorrect password!"), nil
	}

	if err := r.Store.SetCurrentUser(ctx, username); err != nil {
		return models.Result{}, err
	}
	return models.Ok("Login successful!"), nil
}

// Logout clears the session unconditionally.
func (r *Registry) Logout(ctx context.Context) error {
	return r.Store.ClearCurrentUser(ctx)
}

// CurrentUser returns the logged-in username, or "" when no session is active.
func (r *Registry) CurrentUser(ctx context.Context) (string, error) {
	return r.Store.CurrentUser(ctx)
}

// SaveAccountDetails replaces a user's bank details wholesale.
func (r *Registry) SaveAccountDetails(ctx context.Context, username string, details *models.AccountDetails) (models.Result, error) {
	if details == nil || details.AccountNumber == "" || details.IfscCode == "" ||
		details.AccountHolder == "" || details.BankName == "" || details.ContactNumber == "" {
		return models.Fail("Please fill all required fields!"), nil
	}

	user, err := r.Store.GetUser(ctx, username)
	if err != nil {
		return models.Result{}, err
	}
	if user == nil {
		return models.Fail("User not found!"), nil
	}

	user.AccountDetails = details
	if err := r.Store.PutUser(ctx, user); err != nil {
		return models.Result{}, err
	}
	return models.Ok("Account details saved successfully!"), nil
}

// GetAccountDetails retrieves a user's bank details, or nil when none are
// saved or the user does not exist.
func (r *Registry) GetAccountDetails(ctx context.Context, username string) (*models.AccountDetails, error) {
	user, err := r.Store.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return user.AccountDetails, nil
}

// SaveAutodebitDetails replaces a user's autodebit capture wholesale.
// OTPEnabled is coerced to true regardless of input.
func (r *Registry) SaveAutodebitDetails(ctx context.Context, username string, details *models.AutodebitDetails) (models.Result, error) {
	if details == nil || details.CardNumber == "" || details.CardPin == "" ||
		details.CardExpiry == "" || details.CardCvv == "" || details.AccountHolder == "" {
		return models.Fail("Please fill all required fields!"), nil
	}

	user, err := r.Store.GetUser(ctx, username)
	if err != nil {
		return models.Result{}, err
	}
	if user == nil {
		return models.Fail("User not found!"), nil
	}

	details.OTPEnabled = true
	user.AutodebitDetails = details
	if err := r.Store.PutUser(ctx, user); err != nil {
		return models.Result{}, err
	}
	return models.Ok("Autodebit details saved successfully!"), nil
}

// GetAutodebitDetails retrieves a user's autodebit capture, or nil.
func (r *Registry) GetAutodebitDetails(ctx context.Context, username string) (*models.AutodebitDetails, error) {
	user, err := r.Store.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return user.AutodebitDetails, nil
}

// ActivateAccount marks the user activated. It reports false when the user
// does not exist.
func (r *Registry) ActivateAccount(ctx context.Context, username string) (bool, error) {
	user, err := r.Store.GetUser(ctx, username)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	user.Activated = true
	if err := r.Store.PutUser(ctx, user); err != nil {
		return false, err
	}
	slog.InfoContext(ctx, "account activated", "username", username)
	return true, nil
}
