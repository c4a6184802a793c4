// Package activation issues and verifies the short numeric one-time codes
// used by the code-verification activation variant.
package activation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/chris/onboarding-funnel/pkg/models"
	"github.com/chris/onboarding-funnel/pkg/storage"
)

// ErrNoCodeIssued is returned when verification runs before any code exists.
var ErrNoCodeIssued = errors.New("no activation code issued")

// ErrCodeMismatch is returned when the candidate does not exactly equal the
// last issued code. Comparison is exact string equality, no normalization.
var ErrCodeMismatch = errors.New("activation code mismatch")

// Issuer generates and verifies per-user activation codes. Codes are 7-digit
// zero-padded numeric strings and are not single-use: the same correct code
// verifies repeatedly until a new one overwrites it.
type Issuer struct {
	Store storage.CodeStore

	rng *rand.Rand
	now func() time.Time
}

// New creates an Issuer with a storage dependency.
func New(store storage.CodeStore) *Issuer {
	return &Issuer{
		Store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

// NewWithSource creates an Issuer with injected randomness and clock, for
// tests.
func NewWithSource(store storage.CodeStore, src rand.Source, now func() time.Time) *Issuer {
	return &Issuer{Store: store, rng: rand.New(src), now: now}
}

// Issue generates a fresh code for the username, persisting it over any
// prior unconsumed code, and returns the code string.
func (i *Issuer) Issue(ctx context.Context, username string) (string, error) {
	code := fmt.Sprintf("%07d", i.rng.Intn(10000000))
	record := &models.ActivationCode{
		Username: username,
		Code:     code,
		IssuedAt: i.now(),
	}
	if err := i.Store.PutActivationCode(ctx, record); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks candidate against the last issued code for the username.
// It returns ErrNoCodeIssued when none is on record and ErrCodeMismatch on an
// unequal compare. The stored code is left in place on success.
func (i *Issuer) Verify(ctx context.Context, username, candidate string) error {
	record, err := i.Store.GetActivationCode(ctx, username)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrNoCodeIssued
	}
	if record.Code != candidate {
		return ErrCodeMismatch
	}
	return nil
}
