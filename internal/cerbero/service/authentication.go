package service

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dvillamarin/cerbero/internal/cerbero/domain"
	"github.com/dvillamarin/cerbero/internal/cerbero/store"
)

// AuthConfig tunes the per-factor matching and lockout behavior.  Zero
// values select the documented defaults.
type AuthConfig struct {
	// MaxRFIDAttempts is the consecutive-failure count at which a
	// credential transitions to BLOCKED.  Default 3.
	MaxRFIDAttempts int

	// PatternThreshold is the minimum similarity score for the pattern
	// factor.  Default 0.9.
	PatternThreshold float64

	// TimingCheck enables the optional inter-gesture timing comparison
	// on the pattern factor.  Off by default.
	TimingCheck bool

	// TimingTolerance is the relative tolerance for each interval pair
	// when TimingCheck is on: ref*(1-tol) <= got <= ref*(1+tol).
	// Default 0.8.
	TimingTolerance float64
}

func (c AuthConfig) withDefaults() AuthConfig {
	if c.MaxRFIDAttempts <= 0 {
		c.MaxRFIDAttempts = 3
	}
	if c.PatternThreshold <= 0 {
		c.PatternThreshold = 0.9
	}
	if c.TimingTolerance <= 0 {
		c.TimingTolerance = 0.8
	}
	return c
}

// AuthenticationService verifies the three factors: RFID ownership and
// validity, the short PIN gesture sequence, and the behavioral pattern.
type AuthenticationService struct {
	credentials store.CredentialStore
	pins        store.PINStore
	patterns    store.PatternStore
	cfg         AuthConfig
}

func NewAuthenticationService(credentials store.CredentialStore, pins store.PINStore, patterns store.PatternStore, cfg AuthConfig) *AuthenticationService {
	return &AuthenticationService{
		credentials: credentials,
		pins:        pins,
		patterns:    patterns,
		cfg:         cfg.withDefaults(),
	}
}

// CheckRFID verifies the presented serial belongs to expectedOwner and
// is still valid.  Counter mutations happen under the store lock and
// persist across attempts: failures accumulate until the credential
// blocks, success resets them.
func (s *AuthenticationService) CheckRFID(ctx context.Context, serial, expectedOwner string, now time.Time) error {
	err := s.credentials.Update(ctx, serial, func(c *domain.Credential) error {
		// Terminal states hard-fail without touching counters.
		switch c.State {
		case domain.CredentialBlocked:
			return domain.Unauthenticatedf("credential blocked")
		case domain.CredentialLost:
			return domain.Unauthenticatedf("credential reported lost")
		case domain.CredentialExpired:
			return domain.Unauthenticatedf("credential expired")
		}

		if c.OwnerID != expectedOwner {
			c.FailCount++
			if c.FailCount >= s.cfg.MaxRFIDAttempts {
				c.State = domain.CredentialBlocked
				return domain.Unauthenticatedf("credential blocked: too many failed attempts")
			}
			return domain.Unauthenticatedf("credential owner mismatch")
		}

		if !c.IsCurrent(now) {
			c.FailCount++
			if now.After(c.ExpiresOn) {
				c.State = domain.CredentialExpired
			}
			if c.FailCount >= s.cfg.MaxRFIDAttempts {
				c.State = domain.CredentialBlocked
				return domain.Unauthenticatedf("credential blocked: too many failed attempts")
			}
			return domain.Unauthenticatedf("credential invalid/expired")
		}

		c.SuccessCount++
		c.FailCount = 0
		t := now
		c.LastUsed = &t
		return nil
	})

	var nf *store.NotFoundError
	if errors.As(err, &nf) {
		return domain.Unauthenticatedf("unregistered credential")
	}
	return err
}

// CheckPIN verifies the captured gesture sequence against the PIN
// enrolled for (owner, area).  Exact position-for-position equality is
// required; mismatches accumulate toward the PIN's own lockout
// threshold.
func (s *AuthenticationService) CheckPIN(ctx context.Context, ownerID, areaID string, captured []int) error {
	err := s.pins.Update(ctx, ownerID, areaID, func(p *domain.PIN) error {
		if p.State == domain.PINBlocked {
			return domain.Unauthenticatedf("PIN blocked")
		}

		if !slices.Equal(captured, p.Gestures) {
			p.FailCount++
			if p.FailCount >= p.MaxAttempts {
				p.State = domain.PINBlocked
				return domain.Unauthenticatedf("PIN blocked: too many failed attempts")
			}
			return domain.Unauthenticatedf("incorrect PIN")
		}

		p.FailCount = 0
		return nil
	})

	var nf *store.NotFoundError
	if errors.As(err, &nf) {
		return domain.Unauthenticatedf("no PIN configured for this area")
	}
	return err
}

// CheckPattern scores the captured sequence against the owner's enrolled
// pattern.  There is no lockout on this factor; repeated failures never
// disable the enrollment.
func (s *AuthenticationService) CheckPattern(ctx context.Context, ownerID string, captured []int, timings []float64) error {
	pattern, err := s.patterns.Get(ctx, ownerID)
	if err != nil {
		var nf *store.NotFoundError
		if errors.As(err, &nf) {
			return domain.Unauthenticatedf("no pattern enrolled for this user")
		}
		return err
	}

	if len(captured) == 0 {
		return domain.Invalidf("captured pattern sequence is empty")
	}

	similarity := pattern.Similarity(captured)
	if similarity < s.cfg.PatternThreshold {
		return domain.Unauthenticatedf("pattern mismatch (similarity=%.2f, threshold=%.2f)",
			similarity, s.cfg.PatternThreshold)
	}

	if s.cfg.TimingCheck && pattern.Intervals != nil && timings != nil &&
		len(pattern.Intervals) == len(timings) {
		tol := s.cfg.TimingTolerance
		for i, ref := range pattern.Intervals {
			if ref <= 0 {
				continue
			}
			got := timings[i]
			if got < ref*(1-tol) || got > ref*(1+tol) {
				return domain.Unauthenticatedf("pattern timing outside tolerance at interval %d", i)
			}
		}
	}
	return nil
}
