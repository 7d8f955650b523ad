package offers

import (
	"errors"
	"testing"
	"time"

	"gridspot/internal/shared/apperrors"

	"github.com/google/uuid"
)

func TestDecisionTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret")
	offerID := uuid.New()
	holderID := uuid.New()

	token, err := tm.IssueDecisionToken(offerID, holderID, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("IssueDecisionToken: %v", err)
	}

	gotOffer, gotHolder, err := tm.ParseDecisionToken(token)
	if err != nil {
		t.Fatalf("ParseDecisionToken: %v", err)
	}
	if gotOffer != offerID {
		t.Errorf("offer id: got %s, want %s", gotOffer, offerID)
	}
	if gotHolder != holderID {
		t.Errorf("holder id: got %s, want %s", gotHolder, holderID)
	}
}

func TestDecisionTokenExpired(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.IssueDecisionToken(uuid.New(), uuid.New(), time.Now().Add(-time.Minute))
	if err != nil {
		t.Fatalf("IssueDecisionToken: %v", err)
	}

	_, _, err = tm.ParseDecisionToken(token)
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestDecisionTokenWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a")
	verifier := NewTokenManager("secret-b")

	token, err := issuer.IssueDecisionToken(uuid.New(), uuid.New(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("IssueDecisionToken: %v", err)
	}

	_, _, err = verifier.ParseDecisionToken(token)
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}

func TestDecisionTokenGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret")

	_, _, err := tm.ParseDecisionToken("not-a-token")
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}
