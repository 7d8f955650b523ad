package offers

import (
	"fmt"
	"time"

	"gridspot/internal/shared/apperrors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenManager signs and verifies offer decision tokens. The token is mailed
// to the slot holder with the offer-received notification and authorizes
// exactly one offer's resolution; it expires with the offer itself.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// IssueDecisionToken signs a token binding (offer, holder) until the offer's
// decision deadline
func (tm *TokenManager) IssueDecisionToken(offerID, holderID uuid.UUID, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"type":      "offer_decision",
		"offer_id":  offerID.String(),
		"holder_id": holderID.String(),
		"exp":       expiresAt.Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// ParseDecisionToken verifies a decision token and returns the bound offer
// and holder identifiers
func (tm *TokenManager) ParseDecisionToken(tokenString string) (offerID, holderID uuid.UUID, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid decision token: %w", apperrors.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed decision token: %w", apperrors.ErrUnauthorized)
	}
	if tokenType, ok := claims["type"].(string); !ok || tokenType != "offer_decision" {
		return uuid.Nil, uuid.Nil, fmt.Errorf("wrong token type: %w", apperrors.ErrUnauthorized)
	}

	offerStr, _ := claims["offer_id"].(string)
	holderStr, _ := claims["holder_id"].(string)

	offerID, err = uuid.Parse(offerStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("bad offer id in token: %w", apperrors.ErrUnauthorized)
	}
	holderID, err = uuid.Parse(holderStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("bad holder id in token: %w", apperrors.ErrUnauthorized)
	}

	return offerID, holderID, nil
}
