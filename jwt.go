package main

import (
	"errors"
	"time"

	"terrawatch/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer = "terrawatch"
	tokenTTL    = 15 * time.Minute
)

// exportClaims bind a download to the zone, period and report of a reported
// render.
type exportClaims struct {
	Zone   string                 `json:"zone"`
	From   string                 `json:"from"`
	To     string                 `json:"to"`
	Report *models.AnalysisReport `json:"report"`
	jwt.RegisteredClaims
}

// signExportToken creates an HS256 token valid for tokenTTL after now.
func signExportToken(secret, zone string, period models.Period, report models.AnalysisReport, now time.Time) (string, error) {
	claims := exportClaims{
		Zone:   zone,
		From:   period.From(),
		To:     period.To(),
		Report: &report,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// parseExportToken validates the token and returns its claims.
func parseExportToken(secret, tokenStr string) (*exportClaims, error) {
	claims := &exportClaims{}
	tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Zone == "" {
		return nil, errors.New("no zone")
	}
	if claims.Report == nil {
		return nil, errors.New("no report")
	}
	return claims, nil
}

// period decodes the claim bounds.
func (c *exportClaims) period() (models.Period, error) {
	return models.ParsePeriod(c.From, c.To)
}
