package model

import "github.com/golang-jwt/jwt/v5"

// ServiceClaims identify a trusted caller of the moderation API.
type ServiceClaims struct {
	Service string `json:"service"`
	jwt.RegisteredClaims
}
