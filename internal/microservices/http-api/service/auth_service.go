package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"perfumism/internal/apperror"
	"perfumism/internal/config"
	"perfumism/internal/microservices/http-api/models"
	"perfumism/internal/microservices/http-api/repository"
	"perfumism/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTypeAccess = "access"

// TokenPair is the result of every successful login or reissue.
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Claims are the authenticated identity carried by an access token.
type Claims struct {
	Email     string
	Authority string
}

type accessClaims struct {
	Authority string `json:"authority"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Reissue(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, email string) error
	IssueTokens(ctx context.Context, member *models.Member) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	memberRepo       repository.MemberRepository
	refreshTokenRepo repository.RefreshTokenRepository
	jwtSecret        []byte
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
	now              func() time.Time
}

func NewAuthService(
	memberRepo repository.MemberRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	cfg *config.Config,
) AuthService {
	return &authService{
		memberRepo:       memberRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtSecret:        []byte(cfg.JWTSecret),
		accessTokenTTL:   cfg.AccessTokenTTL,  // 30 minutes
		refreshTokenTTL:  cfg.RefreshTokenTTL, // 7 days
		now:              time.Now,
	}
}

// Login authenticates a member by email and password and issues both tokens.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	member, err := s.memberRepo.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			// same cost as a real comparison to mitigate timing attacks
			auth.BurnCompare(password)
		}
		return nil, notFoundAs(err, apperror.CodeMemberNotFoundByEmail)
	}

	// OAuth-only members have no password to compare against
	if !member.HasPassword() {
		auth.BurnCompare(password)
		return nil, apperror.New(apperror.CodeMemberWrongPassword)
	}
	if err := auth.VerifyPassword(member.Password, password); err != nil {
		return nil, apperror.New(apperror.CodeMemberWrongPassword)
	}

	return s.IssueTokens(ctx, member)
}

// Reissue rotates the refresh token and mints a new access token.
func (s *authService) Reissue(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperror.New(apperror.CodeRefreshTokenInvalid)
	}

	stored, err := s.refreshTokenRepo.FindByToken(ctx, refreshToken)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodeRefreshTokenInvalid)
	}

	if stored.Expired(s.now()) {
		if err := s.refreshTokenRepo.DeleteByEmail(ctx, stored.Email); err != nil {
			return nil, err
		}
		return nil, apperror.New(apperror.CodeRefreshTokenExpired)
	}

	member, err := s.memberRepo.FindByEmail(ctx, stored.Email)
	if err != nil {
		return nil, notFoundAs(err, apperror.CodeMemberNotFoundByEmail)
	}

	accessToken, err := s.generateAccessToken(member)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	// only one of several concurrent reissues with the same token wins the swap
	next := s.newRefreshToken(member)
	if err := s.refreshTokenRepo.Rotate(ctx, refreshToken, next); err != nil {
		return nil, notFoundAs(err, apperror.CodeRefreshTokenInvalid)
	}

	return s.tokenPair(accessToken, next), nil
}

// Logout deletes the member's refresh token
func (s *authService) Logout(ctx context.Context, email string) error {
	return s.refreshTokenRepo.DeleteByEmail(ctx, email)
}

// IssueTokens mints an access token and stores a fresh refresh token keyed by email.
func (s *authService) IssueTokens(ctx context.Context, member *models.Member) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(member)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := s.newRefreshToken(member)
	if err := s.refreshTokenRepo.Save(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.tokenPair(accessToken, refreshToken), nil
}

func (s *authService) newRefreshToken(member *models.Member) *models.RefreshToken {
	return &models.RefreshToken{
		Email:     member.Email,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.refreshTokenTTL),
	}
}

func (s *authService) tokenPair(accessToken string, refreshToken *models.RefreshToken) *TokenPair {
	return &TokenPair{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken.Token,
		AccessTokenTTL:  s.accessTokenTTL,
		RefreshTokenTTL: s.refreshTokenTTL,
	}
}

func (s *authService) generateAccessToken(member *models.Member) (string, error) {
	now := s.now()
	claims := accessClaims{
		Authority: member.Authority,
		Type:      tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   member.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken verifies signature, expiry and token type.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInvalidToken, err)
	}

	if !token.Valid || claims.Type != tokenTypeAccess || claims.Subject == "" {
		return nil, apperror.Wrap(apperror.CodeInvalidToken, errors.New("not an access token"))
	}

	return &Claims{Email: claims.Subject, Authority: claims.Authority}, nil
}
