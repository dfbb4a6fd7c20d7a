package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"perfumism/internal/apperror"
	"perfumism/internal/microservices/http-api/models"
	"perfumism/internal/microservices/http-api/repository"
	"perfumism/internal/oauth"
)

const (
	maxUsernameLength = 20
	maxUsernameTries  = 50
)

type OAuthService interface {
	Login(ctx context.Context, provider, code string) (*TokenPair, error)
}

type oauthService struct {
	memberRepo  repository.MemberRepository
	authService AuthService
	providers   map[string]oauth.Provider
}

func NewOAuthService(memberRepo repository.MemberRepository, authService AuthService, providers ...oauth.Provider) OAuthService {
	byName := make(map[string]oauth.Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &oauthService{
		memberRepo:  memberRepo,
		authService: authService,
		providers:   byName,
	}
}

// Login exchanges the authorization code, upserts the member by email and
// issues session tokens.
func (s *oauthService) Login(ctx context.Context, providerName, code string) (*TokenPair, error) {
	provider, ok := s.providers[providerName]
	if !ok || code == "" {
		return nil, apperror.New(apperror.CodeInvalidInput)
	}

	profile, err := provider.Exchange(ctx, code)
	if err != nil {
		if errors.Is(err, oauth.ErrEmailNotProvided) {
			return nil, apperror.Wrap(apperror.CodeOAuthEmailNotProvided, err)
		}
		return nil, apperror.Wrap(apperror.CodeOAuthProviderFailed, err)
	}

	member, err := s.ensureMember(ctx, provider.SocialType(), profile)
	if err != nil {
		return nil, err
	}

	return s.authService.IssueTokens(ctx, member)
}

func (s *oauthService) ensureMember(ctx context.Context, socialType string, profile *oauth.Profile) (*models.Member, error) {
	member, err := s.memberRepo.FindByEmail(ctx, profile.Email)
	if err == nil {
		return member, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	username, err := s.uniqueUsername(ctx, usernameBase(profile))
	if err != nil {
		return nil, err
	}

	member = &models.Member{
		Email:      profile.Email,
		Username:   username,
		Authority:  models.AuthorityUser,
		SocialType: socialType,
	}
	if profile.Picture != "" {
		picture := profile.Picture
		member.ImageURL = &picture
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, translateMemberConflict(err)
	}
	return member, nil
}

// uniqueUsername appends a numeric suffix until base is free
func (s *oauthService) uniqueUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 1; i <= maxUsernameTries; i++ {
		exists, err := s.memberRepo.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		suffix := fmt.Sprintf("%d", i)
		candidate = truncateRunes(base, maxUsernameLength-len(suffix)) + suffix
	}
	return "", apperror.Wrap(apperror.CodeMemberUsernameDuplicated, fmt.Errorf("no free username for %q", base))
}

// usernameBase prefers the provider display name and falls back to the email local part
func usernameBase(profile *oauth.Profile) string {
	for _, v := range []string{profile.Name, strings.SplitN(profile.Email, "@", 2)[0]} {
		cleaned := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
				return r
			}
			return -1
		}, v)
		if len([]rune(cleaned)) >= 2 {
			return truncateRunes(cleaned, maxUsernameLength)
		}
	}
	return "member"
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
