package oauth

import (
	"context"
	"net/url"

	"perfumism/internal/config"
)

type GoogleProvider struct {
	cfg    config.GoogleOAuth
	client *Client
}

func NewGoogleProvider(cfg config.GoogleOAuth, client *Client) *GoogleProvider {
	return &GoogleProvider{cfg: cfg, client: client}
}

func (p *GoogleProvider) Name() string { return "google" }

func (p *GoogleProvider) SocialType() string { return "GOOGLE" }

// Exchange swaps the code for tokens and reads the profile from tokeninfo.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", p.cfg.ClientID)
	form.Set("client_secret", p.cfg.ClientSecret)
	form.Set("redirect_uri", p.cfg.RedirectURL)
	form.Set("code", code)

	token, err := p.client.exchangeCode(ctx, p.cfg.TokenURL, form)
	if err != nil {
		return nil, err
	}

	infoURL, err := url.Parse(p.cfg.UserInfoURL)
	if err != nil {
		return nil, err
	}
	q := infoURL.Query()
	q.Set("id_token", token.IDToken)
	infoURL.RawQuery = q.Encode()

	var info struct {
		Sub     string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := p.client.getJSON(ctx, infoURL.String(), token.AccessToken, &info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, ErrEmailNotProvided
	}

	return &Profile{
		ProviderUserID: info.Sub,
		Email:          info.Email,
		Name:           info.Name,
		Picture:        info.Picture,
	}, nil
}
