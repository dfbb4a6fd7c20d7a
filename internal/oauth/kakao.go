package oauth

import (
	"context"
	"net/url"
	"strconv"

	"perfumism/internal/config"
)

type KakaoProvider struct {
	cfg    config.KakaoOAuth
	client *Client
}

func NewKakaoProvider(cfg config.KakaoOAuth, client *Client) *KakaoProvider {
	return &KakaoProvider{cfg: cfg, client: client}
}

func (p *KakaoProvider) Name() string { return "kakao" }

func (p *KakaoProvider) SocialType() string { return "KAKAO" }

// Exchange swaps the code for an access token and reads v2/user/me.
func (p *KakaoProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", p.cfg.ClientID)
	form.Set("redirect_uri", p.cfg.RedirectURL)
	form.Set("code", code)

	token, err := p.client.exchangeCode(ctx, p.cfg.TokenURL, form)
	if err != nil {
		return nil, err
	}

	var me struct {
		ID           int64 `json:"id"`
		KakaoAccount struct {
			Email   string `json:"email"`
			Profile struct {
				Nickname        string `json:"nickname"`
				ProfileImageURL string `json:"profile_image_url"`
			} `json:"profile"`
		} `json:"kakao_account"`
	}
	if err := p.client.getJSON(ctx, p.cfg.UserInfoURL, token.AccessToken, &me); err != nil {
		return nil, err
	}
	if me.KakaoAccount.Email == "" {
		return nil, ErrEmailNotProvided
	}

	return &Profile{
		ProviderUserID: strconv.FormatInt(me.ID, 10),
		Email:          me.KakaoAccount.Email,
		Name:           me.KakaoAccount.Profile.Nickname,
		Picture:        me.KakaoAccount.Profile.ProfileImageURL,
	}, nil
}
