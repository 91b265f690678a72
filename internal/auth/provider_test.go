package auth

import (
	"errors"
	"testing"

	"moyu/internal/models"
)

func TestNormalizeGithub(t *testing.T) {
	id, err := Normalize(SignInPayload{
		Provider: models.ProviderGithub,
		Github: &GithubUser{
			ID:        8842,
			Login:     "amo",
			Name:      "阿墨",
			AvatarURL: "https://avatars.githubusercontent.com/u/8842",
			Email:     "amo@example.com",
		},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if id.Provider != models.ProviderGithub || id.ProviderID != "8842" {
		t.Errorf("Unexpected identity key: %s/%s", id.Provider, id.ProviderID)
	}
	if id.Name != "阿墨" || id.Email != "amo@example.com" {
		t.Errorf("Unexpected profile fields: %q %q", id.Name, id.Email)
	}
}

func TestNormalizeGithubLoginFallback(t *testing.T) {
	id, err := Normalize(SignInPayload{
		Provider: models.ProviderGithub,
		Github:   &GithubUser{ID: 1, Login: "amo"},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if id.Name != "amo" {
		t.Errorf("Expected login as display name fallback, got %q", id.Name)
	}
}

func TestNormalizeGithubMissingFields(t *testing.T) {
	var authErr *AuthError
	if _, err := Normalize(SignInPayload{Provider: models.ProviderGithub, Github: &GithubUser{Login: "amo"}}); !errors.As(err, &authErr) {
		t.Errorf("Expected AuthError for missing id, got %v", err)
	}
	if _, err := Normalize(SignInPayload{Provider: models.ProviderGithub, Github: &GithubUser{ID: 1}}); !errors.As(err, &authErr) {
		t.Errorf("Expected AuthError for missing name, got %v", err)
	}
	if _, err := Normalize(SignInPayload{Provider: models.ProviderGithub}); !errors.As(err, &authErr) {
		t.Errorf("Expected AuthError for nil payload, got %v", err)
	}
}

func TestNormalizeQQ(t *testing.T) {
	id, err := Normalize(SignInPayload{
		Provider: models.ProviderQQ,
		QQ: &QQUser{
			OpenID:       "ABCDEF0123456789",
			Nickname:     "小屿",
			FigureURLQQ1: "https://q.qlogo.cn/40",
			FigureURLQQ2: "https://q.qlogo.cn/100",
		},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if id.ProviderID != "ABCDEF0123456789" || id.Name != "小屿" {
		t.Errorf("Unexpected identity: %s %q", id.ProviderID, id.Name)
	}
	if id.Avatar != "https://q.qlogo.cn/100" {
		t.Errorf("Expected 100x100 avatar preferred, got %q", id.Avatar)
	}
}

func TestNormalizeQQAvatarFallback(t *testing.T) {
	id, err := Normalize(SignInPayload{
		Provider: models.ProviderQQ,
		QQ:       &QQUser{OpenID: "x", Nickname: "n", FigureURLQQ1: "https://q.qlogo.cn/40"},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if id.Avatar != "https://q.qlogo.cn/40" {
		t.Errorf("Expected small avatar fallback, got %q", id.Avatar)
	}
}

func TestNormalizeQQMissingFields(t *testing.T) {
	var authErr *AuthError
	if _, err := Normalize(SignInPayload{Provider: models.ProviderQQ, QQ: &QQUser{Nickname: "n"}}); !errors.As(err, &authErr) {
		t.Errorf("Expected AuthError for missing openid, got %v", err)
	}
	if _, err := Normalize(SignInPayload{Provider: models.ProviderQQ, QQ: &QQUser{OpenID: "x"}}); !errors.As(err, &authErr) {
		t.Errorf("Expected AuthError for missing nickname, got %v", err)
	}
}

func TestNormalizeUnknownProvider(t *testing.T) {
	var authErr *AuthError
	if _, err := Normalize(SignInPayload{Provider: "wechat"}); !errors.As(err, &authErr) {
		t.Errorf("Expected AuthError for unknown provider, got %v", err)
	}
}
