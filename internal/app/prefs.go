package app

import (
	"context"
	"fmt"
	"strings"

	"triply/internal/domain"
)

const DefaultLanguage = "en"

var supportedLanguages = map[string]bool{"en": true, "id": true}

type PrefsService struct {
	store domain.Store
}

func NewPrefsService(st domain.Store) *PrefsService { return &PrefsService{store: st} }

func (s *PrefsService) Language(ctx context.Context) (string, error) {
	var lang string
	ok, err := s.store.Get(ctx, domain.KeyLang, &lang)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", domain.KeyLang, err)
	}
	if !ok || !supportedLanguages[lang] {
		return DefaultLanguage, nil
	}
	return lang, nil
}

func (s *PrefsService) SetLanguage(ctx context.Context, lang string) (string, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !supportedLanguages[lang] {
		return "", fmt.Errorf("%w: unsupported language %q", domain.ErrValidation, lang)
	}
	if err := s.store.Set(ctx, domain.KeyLang, lang); err != nil {
		return "", fmt.Errorf("save %s: %w", domain.KeyLang, err)
	}
	return lang, nil
}
