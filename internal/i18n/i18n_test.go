package i18n

import (
	"context"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslateFrench(t *testing.T) {
	ctx := initLang(t, "fr")

	if got := T(ctx, "AppTitle"); got != "EduSmart IA" {
		t.Errorf("T(AppTitle) = %q, want 'EduSmart IA'", got)
	}
	if got := T(ctx, "Generate"); got != "Générer le quiz" {
		t.Errorf("T(Generate) = %q", got)
	}
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	if got := T(ctx, "AppTitle"); got != "EduSmart AI" {
		t.Errorf("T(AppTitle) = %q, want 'EduSmart AI'", got)
	}
	if got := T(ctx, "RecentActivity"); got != "Recent activity" {
		t.Errorf("T(RecentActivity) = %q", got)
	}
}

func TestMissingTranslationFallsBackToID(t *testing.T) {
	ctx := initLang(t, "fr")

	if got := T(ctx, "NoSuchKey"); got != "NoSuchKey" {
		t.Errorf("T(NoSuchKey) = %q, want the ID itself", got)
	}
}
