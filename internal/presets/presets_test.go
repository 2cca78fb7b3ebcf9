package presets

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/pubtools/gptsampler/internal/models"
)

const testCatalog = `sizes:
  - name: Medium rectangle
    width: 300
    height: 250
  - name: Leaderboard
    width: 728
    height: 90
    description: Standard top-of-page banner
formats:
  - format: INTERSTITIAL
    label: Interstitial
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	catalog, err := Load(writeCatalog(t, testCatalog))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(catalog.Sizes) != 2 {
		t.Fatalf("expected 2 sizes, got %d", len(catalog.Sizes))
	}
	if catalog.Sizes[0].Name != "Medium rectangle" || catalog.Sizes[0].Width != 300 {
		t.Errorf("unexpected first size: %+v", catalog.Sizes[0])
	}
	if len(catalog.Formats) != 1 || catalog.Formats[0].Format != models.FormatInterstitial {
		t.Errorf("unexpected formats: %+v", catalog.Formats)
	}
}

func TestLoadRejectsBadSize(t *testing.T) {
	path := writeCatalog(t, "sizes:\n  - name: Broken\n    width: -1\n    height: 250\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative width")
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeCatalog(t, "formats:\n  - format: POPUNDER\n    label: Popunder\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewStoreDefaultsWithoutPath(t *testing.T) {
	store, err := NewStore("", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	catalog := store.Catalog()
	if len(catalog.Sizes) == 0 || len(catalog.Formats) != len(models.OutOfPageFormats) {
		t.Errorf("default catalog looks wrong: %d sizes, %d formats",
			len(catalog.Sizes), len(catalog.Formats))
	}
}

func TestStoreReload(t *testing.T) {
	path := writeCatalog(t, testCatalog)
	store, err := NewStore(path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	updated := testCatalog + "  - format: REWARDED\n    label: Rewarded\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}
	if err := store.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := len(store.Catalog().Formats); got != 2 {
		t.Errorf("expected 2 formats after reload, got %d", got)
	}
}

func TestStoreReloadKeepsCatalogOnError(t *testing.T) {
	path := writeCatalog(t, testCatalog)
	store, err := NewStore(path, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := os.WriteFile(path, []byte("sizes: [broken"), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}
	if err := store.Reload(); err == nil {
		t.Fatal("expected reload error for broken YAML")
	}
	if got := len(store.Catalog().Sizes); got != 2 {
		t.Errorf("catalog should be unchanged after failed reload, got %d sizes", got)
	}
}
