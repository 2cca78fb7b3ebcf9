package codegen

import (
	"strings"
	"testing"

	"github.com/pubtools/gptsampler/internal/models"
)

func TestJSString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"it's", `'it\'s'`},
		{`back\slash`, `'back\\slash'`},
		{"line\nbreak", `'line\nbreak'`},
		{"</script>", `'<\/script>'`},
		{"", "''"},
	}
	for _, tt := range tests {
		if got := JSString(tt.in); got != tt.want {
			t.Errorf("JSString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDeclareSlot_SingleSize(t *testing.T) {
	slot := models.SlotConfig{
		AdUnitPath: "/6355419/Travel/Europe",
		Sizes:      []models.Size{{Width: 300, Height: 250}},
	}

	want := `googletag
    .defineSlot('/6355419/Travel/Europe', [300, 250], 'div-gpt-ad-1')
    .addService(googletag.pubads());`

	if got := DeclareSlot(slot, "div-gpt-ad-1"); got != want {
		t.Errorf("DeclareSlot mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDeclareSlot_MultiSizeWithTargeting(t *testing.T) {
	slot := models.SlotConfig{
		AdUnitPath: "/123/news",
		Sizes: []models.Size{
			{Width: 728, Height: 90},
			{Width: 970, Height: 90},
		},
		Targeting: []models.TargetingKV{
			{Key: "color", Values: []string{"red"}},
			{Key: "pos", Values: []string{"atf", "btf"}},
		},
	}

	want := `googletag
    .defineSlot('/123/news', [[728, 90], [970, 90]], 'div-gpt-ad-2')
    .setTargeting('color', 'red')
    .setTargeting('pos', ['atf', 'btf'])
    .addService(googletag.pubads());`

	if got := DeclareSlot(slot, "div-gpt-ad-2"); got != want {
		t.Errorf("DeclareSlot mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDeclareOutOfPageSlot_Interstitial(t *testing.T) {
	slot := models.SlotConfig{
		AdUnitPath: "/6355419/Travel/Interstitial",
		Format:     models.FormatInterstitial,
	}

	want := `const interstitialSlot = googletag.defineOutOfPageSlot(
    '/6355419/Travel/Interstitial', googletag.enums.OutOfPageFormat.INTERSTITIAL);

// defineOutOfPageSlot returns null if the format is not supported
// on this page, so check before using the slot.
if (interstitialSlot) {
  interstitialSlot.addService(googletag.pubads());
  updateStatus('Interstitial is loading; it will display on the next page navigation.');
  googletag.display(interstitialSlot);
} else {
  updateStatus('Interstitial ads are not supported on this page.');
}`

	if got := DeclareOutOfPageSlot(slot, "interstitialSlot"); got != want {
		t.Errorf("DeclareOutOfPageSlot mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDeclareOutOfPageSlot_RewardedWiresOptIn(t *testing.T) {
	slot := models.SlotConfig{
		AdUnitPath: "/6355419/Travel/Rewarded",
		Format:     models.FormatRewarded,
	}

	got := DeclareOutOfPageSlot(slot, "rewardedSlot")
	for _, fragment := range []string{
		"googletag.enums.OutOfPageFormat.REWARDED",
		"addEventListener('rewardedSlotReady'",
		"event.makeRewardedVisible();",
		"googletag.display(rewardedSlot);",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("rewarded block missing %q:\n%s", fragment, got)
		}
	}
}

func TestEnableServices_Default(t *testing.T) {
	want := "// Enable GPT services.\ngoogletag.enableServices();"
	if got := EnableServices(nil); got != want {
		t.Errorf("EnableServices(nil) = %q, want %q", got, want)
	}
}

func TestEnableServices_SRAAndPrivacy(t *testing.T) {
	page := &models.PageConfig{
		SingleRequest: true,
		Privacy: &models.PrivacyConfig{
			LimitedAds:         true,
			NonPersonalizedAds: true,
		},
	}

	want := `// Fetch ad content for all defined slots with a single request.
googletag.pubads().enableSingleRequest();

googletag.pubads().setPrivacySettings({
  limitedAds: true,
  nonPersonalizedAds: true
});

// Enable GPT services.
googletag.enableServices();`

	if got := EnableServices(page); got != want {
		t.Errorf("EnableServices mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestScript_StaticSlot(t *testing.T) {
	cfg := &models.SampleConfig{
		Slots: []models.SlotConfig{{
			AdUnitPath: "/6355419/Travel/Europe",
			Sizes:      []models.Size{{Width: 300, Height: 250}},
		}},
	}

	want := `window.googletag = window.googletag || { cmd: [] };

googletag.cmd.push(() => {
  googletag
      .defineSlot('/6355419/Travel/Europe', [300, 250], 'div-gpt-ad-1')
      .addService(googletag.pubads());

  // Enable GPT services.
  googletag.enableServices();
});`

	if got := Script(cfg); got != want {
		t.Errorf("Script mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestScript_StatusHelperOnlyForOutOfPage(t *testing.T) {
	static := &models.SampleConfig{
		Slots: []models.SlotConfig{{
			AdUnitPath: "/123/a",
			Sizes:      []models.Size{{Width: 300, Height: 250}},
		}},
	}
	if strings.Contains(Script(static), "function updateStatus") {
		t.Error("static-only sample should not define the status helper")
	}

	oop := &models.SampleConfig{
		Slots: []models.SlotConfig{{
			AdUnitPath: "/123/anchor",
			Format:     models.FormatTopAnchor,
		}},
	}
	if !strings.Contains(Script(oop), "function updateStatus") {
		t.Error("out-of-page sample should define the status helper")
	}
}

func TestScript_RepeatedFormatsGetDistinctVarNames(t *testing.T) {
	cfg := &models.SampleConfig{
		Slots: []models.SlotConfig{
			{AdUnitPath: "/123/anchor-top", Format: models.FormatTopAnchor},
			{AdUnitPath: "/123/anchor-bottom", Format: models.FormatBottomAnchor},
		},
	}

	got := Script(cfg)
	if !strings.Contains(got, "const anchorSlot = ") {
		t.Errorf("missing first anchor var:\n%s", got)
	}
	if !strings.Contains(got, "const anchorSlot2 = ") {
		t.Errorf("missing second anchor var:\n%s", got)
	}
}

func TestScript_Deterministic(t *testing.T) {
	cfg := &models.SampleConfig{
		Page: &models.PageConfig{SingleRequest: true},
		Slots: []models.SlotConfig{
			{
				AdUnitPath: "/123/a",
				Sizes:      []models.Size{{Width: 300, Height: 250}},
				Targeting:  []models.TargetingKV{{Key: "pos", Values: []string{"atf"}}},
			},
			{AdUnitPath: "/123/b", Format: models.FormatInterstitial},
		},
	}

	first := Script(cfg)
	for i := 0; i < 5; i++ {
		if got := Script(cfg); got != first {
			t.Fatal("Script output is not deterministic")
		}
	}
}

func TestDisplayDiv_SRACommentOnFirstSlotOnly(t *testing.T) {
	slot := models.SlotConfig{
		AdUnitPath: "/123/a",
		Sizes:      []models.Size{{Width: 300, Height: 250}},
	}

	const sraComment = "first display call fetches ad content"

	first := DisplayDiv(slot, "div-gpt-ad-1", true, true)
	if !strings.Contains(first, sraComment) {
		t.Errorf("first SRA display should carry the comment:\n%s", first)
	}

	second := DisplayDiv(slot, "div-gpt-ad-2", false, true)
	if strings.Contains(second, sraComment) {
		t.Errorf("later displays should not carry the comment:\n%s", second)
	}

	noSRA := DisplayDiv(slot, "div-gpt-ad-1", true, false)
	if strings.Contains(noSRA, sraComment) {
		t.Errorf("non-SRA displays should not carry the comment:\n%s", noSRA)
	}
}

func TestDocument_Assembly(t *testing.T) {
	cfg := &models.SampleConfig{
		Page: &models.PageConfig{SingleRequest: true},
		Slots: []models.SlotConfig{
			{
				AdUnitPath: "/6355419/Travel/Europe",
				Sizes:      []models.Size{{Width: 300, Height: 250}},
			},
			{AdUnitPath: "/6355419/Travel/Interstitial", Format: models.FormatInterstitial},
		},
	}

	got := Document(cfg)
	for _, fragment := range []string{
		`<script async src="` + GPTLibraryURL + `"></script>`,
		`<!-- /6355419/Travel/Europe -->`,
		`<div id="div-gpt-ad-1" style="min-width: 300px; min-height: 250px;">`,
		`googletag.display('div-gpt-ad-1');`,
		`<div id="status">`,
		"googletag.pubads().enableSingleRequest();",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("document missing %q", fragment)
		}
	}

	// The interstitial gets no container div; only the status element and the
	// static slot's container appear in the body.
	if strings.Contains(got, `<div id="div-gpt-ad-2"`) {
		t.Error("out-of-page slot should not render a container div")
	}
}
