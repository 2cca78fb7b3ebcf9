package codegen

import (
	"fmt"
	"strings"

	"github.com/pubtools/gptsampler/internal/models"
)

// GPTLibraryURL is the canonical location of the Google Publisher Tag
// library referenced by every generated sample.
const GPTLibraryURL = "https://securepubads.g.doubleclick.net/tag/js/gpt.js"

// DivID returns the deterministic container element ID for the slot at the
// given position in the config. Out-of-page slots never render a container,
// but IDs are assigned by position so they stay stable as formats change.
func DivID(index int) string {
	return fmt.Sprintf("div-gpt-ad-%d", index+1)
}

// slotVarName returns the JavaScript variable name for an out-of-page slot.
// The ordinal disambiguates repeated formats of the same family.
func slotVarName(format models.OutOfPageFormat, ordinal int) string {
	var base string
	switch {
	case format.Anchor():
		base = "anchorSlot"
	case format.SideRail():
		base = "sideRailSlot"
	case format == models.FormatInterstitial:
		base = "interstitialSlot"
	case format == models.FormatRewarded:
		base = "rewardedSlot"
	default:
		base = "outOfPageSlot"
	}
	if ordinal > 1 {
		return fmt.Sprintf("%s%d", base, ordinal)
	}
	return base
}

// formatLabel is the human-readable family name used in status messages.
func formatLabel(format models.OutOfPageFormat) string {
	switch {
	case format.Anchor():
		return "Anchor"
	case format.SideRail():
		return "Side rail"
	case format == models.FormatInterstitial:
		return "Interstitial"
	case format == models.FormatRewarded:
		return "Rewarded"
	}
	return "Out-of-page"
}

// StatusMessage returns the format-specific status line shown once an
// out-of-page slot has been created.
func StatusMessage(format models.OutOfPageFormat) string {
	switch format {
	case models.FormatTopAnchor:
		return "Anchor ad is pinned to the top of the viewport."
	case models.FormatBottomAnchor:
		return "Anchor ad is pinned to the bottom of the viewport."
	case models.FormatLeftSideRail:
		return "Side rail ad is docked to the left edge of the viewport."
	case models.FormatRightSideRail:
		return "Side rail ad is docked to the right edge of the viewport."
	case models.FormatInterstitial:
		return "Interstitial is loading; it will display on the next page navigation."
	case models.FormatRewarded:
		return "Rewarded ad is ready; it will display once the user opts in."
	}
	return "Out-of-page ad is loading."
}

// UnsupportedMessage returns the status line for a format the current page
// cannot host (defineOutOfPageSlot returned null).
func UnsupportedMessage(format models.OutOfPageFormat) string {
	return fmt.Sprintf("%s ads are not supported on this page.", formatLabel(format))
}

// sizeList renders the size argument of defineSlot: a bare pair for a single
// size, an array of pairs for multi-size slots.
func sizeList(sizes []models.Size) string {
	pairs := make([]string, len(sizes))
	for i, s := range sizes {
		pairs[i] = fmt.Sprintf("[%d, %d]", s.Width, s.Height)
	}
	if len(pairs) == 1 {
		return pairs[0]
	}
	return "[" + strings.Join(pairs, ", ") + "]"
}

// targetingChain renders the chained .setTargeting calls for a static slot
// declaration.
func targetingChain(kvs []models.TargetingKV) string {
	var b strings.Builder
	for _, kv := range kvs {
		fmt.Fprintf(&b, "\n    .setTargeting(%s, %s)", JSString(kv.Key), jsStringList(kv.Values))
	}
	return b.String()
}

// DeclareSlot returns the defineSlot expression for a static slot, including
// targeting and service registration.
func DeclareSlot(slot models.SlotConfig, divID string) string {
	return fmt.Sprintf("googletag\n    .defineSlot(%s, %s, %s)%s\n    .addService(googletag.pubads());",
		JSString(slot.AdUnitPath), sizeList(slot.Sizes), JSString(divID), targetingChain(slot.Targeting))
}

// DeclareOutOfPageSlot returns the defineOutOfPageSlot block for an
// out-of-page slot. The block null-checks the slot (out-of-page formats are
// not available on every device or page layout), registers targeting and
// services, reports status for the format, and displays by slot object.
func DeclareOutOfPageSlot(slot models.SlotConfig, varName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "const %s = googletag.defineOutOfPageSlot(\n    %s, googletag.enums.OutOfPageFormat.%s);\n",
		varName, JSString(slot.AdUnitPath), slot.Format)
	b.WriteString("\n")
	b.WriteString("// defineOutOfPageSlot returns null if the format is not supported\n")
	b.WriteString("// on this page, so check before using the slot.\n")
	fmt.Fprintf(&b, "if (%s) {\n", varName)

	for _, kv := range slot.Targeting {
		fmt.Fprintf(&b, "  %s.setTargeting(%s, %s);\n", varName, JSString(kv.Key), jsStringList(kv.Values))
	}
	fmt.Fprintf(&b, "  %s.addService(googletag.pubads());\n", varName)

	if slot.Format == models.FormatRewarded {
		b.WriteString("\n")
		b.WriteString("  // Rewarded ads render only after the user opts in.\n")
		b.WriteString("  googletag.pubads().addEventListener('rewardedSlotReady', (event) => {\n")
		fmt.Fprintf(&b, "    updateStatus(%s);\n", JSString(StatusMessage(slot.Format)))
		b.WriteString("    event.makeRewardedVisible();\n")
		b.WriteString("  });\n\n")
	} else {
		fmt.Fprintf(&b, "  updateStatus(%s);\n", JSString(StatusMessage(slot.Format)))
	}

	fmt.Fprintf(&b, "  googletag.display(%s);\n", varName)
	b.WriteString("} else {\n")
	fmt.Fprintf(&b, "  updateStatus(%s);\n", JSString(UnsupportedMessage(slot.Format)))
	b.WriteString("}")

	return b.String()
}

// EnableServices returns the page-level configuration block: single request
// architecture, privacy settings, and the final enableServices call.
func EnableServices(page *models.PageConfig) string {
	var b strings.Builder

	if page != nil && page.SingleRequest {
		b.WriteString("// Fetch ad content for all defined slots with a single request.\n")
		b.WriteString("googletag.pubads().enableSingleRequest();\n\n")
	}

	if page != nil && !page.Privacy.Empty() {
		b.WriteString("googletag.pubads().setPrivacySettings({\n")
		var settings []string
		p := page.Privacy
		if p.LimitedAds {
			settings = append(settings, "  limitedAds: true")
		}
		if p.NonPersonalizedAds {
			settings = append(settings, "  nonPersonalizedAds: true")
		}
		if p.RestrictDataProcessing {
			settings = append(settings, "  restrictDataProcessing: true")
		}
		if p.ChildDirectedTreatment {
			settings = append(settings, "  childDirectedTreatment: true")
		}
		if p.UnderAgeOfConsent {
			settings = append(settings, "  underAgeOfConsent: true")
		}
		b.WriteString(strings.Join(settings, ",\n"))
		b.WriteString("\n});\n\n")
	}

	b.WriteString("// Enable GPT services.\n")
	b.WriteString("googletag.enableServices();")
	return b.String()
}

// statusHelper is emitted whenever the sample contains out-of-page slots.
// The element check keeps the script-only variant safe to paste into pages
// without a status element.
const statusHelper = `function updateStatus(message) {
  const status = document.getElementById('status');
  if (status) {
    status.textContent = message;
  }
}`

// hasOutOfPage reports whether any slot in the config is out-of-page.
func hasOutOfPage(cfg *models.SampleConfig) bool {
	for _, slot := range cfg.Slots {
		if slot.OutOfPage() {
			return true
		}
	}
	return false
}

// Script generates the JavaScript-only sample for the config: the googletag
// bootstrap, one cmd.push block declaring every slot, and page-level service
// configuration. The output is a deterministic function of the config.
func Script(cfg *models.SampleConfig) string {
	var b strings.Builder

	b.WriteString("window.googletag = window.googletag || { cmd: [] };\n")

	if hasOutOfPage(cfg) {
		b.WriteString("\n")
		b.WriteString(statusHelper)
		b.WriteString("\n")
	}

	b.WriteString("\ngoogletag.cmd.push(() => {\n")

	oopOrdinals := make(map[string]int)
	var blocks []string
	for i, slot := range cfg.Slots {
		if slot.OutOfPage() {
			base := formatLabel(slot.Format)
			oopOrdinals[base]++
			blocks = append(blocks, DeclareOutOfPageSlot(slot, slotVarName(slot.Format, oopOrdinals[base])))
		} else {
			blocks = append(blocks, DeclareSlot(slot, DivID(i)))
		}
	}
	blocks = append(blocks, EnableServices(cfg.Page))

	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(indent(block, "  "))
		b.WriteString("\n")
	}

	b.WriteString("});")
	return b.String()
}

// DisplayDiv returns the body markup for a static slot: the container div
// and its display call. Under single request architecture the first display
// call fetches content for every slot, which the generated comment calls out.
func DisplayDiv(slot models.SlotConfig, divID string, first, singleRequest bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<!-- %s -->\n", commentText(slot.AdUnitPath))
	fmt.Fprintf(&b, "<div id=%q style=\"min-width: %dpx; min-height: %dpx;\">\n",
		divID, slot.Sizes[0].Width, slot.Sizes[0].Height)
	b.WriteString("  <script>\n")
	b.WriteString("    googletag.cmd.push(() => {\n")
	if first && singleRequest {
		b.WriteString("      // The first display call fetches ad content for every defined slot.\n")
	}
	fmt.Fprintf(&b, "      googletag.display(%s);\n", JSString(divID))
	b.WriteString("    });\n")
	b.WriteString("  </script>\n")
	b.WriteString("</div>")

	return b.String()
}

// Document generates a complete HTML page for the config: gpt.js in the
// head, the define script, and container divs with display calls in the
// body. Out-of-page slots contribute no body markup beyond the shared status
// element.
func Document(cfg *models.SampleConfig) string {
	var b strings.Builder

	singleRequest := cfg.Page != nil && cfg.Page.SingleRequest

	b.WriteString("<!doctype html>\n<html>\n  <head>\n")
	b.WriteString("    <meta charset=\"utf-8\" />\n")
	b.WriteString("    <title>GPT sample</title>\n")
	fmt.Fprintf(&b, "    <script async src=%q></script>\n", GPTLibraryURL)
	b.WriteString("    <script>\n")
	b.WriteString(indent(Script(cfg), "      "))
	b.WriteString("\n    </script>\n")
	b.WriteString("  </head>\n  <body>\n")

	if hasOutOfPage(cfg) {
		b.WriteString("    <div id=\"status\">Loading out-of-page ads...</div>\n")
	}

	firstStatic := true
	for i, slot := range cfg.Slots {
		if slot.OutOfPage() {
			continue
		}
		b.WriteString(indent(DisplayDiv(slot, DivID(i), firstStatic, singleRequest), "    "))
		b.WriteString("\n")
		firstStatic = false
	}

	b.WriteString("  </body>\n</html>\n")
	return b.String()
}
