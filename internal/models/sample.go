package models

import (
	"encoding/json"
	"fmt"
)

// SampleConfig is the root configuration for one generated sample. It is
// built by the configurator UI or decoded from a shared URL state and is
// treated as immutable for the duration of a render.
type SampleConfig struct {
	Page  *PageConfig  `json:"page,omitempty"`
	Slots []SlotConfig `json:"slots"`
}

// PageConfig holds page-wide settings that apply to every slot in the sample.
type PageConfig struct {
	// SingleRequest enables GPT single request architecture: ad content for
	// all slots is fetched with one request when the first slot is displayed.
	SingleRequest bool           `json:"sra,omitempty"`
	Privacy       *PrivacyConfig `json:"privacy,omitempty"`
}

// PrivacyConfig mirrors the treatments accepted by
// googletag.pubads().setPrivacySettings(). Field names follow the industry
// short forms used in ad request parameters.
type PrivacyConfig struct {
	LimitedAds             bool `json:"ltd,omitempty"`
	NonPersonalizedAds     bool `json:"npa,omitempty"`
	RestrictDataProcessing bool `json:"rdp,omitempty"`
	ChildDirectedTreatment bool `json:"tfcd,omitempty"`
	UnderAgeOfConsent      bool `json:"tfua,omitempty"`
}

// Empty reports whether no privacy treatment is requested, in which case the
// generated sample omits the setPrivacySettings call entirely.
func (p *PrivacyConfig) Empty() bool {
	if p == nil {
		return true
	}
	return !p.LimitedAds && !p.NonPersonalizedAds && !p.RestrictDataProcessing &&
		!p.ChildDirectedTreatment && !p.UnderAgeOfConsent
}

// SlotConfig describes a single ad slot in the sample. A slot is either a
// static slot with one or more sizes, or an out-of-page slot identified by
// Format (in which case Sizes is ignored; GPT sizes out-of-page formats
// itself).
type SlotConfig struct {
	AdUnitPath string          `json:"adUnit"`
	Sizes      []Size          `json:"size,omitempty"`
	Format     OutOfPageFormat `json:"format,omitempty"`
	Targeting  []TargetingKV   `json:"targeting,omitempty"`
}

// OutOfPage reports whether the slot uses an out-of-page format.
func (s SlotConfig) OutOfPage() bool {
	return s.Format != ""
}

// Size is a creative size in pixels, serialized as a [width, height] pair to
// match the argument shape of googletag.defineSlot.
type Size struct {
	Width  int
	Height int
}

func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Width, s.Height})
}

func (s *Size) UnmarshalJSON(data []byte) error {
	var dims [2]int
	if err := json.Unmarshal(data, &dims); err != nil {
		return fmt.Errorf("size must be a [width,height] pair: %w", err)
	}
	s.Width, s.Height = dims[0], dims[1]
	return nil
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// TargetingKV is a single key-value targeting entry. The JSON form accepts
// "value" as either a string or a list of strings; a single value round-trips
// back to the string form.
type TargetingKV struct {
	Key    string
	Values []string
}

func (t TargetingKV) MarshalJSON() ([]byte, error) {
	out := struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}{Key: t.Key}
	if len(t.Values) == 1 {
		out.Value = t.Values[0]
	} else {
		out.Value = t.Values
	}
	return json.Marshal(out)
}

func (t *TargetingKV) UnmarshalJSON(data []byte) error {
	var raw struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Key = raw.Key
	t.Values = nil
	if len(raw.Value) == 0 || string(raw.Value) == "null" {
		return nil
	}
	var single string
	if err := json.Unmarshal(raw.Value, &single); err == nil {
		t.Values = []string{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw.Value, &list); err != nil {
		return fmt.Errorf("targeting value for %q must be a string or list of strings", raw.Key)
	}
	t.Values = list
	return nil
}

// OutOfPageFormat identifies a GPT out-of-page format. The string values
// match the googletag.enums.OutOfPageFormat member names so that configs are
// readable and the generator can emit the enum reference directly.
type OutOfPageFormat string

const (
	FormatTopAnchor     OutOfPageFormat = "TOP_ANCHOR"
	FormatBottomAnchor  OutOfPageFormat = "BOTTOM_ANCHOR"
	FormatLeftSideRail  OutOfPageFormat = "LEFT_SIDE_RAIL"
	FormatRightSideRail OutOfPageFormat = "RIGHT_SIDE_RAIL"
	FormatInterstitial  OutOfPageFormat = "INTERSTITIAL"
	FormatRewarded      OutOfPageFormat = "REWARDED"
)

// OutOfPageFormats lists all supported formats in display order.
var OutOfPageFormats = []OutOfPageFormat{
	FormatTopAnchor,
	FormatBottomAnchor,
	FormatLeftSideRail,
	FormatRightSideRail,
	FormatInterstitial,
	FormatRewarded,
}

// Valid reports whether the format is a known out-of-page format.
func (f OutOfPageFormat) Valid() bool {
	switch f {
	case FormatTopAnchor, FormatBottomAnchor, FormatLeftSideRail,
		FormatRightSideRail, FormatInterstitial, FormatRewarded:
		return true
	}
	return false
}

// Anchor reports whether the format pins to a viewport edge.
func (f OutOfPageFormat) Anchor() bool {
	return f == FormatTopAnchor || f == FormatBottomAnchor
}

// SideRail reports whether the format occupies a side rail.
func (f OutOfPageFormat) SideRail() bool {
	return f == FormatLeftSideRail || f == FormatRightSideRail
}
