package share

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pubtools/gptsampler/internal/models"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cfg := &models.SampleConfig{
		Page: &models.PageConfig{
			SingleRequest: true,
			Privacy:       &models.PrivacyConfig{LimitedAds: true},
		},
		Slots: []models.SlotConfig{
			{
				AdUnitPath: "/6355419/Travel/Europe",
				Sizes: []models.Size{
					{Width: 300, Height: 250},
					{Width: 728, Height: 90},
				},
				Targeting: []models.TargetingKV{
					{Key: "color", Values: []string{"red"}},
					{Key: "interests", Values: []string{"sports", "music"}},
				},
			},
			{AdUnitPath: "/6355419/Travel/Interstitial", Format: models.FormatInterstitial},
		},
	}

	state, err := Encode(cfg)
	require.NoError(t, err)
	assert.NotContains(t, state, "=", "state should be unpadded")
	assert.NotContains(t, state, "+", "state should be URL-safe")
	assert.NotContains(t, state, "/", "state should be URL-safe")

	decoded, err := Decode(state)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestDecodeToleratesPadding(t *testing.T) {
	cfg := &models.SampleConfig{
		Slots: []models.SlotConfig{{
			AdUnitPath: "/123/a",
			Sizes:      []models.Size{{Width: 300, Height: 250}},
		}},
	}
	state, err := Encode(cfg)
	require.NoError(t, err)

	decoded, err := Decode(state + strings.Repeat("=", 2))
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("not!base64url")
	assert.Error(t, err)

	// Valid base64url that is not JSON.
	_, err = Decode("bm90LWpzb24")
	assert.Error(t, err)
}
