package models

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors returned by SampleConfig.Validate. Callers that need to
// distinguish cases should use errors.Is.
var (
	ErrNoSlots       = errors.New("config has no slots")
	ErrTooManySlots  = errors.New("config exceeds the slot limit")
	ErrEmptyAdUnit   = errors.New("ad unit path is empty")
	ErrBadAdUnit     = errors.New("ad unit path is malformed")
	ErrNoSizes       = errors.New("slot has no sizes")
	ErrBadSize       = errors.New("slot size dimensions must be positive")
	ErrBadFormat     = errors.New("unknown out-of-page format")
	ErrEmptyTargeting = errors.New("targeting entry has an empty key")
)

// MaxSlots bounds the number of slots a single sample may define. Samples are
// documentation artifacts; anything larger than this is a malformed or
// abusive config.
const MaxSlots = 20

// Validate checks the config for problems that would produce a broken sample.
// It returns the first problem found, wrapped with the offending slot index.
func (c *SampleConfig) Validate() error {
	if len(c.Slots) == 0 {
		return ErrNoSlots
	}
	if len(c.Slots) > MaxSlots {
		return fmt.Errorf("%w: %d slots, limit is %d", ErrTooManySlots, len(c.Slots), MaxSlots)
	}
	for i, slot := range c.Slots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
	}
	return nil
}

// Validate checks a single slot config.
func (s SlotConfig) Validate() error {
	if s.AdUnitPath == "" {
		return ErrEmptyAdUnit
	}
	if !strings.HasPrefix(s.AdUnitPath, "/") || strings.ContainsAny(s.AdUnitPath, " \t\n") {
		return fmt.Errorf("%w: %q", ErrBadAdUnit, s.AdUnitPath)
	}
	if s.OutOfPage() {
		if !s.Format.Valid() {
			return fmt.Errorf("%w: %q", ErrBadFormat, s.Format)
		}
	} else {
		if len(s.Sizes) == 0 {
			return ErrNoSizes
		}
		for _, size := range s.Sizes {
			if size.Width <= 0 || size.Height <= 0 {
				return fmt.Errorf("%w: %s", ErrBadSize, size)
			}
		}
	}
	for _, kv := range s.Targeting {
		if kv.Key == "" {
			return ErrEmptyTargeting
		}
	}
	return nil
}
