package codegen

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/pubtools/gptsampler/internal/models"
)

func TestService_Generate(t *testing.T) {
	svc := NewServiceForTesting(zaptest.NewLogger(t))
	cfg := &models.SampleConfig{
		Slots: []models.SlotConfig{{
			AdUnitPath: "/123/a",
			Sizes:      []models.Size{{Width: 300, Height: 250}},
		}},
	}

	script, err := svc.Generate(cfg, KindScript)
	if err != nil {
		t.Fatalf("generate script: %v", err)
	}
	if !strings.Contains(script, "googletag.cmd.push") {
		t.Errorf("script output missing cmd.push:\n%s", script)
	}
	if strings.Contains(script, "<html>") {
		t.Error("script output should not contain HTML")
	}

	doc, err := svc.Generate(cfg, KindDocument)
	if err != nil {
		t.Fatalf("generate document: %v", err)
	}
	if !strings.Contains(doc, "<!doctype html>") {
		t.Errorf("document output missing doctype:\n%s", doc)
	}
}

func TestService_GenerateRejectsInvalidKind(t *testing.T) {
	svc := NewServiceForTesting(zaptest.NewLogger(t))
	cfg := &models.SampleConfig{
		Slots: []models.SlotConfig{{
			AdUnitPath: "/123/a",
			Sizes:      []models.Size{{Width: 300, Height: 250}},
		}},
	}

	if _, err := svc.Generate(cfg, Kind("yaml")); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestService_GenerateRejectsInvalidConfig(t *testing.T) {
	svc := NewServiceForTesting(zaptest.NewLogger(t))

	_, err := svc.Generate(&models.SampleConfig{}, KindScript)
	if !errors.Is(err, models.ErrNoSlots) {
		t.Fatalf("expected ErrNoSlots, got %v", err)
	}
}
