package model

import (
	"errors"
	"math"
	"testing"
)

func TestNewSchemaGeneratesID(t *testing.T) {
	s := NewSchema(0, 0, 0.5, 0.5)
	if s.ID == "" {
		t.Fatal("expected generated id")
	}
	if len(s.ID) != 8 {
		t.Errorf("expected 8-char id, got %q", s.ID)
	}

	other := NewSchema(0, 0, 0.5, 0.5)
	if s.ID == other.ID {
		t.Error("two schemas got the same id")
	}
}

func TestNewSchemaFromPreservesID(t *testing.T) {
	src := Schema{ID: "keep1234", X: 0.1, Y: 0.2, Width: 0.3, Height: 0.4}
	got := NewSchemaFrom(src)
	if got.ID != "keep1234" {
		t.Errorf("expected id preserved, got %q", got.ID)
	}

	got = NewSchemaFrom(Schema{X: 0.1, Y: 0.2, Width: 0.3, Height: 0.4})
	if got.ID == "" {
		t.Error("expected fresh id for empty source id")
	}
}

func TestIsNormal(t *testing.T) {
	if !(Schema{X: 0, Y: 0, Width: 1, Height: 1}).IsNormal() {
		t.Error("full-area schema should be normal")
	}
	if (Schema{X: 0, Y: 0, Width: 1280, Height: 720}).IsNormal() {
		t.Error("pixel schema should not be normal")
	}
	if (Schema{X: -0.1, Y: 0, Width: 0.5, Height: 0.5}).IsNormal() {
		t.Error("negative coordinate should not be normal")
	}
}

func TestContainsEdgeSemantics(t *testing.T) {
	s := Schema{X: 100, Y: 100, Width: 200, Height: 100}

	if !s.Contains(100, 100) {
		t.Error("top-left corner should be inside")
	}
	if s.Contains(300, 150) {
		t.Error("right edge should be outside")
	}
	if s.Contains(200, 200) {
		t.Error("bottom edge should be outside")
	}
	if !s.Contains(299.999, 199.999) {
		t.Error("point just inside bottom-right should be inside")
	}
}

func TestScaledRoundTrip(t *testing.T) {
	ref := Rect{X: 0, Y: 0, Width: 1280, Height: 720}
	s := Schema{ID: "left", X: 0, Y: 0, Width: 0.5, Height: 1}

	scaled, err := s.Scaled(ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scaled.ID != "left" {
		t.Errorf("scale should preserve id, got %q", scaled.ID)
	}
	if scaled.Width != 640 || scaled.Height != 720 {
		t.Errorf("expected 640x720, got %.1fx%.1f", scaled.Width, scaled.Height)
	}

	back, err := scaled.Normalized(ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.ID != "left" {
		t.Errorf("normalize should preserve id, got %q", back.ID)
	}
	if back.X != s.X || back.Y != s.Y || back.Width != s.Width || back.Height != s.Height {
		t.Errorf("round trip changed bounds: %+v vs %+v", back, s)
	}
}

func TestScaledWithOffsetReference(t *testing.T) {
	ref := Rect{X: 100, Y: 50, Width: 1000, Height: 500}
	s := Schema{ID: "z", X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5}

	scaled, err := s.Scaled(ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scaled.X != 600 || scaled.Y != 300 {
		t.Errorf("expected origin (600,300), got (%.1f,%.1f)", scaled.X, scaled.Y)
	}
}

func TestScaledDegenerateReturnsScalingError(t *testing.T) {
	ref := Rect{Width: 100, Height: 100}
	s := Schema{ID: "tiny", X: 0, Y: 0, Width: 0.001, Height: 0.5}

	_, err := s.Scaled(ref)
	if err == nil {
		t.Fatal("expected ScalingError")
	}
	var scaleErr *ScalingError
	if !errors.As(err, &scaleErr) {
		t.Fatalf("expected *ScalingError, got %T", err)
	}
	if scaleErr.ID != "tiny" {
		t.Errorf("error should carry the schema id, got %q", scaleErr.ID)
	}
}

func TestNormalizedRejectsBadReference(t *testing.T) {
	s := Schema{ID: "z", X: 0, Y: 0, Width: 100, Height: 100}

	var normErr *NormalizationError
	if _, err := s.Normalized(Rect{Width: 0, Height: 100}); !errors.As(err, &normErr) {
		t.Errorf("expected NormalizationError for zero-width reference, got %v", err)
	}
	if _, err := s.Normalized(Rect{Width: -10, Height: 100}); !errors.As(err, &normErr) {
		t.Errorf("expected NormalizationError for negative reference, got %v", err)
	}
}

func TestNormalizedRejectsOutOfRangeResult(t *testing.T) {
	// A pixel schema wider than the reference cannot normalize.
	s := Schema{ID: "wide", X: 0, Y: 0, Width: 2000, Height: 500}
	var normErr *NormalizationError
	if _, err := s.Normalized(Rect{Width: 1000, Height: 500}); !errors.As(err, &normErr) {
		t.Errorf("expected NormalizationError, got %v", err)
	}
}

func TestTruncateCutsWithoutRounding(t *testing.T) {
	if got := Truncate(0.12345678999); got != 0.1234567899 {
		t.Errorf("expected 0.1234567899, got %.12f", got)
	}
	if got := Truncate(1.0 / 3.0); got != 0.3333333333 {
		t.Errorf("expected 0.3333333333, got %.12f", got)
	}
}

func TestNormalizedStableUnderRepeatedCycles(t *testing.T) {
	// Repeated scale/normalize must not drift: truncation makes the first
	// normalize canonical.
	ref := Rect{Width: 1366, Height: 768}
	s := Schema{ID: "z", X: 0, Y: 0, Width: 455, Height: 768}

	first, err := s.Normalized(ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	norm := first
	for i := 0; i < 5; i++ {
		scaled, err := norm.Scaled(ref)
		if err != nil {
			t.Fatalf("cycle %d scale: %v", i, err)
		}
		norm, err = scaled.Normalized(ref)
		if err != nil {
			t.Fatalf("cycle %d normalize: %v", i, err)
		}
		if math.Abs(norm.Width-first.Width) > 1e-9 {
			t.Fatalf("cycle %d drifted: %.15f vs %.15f", i, norm.Width, first.Width)
		}
	}
}

func TestArea(t *testing.T) {
	s := Schema{Width: 0.5, Height: 0.25}
	if s.Area() != 0.125 {
		t.Errorf("expected 0.125, got %f", s.Area())
	}
}
