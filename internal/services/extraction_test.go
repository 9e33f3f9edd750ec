package services

import (
  "testing"
)

func TestIceScore(t *testing.T) {
  cases := []struct {
    impact, confidence, ease float64
    want                     float64
  }{
    {10, 10, 10, 100},
    {5, 5, 5, 12.5},
    {1, 1, 1, 0.1},
    {0, 8, 8, 0},
  }
  for _, tc := range cases {
    if got := IceScore(tc.impact, tc.confidence, tc.ease); got != tc.want {
      t.Fatalf("IceScore(%v, %v, %v) = %v, want %v", tc.impact, tc.confidence, tc.ease, got, tc.want)
    }
  }
}

func TestFilterConfidentLoopsBoundary(t *testing.T) {
  loops := []ExtractionLoop{
    {Description: "above", Confidence: 0.9},
    {Description: "at threshold", Confidence: 0.7},
    {Description: "just below", Confidence: 0.69},
    {Description: "zero", Confidence: 0},
  }
  kept := FilterConfidentLoops(loops)
  if len(kept) != 2 {
    t.Fatalf("kept %d loops, want 2", len(kept))
  }
  if kept[0].Description != "above" || kept[1].Description != "at threshold" {
    t.Fatalf("kept wrong loops: %+v", kept)
  }
}

func TestFilterConfidentLoopsEmptyInput(t *testing.T) {
  if kept := FilterConfidentLoops(nil); kept == nil || len(kept) != 0 {
    t.Fatalf("want empty non-nil slice, got %#v", kept)
  }
}

func TestStripCodeFences(t *testing.T) {
  cases := []struct {
    name string
    in   string
    want string
  }{
    {"bare json", `{"a":1}`, `{"a":1}`},
    {"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
    {"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
    {"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      if got := StripCodeFences(tc.in); got != tc.want {
        t.Fatalf("StripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
      }
    })
  }
}

func TestDecodeModelJSON(t *testing.T) {
  var out struct {
    Decision string `json:"decision"`
  }
  if err := DecodeModelJSON("```json\n{\"decision\":\"PAUSE\"}\n```", &out); err != nil {
    t.Fatalf("decode fenced reply: %v", err)
  }
  if out.Decision != "PAUSE" {
    t.Fatalf("decision = %q", out.Decision)
  }
  if err := DecodeModelJSON("not json at all", &out); err == nil {
    t.Fatal("expected decode error")
  }
}

func TestEmptyExtractionShape(t *testing.T) {
  got := EmptyExtraction(EmptyDumpSummary)
  if got.Summary != EmptyDumpSummary {
    t.Fatalf("summary = %q", got.Summary)
  }
  if got.CoherenceLevel != "moderate" {
    t.Fatalf("coherence = %q, want moderate", got.CoherenceLevel)
  }
  if got.Loops == nil || got.VisionUpdates == nil || got.EmotionShifts == nil || got.PatternsReleasing == nil || got.IdentityInsights == nil {
    t.Fatal("empty extraction slices must be non-nil")
  }
}

func TestUnparsedExtraction(t *testing.T) {
  got := UnparsedExtraction()
  if got.Summary != UnparsedExtractionSummary {
    t.Fatalf("summary = %q", got.Summary)
  }
  if got.CoherenceLevel != "light" {
    t.Fatalf("coherence = %q, want light", got.CoherenceLevel)
  }
}
