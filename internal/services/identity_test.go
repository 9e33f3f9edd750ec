package services

import (
  "testing"
)

func TestEmotionVocabularyFilter(t *testing.T) {
  in := []string{"Gratitude", "  JOY ", "serenity", "peace", "hustle", "abundance"}
  got := filterEmotions(in)
  want := []string{"gratitude", "joy", "peace", "abundance"}
  if len(got) != len(want) {
    t.Fatalf("filterEmotions(%v) = %v, want %v", in, got, want)
  }
  for i := range want {
    if got[i] != want[i] {
      t.Fatalf("filterEmotions(%v) = %v, want %v", in, got, want)
    }
  }
}

func TestInEmotionVocabulary(t *testing.T) {
  for _, emotion := range ElevatedEmotionVocabulary {
    if !inEmotionVocabulary(emotion) {
      t.Fatalf("%q should be in the vocabulary", emotion)
    }
  }
  for _, emotion := range []string{"anger", "serenity", ""} {
    if inEmotionVocabulary(emotion) {
      t.Fatalf("%q should not be in the vocabulary", emotion)
    }
  }
}

func TestStringListRoundTrip(t *testing.T) {
  in := []string{"perfectionism", "people pleasing"}
  encoded := EncodeStringList(in)
  out := DecodeStringList(encoded)
  if len(out) != len(in) {
    t.Fatalf("round trip lost items: %v", out)
  }
  for i := range in {
    if out[i] != in[i] {
      t.Fatalf("round trip = %v, want %v", out, in)
    }
  }
  if got := DecodeStringList(nil); len(got) != 0 {
    t.Fatalf("decode of empty column = %v, want empty", got)
  }
}
