package services

import (
  "testing"
)

func TestEvaluateGateStatus(t *testing.T) {
  cases := []struct {
    name string
    in   GateInput
    want string
  }{
    {"all good", GateInput{Mental: MentalYes, Emotional: EmotionalNothing, Physical: PhysicalGood}, GateOpen},
    {"middling everything", GateInput{Mental: MentalSomewhat, Emotional: EmotionalMinor, Physical: PhysicalOK}, GateOpen},
    {"no clarity with heavy emotion", GateInput{Mental: MentalNo, Emotional: EmotionalSignificant, Physical: PhysicalGood}, GateHardBlock},
    {"low energy with no clarity", GateInput{Mental: MentalNo, Emotional: EmotionalNothing, Physical: PhysicalLow}, GateHardBlock},
    {"no clarity alone", GateInput{Mental: MentalNo, Emotional: EmotionalNothing, Physical: PhysicalGood}, GateSoftBlock},
    {"heavy emotion alone", GateInput{Mental: MentalYes, Emotional: EmotionalSignificant, Physical: PhysicalGood}, GateSoftBlock},
    {"low energy alone", GateInput{Mental: MentalYes, Emotional: EmotionalNothing, Physical: PhysicalLow}, GateSoftBlock},
    {"heavy emotion with low energy", GateInput{Mental: MentalYes, Emotional: EmotionalSignificant, Physical: PhysicalLow}, GateSoftBlock},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      got := EvaluateGate(tc.in)
      if got.GateStatus != tc.want {
        t.Fatalf("EvaluateGate(%+v).GateStatus = %s, want %s", tc.in, got.GateStatus, tc.want)
      }
    })
  }
}

func TestEvaluateGatePracticeSelection(t *testing.T) {
  cases := []struct {
    name string
    in   GateInput
    want string
  }{
    {"significant emotion gets release and reset", GateInput{Mental: MentalNo, Emotional: EmotionalSignificant, Physical: PhysicalGood}, PracticeNameByKey["release_reset"]},
    {"low energy with some clarity gets body activation", GateInput{Mental: MentalSomewhat, Emotional: EmotionalNothing, Physical: PhysicalLow}, PracticeNameByKey["body_activation"]},
    {"no clarity without heavy emotion gets clarity drop", GateInput{Mental: MentalNo, Emotional: EmotionalMinor, Physical: PhysicalGood}, PracticeNameByKey["clarity_drop"]},
    {"no clarity with low energy gets clarity drop", GateInput{Mental: MentalNo, Emotional: EmotionalNothing, Physical: PhysicalLow}, PracticeNameByKey["clarity_drop"]},
  }
  for _, tc := range cases {
    t.Run(tc.name, func(t *testing.T) {
      got := EvaluateGate(tc.in)
      if got.RecommendedPractice != tc.want {
        t.Fatalf("EvaluateGate(%+v).RecommendedPractice = %q, want %q", tc.in, got.RecommendedPractice, tc.want)
      }
    })
  }
}

func TestEvaluateGateOpenRecommendsNothing(t *testing.T) {
  got := EvaluateGate(GateInput{Mental: MentalYes, Emotional: EmotionalMinor, Physical: PhysicalOK})
  if got.RecommendedPractice != "" {
    t.Fatalf("open gate recommended %q, want none", got.RecommendedPractice)
  }
}

func TestGateInputValidate(t *testing.T) {
  valid := GateInput{Mental: MentalSomewhat, Emotional: EmotionalMinor, Physical: PhysicalOK}
  if err := valid.Validate(); err != nil {
    t.Fatalf("valid input rejected: %v", err)
  }

  invalid := []GateInput{
    {Mental: "maybe", Emotional: EmotionalMinor, Physical: PhysicalOK},
    {Mental: MentalYes, Emotional: "fine", Physical: PhysicalOK},
    {Mental: MentalYes, Emotional: EmotionalMinor, Physical: "great"},
    {},
  }
  for _, in := range invalid {
    if err := in.Validate(); err == nil {
      t.Fatalf("expected validation error for %+v", in)
    }
  }
}
