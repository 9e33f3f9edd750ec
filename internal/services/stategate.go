package services

import (
  "context"
  "fmt"

  "github.com/yungbote/coherence-backend/internal/logger"
)

const (
  GateOpen      = "open"
  GateSoftBlock = "soft_block"
  GateHardBlock = "hard_block"
)

const (
  MentalYes      = "yes"
  MentalSomewhat = "somewhat"
  MentalNo       = "no"

  EmotionalNothing     = "nothing"
  EmotionalMinor       = "minor"
  EmotionalSignificant = "significant"

  PhysicalGood = "good"
  PhysicalOK   = "ok"
  PhysicalLow  = "low"
)

type GateInput struct {
  Mental    string `json:"mental"`
  Emotional string `json:"emotional"`
  Physical  string `json:"physical"`
}

func (in GateInput) Validate() error {
  switch in.Mental {
  case MentalYes, MentalSomewhat, MentalNo:
  default:
    return fmt.Errorf("invalid mental clarity %q", in.Mental)
  }
  switch in.Emotional {
  case EmotionalNothing, EmotionalMinor, EmotionalSignificant:
  default:
    return fmt.Errorf("invalid emotional state %q", in.Emotional)
  }
  switch in.Physical {
  case PhysicalGood, PhysicalOK, PhysicalLow:
  default:
    return fmt.Errorf("invalid physical energy %q", in.Physical)
  }
  return nil
}

type GateResult struct {
  GateStatus          string `json:"gate_status"`
  RecommendedPractice string `json:"recommended_practice,omitempty"`
  Reasoning           string `json:"reasoning"`
}

// EvaluateGate applies the gate rules. The rules are authoritative; the
// model is only ever consulted for phrasing.
func EvaluateGate(in GateInput) GateResult {
  status := GateOpen
  switch {
  case in.Mental == MentalNo && in.Emotional == EmotionalSignificant:
    status = GateHardBlock
  case in.Physical == PhysicalLow && in.Mental == MentalNo:
    status = GateHardBlock
  case in.Mental == MentalNo, in.Emotional == EmotionalSignificant, in.Physical == PhysicalLow:
    status = GateSoftBlock
  }

  result := GateResult{GateStatus: status}
  if status == GateOpen {
    return result
  }
  result.RecommendedPractice = PracticeNameByKey[selectPracticeKey(in)]
  return result
}

func selectPracticeKey(in GateInput) string {
  switch {
  case in.Emotional == EmotionalSignificant:
    return "release_reset"
  case in.Physical == PhysicalLow && in.Mental != MentalNo:
    return "body_activation"
  case in.Mental == MentalNo && in.Emotional != EmotionalSignificant:
    return "clarity_drop"
  default:
    return "coherence_breath"
  }
}

type StateGateService interface {
  Evaluate(ctx context.Context, in GateInput) (GateResult, error)
}

type stateGateService struct {
  log *logger.Logger
  ai  AIClient
}

func NewStateGateService(log *logger.Logger, ai AIClient) StateGateService {
  return &stateGateService{
    log: log.With("service", "StateGateService"),
    ai:  ai,
  }
}

type gateModelReply struct {
  GateStatus          string `json:"gate_status"`
  RecommendedPractice string `json:"recommended_practice"`
  Reasoning           string `json:"reasoning"`
}

// Evaluate combines the rule outcome with model-written reasoning. The
// model's gate_status and recommended_practice are discarded in favor of
// the rules; any model failure falls back to canned reasoning.
func (s *stateGateService) Evaluate(ctx context.Context, in GateInput) (GateResult, error) {
  if err := in.Validate(); err != nil {
    return GateResult{}, err
  }

  result := EvaluateGate(in)

  userMessage := fmt.Sprintf("Mental clarity: %s\nEmotional state: %s\nPhysical energy: %s", in.Mental, in.Emotional, in.Physical)
  raw, err := s.ai.Complete(ctx, TierFast, stateGatePrompt, userMessage, 256)
  if err != nil {
    s.log.Warn("State gate model call failed, using rule reasoning", "error", err)
    result.Reasoning = FallbackGateReasoning
    return result, nil
  }

  var reply gateModelReply
  if err := DecodeModelJSON(raw, &reply); err != nil {
    s.log.Warn("State gate model reply unparseable", "error", err)
    result.Reasoning = FallbackGateReasoning
    return result, nil
  }

  result.Reasoning = reply.Reasoning
  if result.Reasoning == "" {
    result.Reasoning = FallbackGateReasoning
  }
  return result, nil
}
