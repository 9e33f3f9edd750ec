package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

func TrimInputString(input string) string {
  return strings.TrimSpace(input)
}

// UniqueStrings unions the given lists preserving first-seen order.
func UniqueStrings(lists ...[]string) []string {
  seen := map[string]struct{}{}
  out := []string{}
  for _, list := range lists {
    for _, item := range list {
      trimmed := strings.TrimSpace(item)
      if trimmed == "" {
        continue
      }
      if _, ok := seen[trimmed]; ok {
        continue
      }
      seen[trimmed] = struct{}{}
      out = append(out, trimmed)
    }
  }
  return out
}
