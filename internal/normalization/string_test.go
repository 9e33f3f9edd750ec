package normalization

import (
  "testing"
)

func TestParseInputString(t *testing.T) {
  cases := []struct {
    in   string
    want string
  }{
    {"  Hello  ", "hello"},
    {"MiXeD", "mixed"},
    {"", ""},
  }
  for _, tc := range cases {
    if got := ParseInputString(tc.in); got != tc.want {
      t.Fatalf("ParseInputString(%q) = %q, want %q", tc.in, got, tc.want)
    }
  }
}

func TestUniqueStrings(t *testing.T) {
  got := UniqueStrings([]string{"a", "b", " b "}, []string{"b", "c", "", "a"})
  want := []string{"a", "b", "c"}
  if len(got) != len(want) {
    t.Fatalf("UniqueStrings = %v, want %v", got, want)
  }
  for i := range want {
    if got[i] != want[i] {
      t.Fatalf("UniqueStrings = %v, want %v", got, want)
    }
  }
}
