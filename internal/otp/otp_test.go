package otp

import "testing"

func TestGenerate_AlwaysSixDigits(t *testing.T) {
	for i := 0; i < 10000; i++ {
		code := Generate()
		if len(code) != Length {
			t.Fatalf("expected %d digits, got %q", Length, code)
		}
		if code[0] == '0' {
			t.Fatalf("expected no leading zero, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected only digits, got %q", code)
			}
		}
	}
}

func TestMatches(t *testing.T) {
	// Arrange
	cases := []struct {
		name      string
		stored    string
		candidate string
		want      bool
	}{
		{"exact match", "123456", "123456", true},
		{"wrong code", "123456", "654321", false},
		{"code embedded in text", "123456", "my code is 123456", false},
		{"empty stored", "", "", false},
		{"empty candidate", "123456", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Act + Assert
			if got := Matches(tc.stored, tc.candidate); got != tc.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tc.stored, tc.candidate, got, tc.want)
			}
		})
	}
}

func TestMatchesUtterance(t *testing.T) {
	// Arrange
	cases := []struct {
		name      string
		stored    string
		utterance string
		want      bool
	}{
		{"code embedded in sentence", "123456", "the code is 123456 thanks", true},
		{"bare matching code", "123456", "123456", true},
		// The spoken path accepts any bare 6-digit number without
		// comparing the value.
		{"bare wrong 6-digit code", "123456", "999999", true},
		{"bare code with surrounding spaces", "123456", "  654321  ", true},
		{"wrong code in sentence", "123456", "the code is 999999", false},
		{"five digits", "123456", "12345", false},
		{"seven digits", "123456", "1234567", false},
		{"no digits", "123456", "i forgot the code", false},
		{"no stored code", "", "123456", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Act + Assert
			if got := MatchesUtterance(tc.stored, tc.utterance); got != tc.want {
				t.Errorf("MatchesUtterance(%q, %q) = %v, want %v", tc.stored, tc.utterance, got, tc.want)
			}
		})
	}
}
