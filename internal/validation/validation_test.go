package validation

import (
	"strings"
	"testing"
)

func TestNormalizeCredentials(t *testing.T) {
	email, password := NormalizeCredentials("  a@b.c\t", " secret ")
	if email != "a@b.c" || password != "secret" {
		t.Errorf("NormalizeCredentials() = %q, %q", email, password)
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected bool
	}{
		{"user@example.com", true},
		{"u@x", true},
		{"", false},
		{"user", false},
		{"@example.com", false},
		{"user@", false},
		{"a@b@c", false},
		{strings.Repeat("a", 600) + "@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidateEmail(tt.email); got != tt.expected {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.expected)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		valid bool
	}{
		{"https", "https://example.com/path", true},
		{"http", "http://example.com", true},
		{"uppercase scheme", "HTTPS://example.com", true},
		{"empty", "", false},
		{"javascript", "javascript:alert(1)", false},
		{"data", "data:text/html,hi", false},
		{"no host", "https://", false},
		{"relative", "/just/a/path", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateURL(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateURL(%q) = %v (%s), want %v", tt.url, valid, msg, tt.valid)
			}
			if !valid && msg == "" {
				t.Errorf("ValidateURL(%q) returned no message", tt.url)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := EscapeLike(tt.in); got != tt.want {
				t.Errorf("EscapeLike(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestContainsPattern(t *testing.T) {
	if got := ContainsPattern("Go_Docs"); got != `%go\_docs%` {
		t.Errorf("ContainsPattern() = %q", got)
	}
	if got := ContainsPattern(""); got != "%%" {
		t.Errorf("ContainsPattern(\"\") = %q", got)
	}
}
