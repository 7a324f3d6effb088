package util

import "testing"

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name string
		in   string
		keep int
		want string
	}{
		{"keeps leading characters", "ya29.a0AfH6SMBx", 5, "ya29.***"},
		{"value shorter than keep", "abc", 8, "***"},
		{"value exactly keep length", "12345678", 8, "***"},
		{"empty value", "", 4, "***"},
		{"zero keep hides everything", "token", 0, "***"},
		{"negative keep hides everything", "token", -2, "***"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MaskSecret(tc.in, tc.keep)
			if got != tc.want {
				t.Errorf("MaskSecret(%q, %d) = %q, want %q", tc.in, tc.keep, got, tc.want)
			}
		})
	}
}
