package utils

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("VITALPLAN_TEST_STR", "from-env")
	if got := GetEnv("VITALPLAN_TEST_STR", "fallback", nil); got != "from-env" {
		t.Fatalf("GetEnv=%q, want from-env", got)
	}
	if got := GetEnv("VITALPLAN_TEST_MISSING", "fallback", nil); got != "fallback" {
		t.Fatalf("GetEnv=%q, want fallback", got)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	cases := []struct {
		name string
		set  bool
		raw  string
		want int
	}{
		{"missing", false, "", 7},
		{"valid", true, "42", 42},
		{"unparseable", true, "forty-two", 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.set {
				t.Setenv("VITALPLAN_TEST_INT", tc.raw)
			}
			if got := GetEnvAsInt("VITALPLAN_TEST_INT", 7, nil); got != tc.want {
				t.Fatalf("GetEnvAsInt=%d, want %d", got, tc.want)
			}
		})
	}
}
