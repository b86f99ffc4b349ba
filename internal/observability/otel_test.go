package observability

import "testing"

func TestSampleRatio(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want float64
	}{
		{"default", "", 0.1},
		{"explicit", "0.5", 0.5},
		{"clamp_low", "-1", 0},
		{"clamp_high", "2", 1},
		{"garbage", "lots", 0.1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OTEL_SAMPLER_RATIO", tc.raw)
			if got := sampleRatio(nil); got != tc.want {
				t.Fatalf("sampleRatio=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestTracingEnabled(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"", false}, {"0", false}, {"false", false}, {"nope", false},
		{"1", true}, {"true", true}, {"YES", true}, {"On", true},
	}
	for _, tc := range cases {
		t.Setenv("OTEL_ENABLED", tc.raw)
		if got := tracingEnabled(); got != tc.want {
			t.Fatalf("tracingEnabled with %q = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestOtlpHeaders(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{"empty", "", nil},
		{"single", "authorization=token", map[string]string{"authorization": "token"}},
		{"multiple_padded", " a=1 , b = 2 ", map[string]string{"a": "1", "b": "2"}},
		{"malformed_skipped", "broken,=empty,ok=yes", map[string]string{"ok": "yes"}},
		{"all_malformed", "broken,=,x=", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", tc.raw)
			got := otlpHeaders()
			if len(got) != len(tc.want) {
				t.Fatalf("otlpHeaders=%v, want %v", got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Fatalf("otlpHeaders[%q]=%q, want %q", k, got[k], v)
				}
			}
		})
	}
}
