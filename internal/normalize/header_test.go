package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"USEDBYTES", "USEDBYTES"},
		{"  USEDBYTES  ", "USEDBYTES"},
		{"WP CPU", "WP_CPU"},
		{"Resp. time (ms)", "Resp_time_ms"},
		{"__END__DATE__", "END_DATE"},
		{"A\x00B", "AB"},
		{"\x7fACCOUNT\x1f", "ACCOUNT"},
		{"caf\xc3\xa9", "caf"},
		{"a\tb\nc", "a_b_c"},
		{"VMC_CALL_COUNT", "VMC_CALL_COUNT"},
		{"---", ""},
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Header(tt.raw); got != tt.want {
				t.Errorf("Header(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestHeader_Idempotent(t *testing.T) {
	inputs := []string{
		"USEDBYTES", " End Date ", "a--b__c", "\x00\x01x", "é_é", "___", "WP_CPU (mm:ss)",
		"Temps de réponse", "12 34", "\t\ttab", "a_", "_a",
	}
	for _, in := range inputs {
		once := Header(in)
		twice := Header(once)
		if once != twice {
			t.Errorf("Header not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestHeaders_KeepsPositions(t *testing.T) {
	got := Headers([]string{"ACCOUNT", " account ", "!!", "USED BYTES"})
	want := []string{"ACCOUNT", "account", "", "USED_BYTES"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Headers mismatch (-want +got):\n%s", diff)
	}
}
