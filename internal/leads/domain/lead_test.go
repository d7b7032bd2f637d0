package domain

import "testing"

func TestParseStatusNormalizesCase(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
		ok   bool
	}{
		{"New", StatusNew, true},
		{" CONTACTED ", StatusContacted, true},
		{"qualified", StatusQualified, true},
		{"Converted", StatusConverted, true},
		{"closed", StatusClosed, true},
		{"won", Status("won"), false},
		{"", Status(""), false},
	}

	for _, tc := range cases {
		got, ok := ParseStatus(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseStatus(%q): expected (%q, %v), got (%q, %v)", tc.raw, tc.want, tc.ok, got, ok)
		}
	}
}
