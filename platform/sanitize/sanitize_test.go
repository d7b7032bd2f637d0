package sanitize

import "testing"

func TestText(t *testing.T) {
	cases := map[string]string{
		"  Follow up next week ":              "Follow up next week",
		"<b>Budget</b> approved":              "Budget approved",
		"<!-- x -->Call <a href='x'>back</a>": "Call back",
		"budget < 50k but > 20k":              "budget < 50k but > 20k",
		"R&amp;D team":                        "R&amp;D team",
		"&lt;script&gt;ok":                    "&lt;script&gt;ok",
		"1 <2":                                "1 <2",
		"":                                    "",
	}
	for in, want := range cases {
		if got := Text(in); got != want {
			t.Fatalf("Text(%q) = %q, want %q", in, got, want)
		}
	}
}
