package main

import (
	"testing"

	"sales_portal_backend/internal/leads/domain"
)

func TestNormalizeLead(t *testing.T) {
	cases := []struct {
		name        string
		lead        domain.Lead
		wantStatus  domain.Status
		wantPhone   string
		wantChanged bool
	}{
		{
			name:        "legacy casing",
			lead:        domain.Lead{Status: "Qualified", Phone: "+919876543210"},
			wantStatus:  domain.StatusQualified,
			wantPhone:   "+919876543210",
			wantChanged: true,
		},
		{
			name:        "local phone",
			lead:        domain.Lead{Status: domain.StatusNew, Phone: "098765 43210"},
			wantStatus:  domain.StatusNew,
			wantPhone:   "+919876543210",
			wantChanged: true,
		},
		{
			name:        "already clean",
			lead:        domain.Lead{Status: domain.StatusClosed, Phone: ""},
			wantStatus:  domain.StatusClosed,
			wantPhone:   "",
			wantChanged: false,
		},
		{
			name:        "unknown status kept",
			lead:        domain.Lead{Status: "Archived", Phone: ""},
			wantStatus:  "Archived",
			wantPhone:   "",
			wantChanged: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, phone, changed := normalizeLead(tc.lead, "IN")
			if status != tc.wantStatus || phone != tc.wantPhone || changed != tc.wantChanged {
				t.Fatalf("got (%q, %q, %v), want (%q, %q, %v)", status, phone, changed, tc.wantStatus, tc.wantPhone, tc.wantChanged)
			}
		})
	}
}
