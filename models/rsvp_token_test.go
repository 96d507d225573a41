package models

import "testing"

func TestNewTokenBatch(t *testing.T) {
	b := NewTokenBatch("g1")

	if b.GuestID != "g1" {
		t.Errorf("GuestID = %q", b.GuestID)
	}
	if b.Accept == "" || b.Decline == "" || b.Maybe == "" {
		t.Fatal("batch has an empty token")
	}
	if b.Accept == b.Decline || b.Accept == b.Maybe || b.Decline == b.Maybe {
		t.Error("batch tokens must be distinct")
	}

	toks := b.Tokens()
	if len(toks) != 3 {
		t.Fatalf("Tokens() returned %d entries", len(toks))
	}
	want := map[RSVPStatus]string{
		RSVPAccepted: b.Accept,
		RSVPDeclined: b.Decline,
		RSVPMaybe:    b.Maybe,
	}
	for _, tok := range toks {
		if tok.GuestID != "g1" {
			t.Errorf("token for %s bound to guest %q", tok.Status, tok.GuestID)
		}
		if want[tok.Status] != tok.Token {
			t.Errorf("token for %s = %q, want %q", tok.Status, tok.Token, want[tok.Status])
		}
	}
}

func TestTokenFor(t *testing.T) {
	b := NewTokenBatch("g1")
	if b.TokenFor(RSVPAccepted) != b.Accept || b.TokenFor(RSVPDeclined) != b.Decline || b.TokenFor(RSVPMaybe) != b.Maybe {
		t.Error("TokenFor returned the wrong token")
	}
	if b.TokenFor(RSVPPending) != "" {
		t.Error("pending has no token")
	}
}

func TestParsePeriodFilter(t *testing.T) {
	cases := []struct {
		in   string
		want PeriodFilter
	}{
		{"week", PeriodWeek},
		{"month", PeriodMonth},
		{"year", PeriodYear},
		{"", PeriodMonth},
		{"decade", PeriodMonth},
	}
	for _, c := range cases {
		if got := ParsePeriodFilter(c.in); got != c.want {
			t.Errorf("ParsePeriodFilter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
