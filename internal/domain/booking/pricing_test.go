package booking

import "testing"

func TestQuoteNormal(t *testing.T) {
	total, surcharge := Quote(500, UrgencyNormal)
	if total != 500 {
		t.Fatalf("expected total 500, got %v", total)
	}
	if surcharge != 0 {
		t.Fatalf("expected no surcharge, got %v", surcharge)
	}
}

func TestQuoteUrgent(t *testing.T) {
	total, surcharge := Quote(500, UrgencyUrgent)
	if total != 600 {
		t.Fatalf("expected total 600, got %v", total)
	}
	if surcharge != 100 {
		t.Fatalf("expected surcharge 100, got %v", surcharge)
	}
}

func TestQuoteUnknownUrgencyChargesNothing(t *testing.T) {
	total, surcharge := Quote(250, "whenever")
	if total != 250 || surcharge != 0 {
		t.Fatalf("unknown urgency must price as normal, got total=%v surcharge=%v", total, surcharge)
	}
}
