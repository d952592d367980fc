package usecase

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateInvoiceNumberFormat(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	pattern := regexp.MustCompile(`^INV-20260310-[0-9A-F]{8}$`)
	for i := 0; i < 10; i++ {
		got := generateInvoiceNumber(now)
		if !pattern.MatchString(got) {
			t.Fatalf("generateInvoiceNumber() = %q, want match for %s", got, pattern)
		}
	}
}

func TestGenerateInvoiceNumberVaries(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[generateInvoiceNumber(now)] = true
	}

	// 100 draws from a 32-bit space colliding down to a handful would
	// indicate a broken random source
	if len(seen) < 95 {
		t.Errorf("generated only %d distinct invoice numbers out of 100", len(seen))
	}
}
