package otp

import (
	"testing"
	"time"
)

func TestVerifyMatchesStoredCode(t *testing.T) {
	s := NewStore(10 * time.Minute)
	s.Put("a@x.com", "123456")

	if !s.Verify("a@x.com", "123456") {
		t.Fatal("expected stored code to verify")
	}
	if s.Verify("a@x.com", "654321") {
		t.Fatal("expected wrong code to fail")
	}
	if s.Verify("b@x.com", "123456") {
		t.Fatal("expected unknown email to fail")
	}
}

func TestVerifyRejectsExpiredCode(t *testing.T) {
	s := NewStore(10 * time.Minute)
	s.Put("a@x.com", "123456")

	s.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

	if s.Verify("a@x.com", "123456") {
		t.Fatal("expected expired code to fail")
	}
}

func TestInvalidateMakesCodeSingleUse(t *testing.T) {
	s := NewStore(10 * time.Minute)
	s.Put("a@x.com", "123456")

	if !s.Verify("a@x.com", "123456") {
		t.Fatal("expected code to verify before invalidation")
	}
	s.Invalidate("a@x.com")
	if s.Verify("a@x.com", "123456") {
		t.Fatal("expected consumed code to fail")
	}
}

func TestPutOverwritesPendingCode(t *testing.T) {
	s := NewStore(10 * time.Minute)
	s.Put("a@x.com", "111111")
	s.Put("a@x.com", "222222")

	if s.Verify("a@x.com", "111111") {
		t.Fatal("expected overwritten code to fail")
	}
	if !s.Verify("a@x.com", "222222") {
		t.Fatal("expected latest code to verify")
	}
}

func TestGenerateCodeIsSixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode returned error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("expected numeric code, got %q", code)
			}
		}
	}
}
