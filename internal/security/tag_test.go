package security

import "testing"

func TestNewTagSigner_EmptySecret(t *testing.T) {
	if _, err := NewTagSigner(""); err != ErrNoSecret {
		t.Errorf("err = %v, want ErrNoSecret", err)
	}
	if _, err := NewTagSigner("   "); err != ErrNoSecret {
		t.Errorf("whitespace secret: err = %v, want ErrNoSecret", err)
	}
}

func TestSign_Deterministic(t *testing.T) {
	signer, err := NewTagSigner("secret-a")
	if err != nil {
		t.Fatalf("NewTagSigner: %v", err)
	}
	tag1 := signer.Sign("aabbccdd", "+1 5551234")
	tag2 := signer.Sign("aabbccdd", "+1 5551234")
	if tag1 != tag2 {
		t.Errorf("Sign not deterministic: %q != %q", tag1, tag2)
	}
	if tag1 == "" {
		t.Error("Sign returned empty tag")
	}
}

func TestVerify_ValidTag(t *testing.T) {
	signer, err := NewTagSigner("secret-a")
	if err != nil {
		t.Fatalf("NewTagSigner: %v", err)
	}
	tag := signer.Sign("aabbccdd", "+1 5551234")
	if !signer.Verify("aabbccdd", "+1 5551234", tag) {
		t.Error("Verify should accept the tag it signed")
	}
}

func TestVerify_RejectsTamperedSubject(t *testing.T) {
	signer, err := NewTagSigner("secret-a")
	if err != nil {
		t.Fatalf("NewTagSigner: %v", err)
	}
	tag := signer.Sign("aabbccdd", "+1 5551234")
	if signer.Verify("aabbccdd", "+1 5559999", tag) {
		t.Error("Verify should reject a tag computed for a different subject")
	}
}

func TestVerify_RejectsTamperedToken(t *testing.T) {
	signer, err := NewTagSigner("secret-a")
	if err != nil {
		t.Fatalf("NewTagSigner: %v", err)
	}
	tag := signer.Sign("aabbccdd", "+1 5551234")
	if signer.Verify("eeffeeff", "+1 5551234", tag) {
		t.Error("Verify should reject a tag bound to a different token")
	}
}

func TestVerify_RejectsDifferentSecret(t *testing.T) {
	signerA, err := NewTagSigner("secret-a")
	if err != nil {
		t.Fatalf("NewTagSigner: %v", err)
	}
	signerB, err := NewTagSigner("secret-b")
	if err != nil {
		t.Fatalf("NewTagSigner: %v", err)
	}
	tag := signerA.Sign("aabbccdd", "+1 5551234")
	if signerB.Verify("aabbccdd", "+1 5551234", tag) {
		t.Error("Verify should reject a tag signed under a different secret")
	}
}

func TestVerify_RejectsEmptyTag(t *testing.T) {
	signer, err := NewTagSigner("secret-a")
	if err != nil {
		t.Fatalf("NewTagSigner: %v", err)
	}
	if signer.Verify("aabbccdd", "+1 5551234", "") {
		t.Error("Verify should reject an empty tag")
	}
}
