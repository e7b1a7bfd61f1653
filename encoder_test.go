package hxbox

import (
	"testing"
)

func TestEncodePropsRoundTrip(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	props := Props{
		"title":   "hi",
		"onClick": func() {},
		RefKey:    &ElementRef{},
	}
	token, err := EncodeProps(enc, props, false)
	if err != nil {
		t.Fatalf("EncodeProps failed: %v", err)
	}

	decoded, err := DecodeProps(enc, token, false)
	if err != nil {
		t.Fatalf("DecodeProps failed: %v", err)
	}
	if decoded["title"] != "hi" {
		t.Errorf("title = %v", decoded["title"])
	}
	if _, ok := decoded["onClick"]; ok {
		t.Error("onClick should not be encoded")
	}
	if _, ok := decoded[RefKey]; ok {
		t.Error("ref should not be encoded")
	}
}

func TestDecodePropsErrors(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))
	other, _ := NewEncoder([]byte("other-key"))

	token, err := EncodeProps(other, Props{"a": "b"}, false)
	if err != nil {
		t.Fatalf("EncodeProps failed: %v", err)
	}

	if _, err := DecodeProps(enc, token, false); err != ErrSignatureInvalid {
		t.Errorf("wrong key err = %v, want ErrSignatureInvalid", err)
	}
	if _, err := DecodeProps(enc, "garbage", false); err != ErrInvalidFormat {
		t.Errorf("garbage err = %v, want ErrInvalidFormat", err)
	}
	if _, err := DecodeProps(enc, "garbage", false); !IsDecodingError(err) {
		t.Error("IsDecodingError should match")
	}
}

func TestDigestIgnoresRef(t *testing.T) {
	a, err := Digest(Props{"a": "1", RefKey: &ElementRef{Tag: "x"}})
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	b, _ := Digest(Props{"a": "1"})
	if a != b {
		t.Error("ref should not affect the digest")
	}
}
