package encoding

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"reflect"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Errors returned when a token cannot be decoded.
var (
	ErrInvalidFormat    = errors.New("invalid token format")
	ErrSignatureInvalid = errors.New("signature verification failed")
	ErrDecryptFailed    = errors.New("decryption failed")
)

// Encoder turns props bags into tokens and back. Signed tokens are readable
// but tamper-proof; sensitive tokens are encrypted and opaque.
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates a new encoder with the given key.
// The key should be 32 bytes for AES-256.
func NewEncoder(key []byte) (*Encoder, error) {
	// Short keys are stretched to AES-256 size.
	if len(key) < 32 {
		sum := sha256.Sum256(key)
		key = sum[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		key: key,
		gcm: gcm,
	}, nil
}

// Canonical returns the msgpack form of data with map keys sorted, so equal
// bags always produce equal bytes. Values with no serialized form
// (functions, channels) are left out, at any depth.
func Canonical(data map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(Portable(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Digest returns the hex SHA-256 of the canonical form of data.
func Digest(data map[string]any) (string, error) {
	packed, err := Canonical(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(packed)
	return hex.EncodeToString(sum[:]), nil
}

// Portable returns a copy of data without values that cannot be serialized.
func Portable(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		if p, ok := portableValue(v); ok {
			out[k] = p
		}
	}
	return out
}

func portableValue(v any) (any, bool) {
	switch x := v.(type) {
	case nil:
		return nil, true
	case map[string]any:
		return Portable(x), true
	case []any:
		out := make([]any, 0, len(x))
		for _, item := range x {
			if p, ok := portableValue(item); ok {
				out = append(out, p)
			}
		}
		return out, true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return nil, false
	}
	return v, true
}

// Encode serializes data and returns a token.
// If sensitive is true, the data is encrypted; otherwise it's signed.
func (e *Encoder) Encode(data map[string]any, sensitive bool) (string, error) {
	packed, err := Canonical(data)
	if err != nil {
		return "", err
	}

	if sensitive {
		return e.encrypt(packed)
	}
	return e.sign(packed)
}

// Decode deserializes a token produced by Encode.
// If sensitive is true, the data is decrypted; otherwise signature is verified.
// Integers decode as int64 or uint64 and floats as float64.
func (e *Encoder) Decode(token string, sensitive bool) (map[string]any, error) {
	open := e.verify
	if sensitive {
		open = e.decrypt
	}
	packed, err := open(token)
	if err != nil {
		return nil, err
	}

	dec := msgpack.NewDecoder(bytes.NewReader(packed))
	dec.UseLooseInterfaceDecoding(true)
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Join(ErrInvalidFormat, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

const (
	tagSize   = 16 // truncated HMAC-SHA256
	separator = "."
)

var b64 = base64.RawURLEncoding

func (e *Encoder) tag(data []byte) []byte {
	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	return mac.Sum(nil)[:tagSize]
}

// sign produces "payload.tag"; the payload stays readable.
func (e *Encoder) sign(data []byte) (string, error) {
	return b64.EncodeToString(data) + separator + b64.EncodeToString(e.tag(data)), nil
}

func (e *Encoder) verify(token string) ([]byte, error) {
	payload, sig, ok := strings.Cut(token, separator)
	if !ok {
		return nil, ErrInvalidFormat
	}
	data, err := b64.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	got, err := b64.DecodeString(sig)
	if err != nil {
		return nil, ErrInvalidFormat
	}
	if !hmac.Equal(got, e.tag(data)) {
		return nil, ErrSignatureInvalid
	}
	return data, nil
}

// encrypt seals data with AES-256-GCM behind a random nonce.
func (e *Encoder) encrypt(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize(), e.gcm.NonceSize()+len(data)+e.gcm.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	return b64.EncodeToString(e.gcm.Seal(nonce, nonce, data, nil)), nil
}

func (e *Encoder) decrypt(token string) ([]byte, error) {
	raw, err := b64.DecodeString(token)
	if err != nil || len(raw) < e.gcm.NonceSize() {
		return nil, ErrInvalidFormat
	}
	n := e.gcm.NonceSize()
	plain, err := e.gcm.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
