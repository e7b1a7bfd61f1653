package hxbox

import (
	"errors"

	"github.com/pthm/hxbox/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// EncodeProps turns a props bag into a token. The ref and any value without
// a serialized form (event handlers, component children) are left out.
func EncodeProps(enc *Encoder, props Props, sensitive bool) (string, error) {
	return enc.Encode(portableProps(props), sensitive)
}

// DecodeProps reverses EncodeProps.
func DecodeProps(enc *Encoder, token string, sensitive bool) (Props, error) {
	data, err := enc.Decode(token, sensitive)
	if err != nil {
		return nil, wrapEncodingError(err)
	}
	return Props(data), nil
}

// Digest fingerprints the serializable part of a bag. Two bags with the same
// digest render the same attributes.
func Digest(props Props) (string, error) {
	return encoding.Digest(portableProps(props))
}

func portableProps(props Props) map[string]any {
	data := make(map[string]any, len(props))
	for k, v := range props {
		if k == RefKey {
			continue
		}
		data[k] = v
	}
	return data
}

// wrapEncodingError wraps encoding package errors with hxbox sentinel errors.
func wrapEncodingError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, encoding.ErrInvalidFormat) {
		return ErrInvalidFormat
	}
	if errors.Is(err, encoding.ErrSignatureInvalid) || errors.Is(err, encoding.ErrDecryptFailed) {
		return ErrSignatureInvalid
	}
	return err
}
