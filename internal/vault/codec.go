package vault

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/dkrylov/go-data-vault/models"
)

// Codec serializes values into the plaintext that gets encrypted under the
// entry key. The chosen content type is recorded in envelope metadata so the
// reader can pick the matching codec without out-of-band schema knowledge.
type Codec interface {
	ContentType() string
	Marshal(value any) ([]byte, error)
	Unmarshal(data []byte, target any) error
}

func codecFor(contentType string) (Codec, error) {
	switch contentType {
	case models.ContentTypeJSON, "":
		return jsonCodec{}, nil
	case models.ContentTypeCBOR:
		return cborCodec{}, nil
	case models.ContentTypeBytes:
		return rawCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}
}

// defaultContentType picks the codec for a value when the caller did not ask
// for one: raw bytes stay raw, everything else is JSON.
func defaultContentType(value any) string {
	switch value.(type) {
	case []byte, models.EncryptedBlob:
		return models.ContentTypeBytes
	default:
		return models.ContentTypeJSON
	}
}

type jsonCodec struct{}

func (jsonCodec) ContentType() string { return models.ContentTypeJSON }

func (jsonCodec) Marshal(value any) ([]byte, error) { return json.Marshal(value) }

func (jsonCodec) Unmarshal(data []byte, target any) error { return json.Unmarshal(data, target) }

type cborCodec struct{}

func (cborCodec) ContentType() string { return models.ContentTypeCBOR }

func (cborCodec) Marshal(value any) ([]byte, error) { return cbor.Marshal(value) }

func (cborCodec) Unmarshal(data []byte, target any) error { return cbor.Unmarshal(data, target) }

// rawCodec passes byte slices through untouched.
type rawCodec struct{}

func (rawCodec) ContentType() string { return models.ContentTypeBytes }

func (rawCodec) Marshal(value any) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case models.EncryptedBlob:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("raw codec needs []byte or string, got %T", value)
	}
}

func (rawCodec) Unmarshal(data []byte, target any) error {
	switch t := target.(type) {
	case *[]byte:
		*t = append([]byte(nil), data...)
		return nil
	case *string:
		*t = string(data)
		return nil
	default:
		return fmt.Errorf("raw codec needs *[]byte or *string target, got %T", target)
	}
}
