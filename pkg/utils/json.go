package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// UnmarshalJson converts a loosely typed message payload, as it comes out of
// a generic json decode, into T.
func UnmarshalJson[T any](v any) (T, error) {
	var result T
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	data, err := jsoniter.Marshal(v)
	if err != nil {
		return result, errors.WithMessage(err, "marshal json")
	}
	if err := jsoniter.Unmarshal(data, &result); err != nil {
		return result, errors.WithMessage(err, "unmarshal json")
	}
	return result, nil
}
