package message

import (
	"errors"
	"fmt"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	CacheInvalidationTopic = "forum-permission-cache"

	ProtoTypeHeader = "X-Proto-Type"

	originField = "origin"
	keysField   = "keys"
)

var ErrMalformed = errors.New("malformed cache invalidation message")

// CacheInvalidation lists cache keys evicted by the instance named by Origin.
type CacheInvalidation struct {
	Origin string
	Keys   []string
}

func (c *CacheInvalidation) ToProto() (*structpb.Struct, error) {
	keys := make([]interface{}, len(c.Keys))
	for i, k := range c.Keys {
		keys[i] = k
	}

	return structpb.NewStruct(map[string]interface{}{
		originField: c.Origin,
		keysField:   keys,
	})
}

func ProtoTypeName() string {
	return string((&structpb.Struct{}).ProtoReflect().Descriptor().FullName())
}

func Marshal(c *CacheInvalidation) ([]byte, error) {
	msg, err := c.ToProto()
	if err != nil {
		return nil, fmt.Errorf("failed to convert message: %w", err)
	}
	return proto.Marshal(msg)
}

func Unmarshal(data []byte) (*CacheInvalidation, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}

	origin, ok := msg.Fields[originField]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformed, originField)
	}
	keysValue, ok := msg.Fields[keysField]
	if !ok || keysValue.GetListValue() == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformed, keysField)
	}

	result := &CacheInvalidation{Origin: origin.GetStringValue()}
	for _, v := range keysValue.GetListValue().GetValues() {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: non string key", ErrMalformed)
		}
		result.Keys = append(result.Keys, s.StringValue)
	}

	return result, nil
}
