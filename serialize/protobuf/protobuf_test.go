package protobuf

import (
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

func TestSerializer(t *testing.T) {
	s := NewSerializer()
	data, err := s.Marshal(wrapperspb.String("ping"))
	require.NoError(t, err)

	got := &wrapperspb.StringValue{}
	require.NoError(t, s.Unmarshal(data, got))
	assert.Equal(t, "ping", got.GetValue())
}

func TestMarshalWrongType(t *testing.T) {
	s := NewSerializer()
	_, err := s.Marshal("not a proto message")
	assert.Equal(t, ErrWrongValueType, errors.Cause(err))

	err = s.Unmarshal([]byte{}, "not a proto message")
	assert.Equal(t, ErrWrongValueType, errors.Cause(err))
}
