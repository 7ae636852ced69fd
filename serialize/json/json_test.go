package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type message struct {
	Route string `json:"route"`
	Code  int    `json:"code"`
}

func TestSerializer(t *testing.T) {
	s := NewSerializer()
	data, err := s.Marshal(&message{Route: "echo.hit", Code: 200})
	require.NoError(t, err)

	var got message
	require.NoError(t, s.Unmarshal(data, &got))
	//
	assert.Equal(t, "echo.hit", got.Route)
	assert.Equal(t, 200, got.Code)
}

func TestUnmarshalGarbage(t *testing.T) {
	s := NewSerializer()
	var got message
	assert.Error(t, s.Unmarshal([]byte("{nope"), &got))
}
