package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonng/conduit/pipeline"
	"github.com/lonng/conduit/serialize/json"
)

type ping struct {
	Seq  int    `json:"seq"`
	Note string `json:"note"`
}

// pingSink terminates the inbound chain with decoded messages.
type pingSink struct {
	pipeline.InboundAdapter[pipeline.Nothing]
	msgs []*ping
	errs []error
}

func (h *pingSink) Read(_ pipeline.InboundContext[pipeline.Nothing], msg *ping) {
	h.msgs = append(h.msgs, msg)
}

func (h *pingSink) ReadException(_ pipeline.InboundContext[pipeline.Nothing], err error) {
	h.errs = append(h.errs, err)
}

func serializePipeline(t *testing.T) (*pipeline.Pipeline[[]byte, *ping], *captureOut, *pingSink) {
	p := pipeline.New[[]byte, *ping]()
	capture := &captureOut{}
	sink := &pingSink{}
	pipeline.AddOutboundBack[[]byte, *ping, []byte, []byte](p, capture)
	pipeline.AddBack(p, NewSerializeHandler(json.NewSerializer(), func() *ping { return new(ping) }))
	pipeline.AddInboundBack[[]byte, *ping, *ping, pipeline.Nothing](p, sink)
	require.NoError(t, p.Finalize())
	return p, capture, sink
}

func TestSerializeRoundTrip(t *testing.T) {
	p, capture, sink := serializePipeline(t)

	fut, err := p.Write(&ping{Seq: 3, Note: "hi"})
	require.NoError(t, err)
	require.NoError(t, fut.Err())
	require.Len(t, capture.writes, 1)

	require.NoError(t, p.Read(capture.writes[0]))
	require.Len(t, sink.msgs, 1)
	//
	assert.Equal(t, 3, sink.msgs[0].Seq)
	assert.Equal(t, "hi", sink.msgs[0].Note)
}

func TestSerializeBadInboundData(t *testing.T) {
	p, _, sink := serializePipeline(t)

	require.NoError(t, p.Read([]byte("{not json")))
	//
	assert.Empty(t, sink.msgs)
	require.Len(t, sink.errs, 1)
}

func TestMarshalFastPaths(t *testing.T) {
	s := json.NewSerializer()

	data, err := marshal(s, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	data, err = marshal(s, "raw")
	require.NoError(t, err)
	assert.Equal(t, []byte("raw"), data)

	str := "ptr"
	data, err = marshal(s, &str)
	require.NoError(t, err)
	assert.Equal(t, []byte("ptr"), data)

	data, err = marshal(s, (*string)(nil))
	require.NoError(t, err)
	assert.Empty(t, data)

	data, err = marshal(s, &ping{Seq: 1})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"seq":1`)
}
