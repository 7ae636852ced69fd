package handlers

import (
	"context"
	"encoding/binary"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lonng/conduit/concurrent"
	"github.com/lonng/conduit/executor"
	"github.com/lonng/conduit/pipeline"
	"github.com/lonng/conduit/serialize/json"
)

// bonk is the round-tripped demo message.
type bonk struct {
	Message string `json:"message"`
	Type    int32  `json:"type"`
}

// bonkSink plays the dispatcher at the application end.
type bonkSink struct {
	pipeline.InboundAdapter[pipeline.Nothing]
	mu   sync.Mutex
	msgs []*bonk
}

func (h *bonkSink) Read(_ pipeline.InboundContext[pipeline.Nothing], msg *bonk) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, msg)
}

func (h *bonkSink) snapshot() []*bonk {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*bonk(nil), h.msgs...)
}

// recordingTransport captures wire writes for echoing back.
type recordingTransport struct {
	mu     sync.Mutex
	writes [][]byte
	closed bool
}

func (t *recordingTransport) Write(p []byte) *concurrent.Future {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.writes = append(t.writes, p)
	return concurrent.Resolved()
}

func (t *recordingTransport) Close() *concurrent.Future {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return concurrent.Resolved()
}

func (t *recordingTransport) isClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *recordingTransport) snapshot() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([][]byte(nil), t.writes...)
}

// TestRPCEchoStack drives the full client stack: transport-write, event-loop
// hop, length-prefix framing, serialization. An outbound bonk becomes framed
// bytes at the transport; echoing those bytes back inbound yields the same
// bonk at the dispatcher.
func TestRPCEchoStack(t *testing.T) {
	exec := executor.New("echo-test")
	exec.Start()
	defer exec.Close()

	trans := &recordingTransport{}
	sink := &bonkSink{}

	p := pipeline.New[[]byte, *bonk]()
	p.SetTransport(trans)
	pipeline.AddOutboundBack(p, NewTransportHandler())
	pipeline.AddBack(p, NewExecutorHandler[[]byte, []byte](exec))
	pipeline.AddInboundBack(p, NewFrameDecoder(1024))
	pipeline.AddOutboundBack(p, NewFramePrepender())
	pipeline.AddBack(p, NewSerializeHandler(json.NewSerializer(), func() *bonk { return new(bonk) }))
	pipeline.AddInboundBack[[]byte, *bonk, *bonk, pipeline.Nothing](p, sink)
	require.NoError(t, p.Finalize())

	fut, err := p.Write(&bonk{Message: "hi", Type: 7})
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, fut.Wait(ctx))

	wire := trans.snapshot()
	require.Len(t, wire, 1)
	payloadLen := binary.BigEndian.Uint32(wire[0][:4])
	require.Equal(t, int(payloadLen), len(wire[0])-4)
	assert.JSONEq(t, `{"message":"hi","type":7}`, string(wire[0][4:]))

	// simulated echo: the server returns exactly what it received
	require.NoError(t, p.Read(wire[0]))
	require.Eventually(t, func() bool {
		return len(sink.snapshot()) == 1
	}, time.Second, time.Millisecond)

	got := sink.snapshot()[0]
	assert.Equal(t, "hi", got.Message)
	assert.Equal(t, int32(7), got.Type)

	// closing the pipeline reaches the transport
	cfut, err := p.Close()
	require.NoError(t, err)
	require.NoError(t, cfut.Wait(ctx))
	assert.True(t, trans.isClosed())
}
