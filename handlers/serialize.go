package handlers

import (
	"github.com/lonng/conduit/concurrent"
	"github.com/lonng/conduit/pipeline"
	"github.com/lonng/conduit/serialize"
)

// SerializeHandler converts between wire frames and typed messages: inbound
// frames decode to T, outbound T values encode to bytes. T must be a pointer
// type; alloc supplies a fresh T for each inbound decode.
type SerializeHandler[T any] struct {
	serializer serialize.Serializer
	alloc      func() T
}

func NewSerializeHandler[T any](s serialize.Serializer, alloc func() T) pipeline.Handler[[]byte, T, []byte, T] {
	return &SerializeHandler[T]{serializer: s, alloc: alloc}
}

func (h *SerializeHandler[T]) Read(ctx pipeline.HandlerContext[T, []byte], data []byte) {
	msg := h.alloc()
	if err := h.serializer.Unmarshal(data, msg); err != nil {
		ctx.FireReadException(err)
		return
	}
	ctx.FireRead(msg)
}

func (h *SerializeHandler[T]) ReadEOF(ctx pipeline.HandlerContext[T, []byte]) {
	ctx.FireReadEOF()
}

func (h *SerializeHandler[T]) ReadException(ctx pipeline.HandlerContext[T, []byte], err error) {
	ctx.FireReadException(err)
}

func (h *SerializeHandler[T]) TransportActive(ctx pipeline.HandlerContext[T, []byte]) {
	ctx.FireTransportActive()
}

func (h *SerializeHandler[T]) TransportInactive(ctx pipeline.HandlerContext[T, []byte]) {
	ctx.FireTransportInactive()
}

func (h *SerializeHandler[T]) Write(ctx pipeline.HandlerContext[T, []byte], msg T) *concurrent.Future {
	data, err := marshal(h.serializer, msg)
	if err != nil {
		return concurrent.Failed(err)
	}
	return ctx.FireWrite(data)
}

func (h *SerializeHandler[T]) Close(ctx pipeline.HandlerContext[T, []byte]) *concurrent.Future {
	return ctx.FireClose()
}

func (h *SerializeHandler[T]) AttachPipeline(pipeline.HandlerContext[T, []byte]) {}

func (h *SerializeHandler[T]) DetachPipeline(pipeline.HandlerContext[T, []byte]) {}

// marshal serializes v, passing raw bytes and strings through untouched.
func marshal(s serialize.Serializer, v any) ([]byte, error) {
	switch raw := v.(type) {
	case []byte:
		return raw, nil
	case string:
		return []byte(raw), nil
	case *string:
		if raw == nil {
			return []byte{}, nil
		}
		return []byte(*raw), nil
	default:
		return s.Marshal(v)
	}
}
