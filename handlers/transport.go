package handlers

import (
	"github.com/pingcap/errors"

	"github.com/lonng/conduit/concurrent"
	"github.com/lonng/conduit/pipeline"
)

// TransportHandler terminates the outbound path: it hands byte buffers to
// the pipeline's transport and bridges the transport's completion back into
// the returned future. It belongs at the very front of the chain.
type TransportHandler struct{}

func NewTransportHandler() pipeline.OutboundHandler[[]byte, []byte] {
	return &TransportHandler{}
}

func (h *TransportHandler) Write(ctx pipeline.OutboundContext[[]byte], msg []byte) *concurrent.Future {
	t := ctx.Transport()
	if t == nil {
		return concurrent.Failed(errors.Annotate(pipeline.ErrNoTransport, "write"))
	}
	return t.Write(msg)
}

func (h *TransportHandler) Close(ctx pipeline.OutboundContext[[]byte]) *concurrent.Future {
	t := ctx.Transport()
	if t == nil {
		return concurrent.Failed(errors.Annotate(pipeline.ErrNoTransport, "close"))
	}
	return t.Close()
}

func (h *TransportHandler) AttachPipeline(pipeline.OutboundContext[[]byte]) {}

func (h *TransportHandler) DetachPipeline(pipeline.OutboundContext[[]byte]) {}
