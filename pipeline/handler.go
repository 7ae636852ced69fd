package pipeline

import (
	"github.com/lonng/conduit/concurrent"
)

// Handler is a stage that participates in both directions of a pipeline. It
// consumes Rin events travelling toward the application and emits Rout; it
// consumes Wout operations travelling toward the transport and emits Win.
// Every operation receives the handler's context, through which it forwards
// to (or absorbs short of) its neighbours.
type Handler[Rin, Rout, Win, Wout any] interface {
	Read(ctx HandlerContext[Rout, Win], msg Rin)
	ReadEOF(ctx HandlerContext[Rout, Win])
	ReadException(ctx HandlerContext[Rout, Win], err error)
	TransportActive(ctx HandlerContext[Rout, Win])
	TransportInactive(ctx HandlerContext[Rout, Win])

	Write(ctx HandlerContext[Rout, Win], msg Wout) *concurrent.Future
	Close(ctx HandlerContext[Rout, Win]) *concurrent.Future

	AttachPipeline(ctx HandlerContext[Rout, Win])
	DetachPipeline(ctx HandlerContext[Rout, Win])
}

// InboundHandler is a stage that only consumes inbound events.
type InboundHandler[Rin, Rout any] interface {
	Read(ctx InboundContext[Rout], msg Rin)
	ReadEOF(ctx InboundContext[Rout])
	ReadException(ctx InboundContext[Rout], err error)
	TransportActive(ctx InboundContext[Rout])
	TransportInactive(ctx InboundContext[Rout])

	AttachPipeline(ctx InboundContext[Rout])
	DetachPipeline(ctx InboundContext[Rout])
}

// OutboundHandler is a stage that only consumes outbound operations.
type OutboundHandler[Win, Wout any] interface {
	Write(ctx OutboundContext[Win], msg Wout) *concurrent.Future
	Close(ctx OutboundContext[Win]) *concurrent.Future

	AttachPipeline(ctx OutboundContext[Win])
	DetachPipeline(ctx OutboundContext[Win])
}

// HandlerAdapter forwards every event unchanged in both directions. Embed it
// in a same-typed handler and override the operations of interest.
type HandlerAdapter[R, W any] struct{}

func (HandlerAdapter[R, W]) Read(ctx HandlerContext[R, W], msg R) {
	ctx.FireRead(msg)
}

func (HandlerAdapter[R, W]) ReadEOF(ctx HandlerContext[R, W]) {
	ctx.FireReadEOF()
}

func (HandlerAdapter[R, W]) ReadException(ctx HandlerContext[R, W], err error) {
	ctx.FireReadException(err)
}

func (HandlerAdapter[R, W]) TransportActive(ctx HandlerContext[R, W]) {
	ctx.FireTransportActive()
}

func (HandlerAdapter[R, W]) TransportInactive(ctx HandlerContext[R, W]) {
	ctx.FireTransportInactive()
}

func (HandlerAdapter[R, W]) Write(ctx HandlerContext[R, W], msg W) *concurrent.Future {
	return ctx.FireWrite(msg)
}

func (HandlerAdapter[R, W]) Close(ctx HandlerContext[R, W]) *concurrent.Future {
	return ctx.FireClose()
}

func (HandlerAdapter[R, W]) AttachPipeline(HandlerContext[R, W]) {}

func (HandlerAdapter[R, W]) DetachPipeline(HandlerContext[R, W]) {}

// InboundAdapter forwards every inbound event unchanged.
type InboundAdapter[R any] struct{}

func (InboundAdapter[R]) Read(ctx InboundContext[R], msg R) {
	ctx.FireRead(msg)
}

func (InboundAdapter[R]) ReadEOF(ctx InboundContext[R]) {
	ctx.FireReadEOF()
}

func (InboundAdapter[R]) ReadException(ctx InboundContext[R], err error) {
	ctx.FireReadException(err)
}

func (InboundAdapter[R]) TransportActive(ctx InboundContext[R]) {
	ctx.FireTransportActive()
}

func (InboundAdapter[R]) TransportInactive(ctx InboundContext[R]) {
	ctx.FireTransportInactive()
}

func (InboundAdapter[R]) AttachPipeline(InboundContext[R]) {}

func (InboundAdapter[R]) DetachPipeline(InboundContext[R]) {}

// OutboundAdapter forwards every outbound operation unchanged.
type OutboundAdapter[W any] struct{}

func (OutboundAdapter[W]) Write(ctx OutboundContext[W], msg W) *concurrent.Future {
	return ctx.FireWrite(msg)
}

func (OutboundAdapter[W]) Close(ctx OutboundContext[W]) *concurrent.Future {
	return ctx.FireClose()
}

func (OutboundAdapter[W]) AttachPipeline(OutboundContext[W]) {}

func (OutboundAdapter[W]) DetachPipeline(OutboundContext[W]) {}
