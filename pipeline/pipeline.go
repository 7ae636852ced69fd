package pipeline

import (
	"github.com/pingcap/errors"

	"github.com/lonng/conduit/concurrent"
	"github.com/lonng/conduit/internal/log"
)

// Pipeline is an ordered, bidirectional chain of handlers between a
// transport and application code. R is the inbound message type entering at
// the front; W is the outbound message type submitted at the back. Use
// Nothing for either to disable that direction.
//
// Assemble with AddFront/AddBack (and the inbound/outbound variants), then
// call Finalize to wire neighbour links before any traffic flows. All
// operations on a finalized pipeline must run on its owning executor; the
// pipeline itself takes no locks on the traversal path.
type Pipeline[R, W any] struct {
	Base

	ctxs    []pipelineContext
	inCtxs  []pipelineContext
	outCtxs []pipelineContext
	front   inboundLink[R]
	back    outboundLink[W]
	owner   pipelineContext

	isStatic bool
}

// New constructs an empty, unfinalized pipeline.
func New[R, W any]() *Pipeline[R, W] {
	p := &Pipeline[R, W]{Base: newBase()}
	p.destroyFn = p.teardown
	return p
}

// NewStatic constructs a pipeline in static mode: its handlers outlive it by
// external arrangement, so teardown does not detach them. Reserved for
// embedding pipelines inside longer-lived owners.
func NewStatic[R, W any]() *Pipeline[R, W] {
	p := New[R, W]()
	p.isStatic = true
	return p
}

// Read injects an inbound message at the front of the chain.
func (p *Pipeline[R, W]) Read(msg R) error {
	if nothing[R]() {
		return errors.Annotate(ErrNoInboundHandler, "inbound direction disabled")
	}
	if p.front == nil {
		return errors.Annotate(ErrNoInboundHandler, "read")
	}
	p.front.read(msg)
	return nil
}

// ReadEOF signals end of inbound stream at the front of the chain.
func (p *Pipeline[R, W]) ReadEOF() error {
	if nothing[R]() {
		return errors.Annotate(ErrNoInboundHandler, "inbound direction disabled")
	}
	if p.front == nil {
		return errors.Annotate(ErrNoInboundHandler, "readEOF")
	}
	p.front.readEOF()
	return nil
}

// ReadException injects a transport error as an inbound event; it travels
// the same ordered path as regular reads so recovery handlers may sit
// anywhere in the chain.
func (p *Pipeline[R, W]) ReadException(err error) error {
	if nothing[R]() {
		return errors.Annotate(ErrNoInboundHandler, "inbound direction disabled")
	}
	if p.front == nil {
		return errors.Annotate(ErrNoInboundHandler, "readException")
	}
	p.front.readException(err)
	return nil
}

// TransportActive notifies the chain that the transport came up. Advisory:
// a no-op on a pipeline with no inbound handler.
func (p *Pipeline[R, W]) TransportActive() {
	if p.front != nil {
		p.front.transportActive()
	}
}

// TransportInactive notifies the chain that the transport went down.
func (p *Pipeline[R, W]) TransportInactive() {
	if p.front != nil {
		p.front.transportInactive()
	}
}

// Write submits an outbound message at the back of the chain. The returned
// future resolves when the write has been accepted by whichever stage
// terminates the outbound path. Completion order across writes is up to the
// handlers in between; submission order toward the transport is preserved.
func (p *Pipeline[R, W]) Write(msg W) (*concurrent.Future, error) {
	if nothing[W]() {
		return nil, errors.Annotate(ErrNoOutboundHandler, "outbound direction disabled")
	}
	if p.back == nil {
		return nil, errors.Annotate(ErrNoOutboundHandler, "write")
	}
	p.acquireGuard()
	fut := p.back.write(msg)
	fut.OnComplete(func(error) { p.releaseGuard() })
	return fut, nil
}

// Close submits a close operation at the back of the chain.
func (p *Pipeline[R, W]) Close() (*concurrent.Future, error) {
	if nothing[W]() {
		return nil, errors.Annotate(ErrNoOutboundHandler, "outbound direction disabled")
	}
	if p.back == nil {
		return nil, errors.Annotate(ErrNoOutboundHandler, "close")
	}
	p.acquireGuard()
	fut := p.back.close()
	fut.OnComplete(func(error) { p.releaseGuard() })
	return fut, nil
}

// Finalize wires neighbour links, resolves the front and back entry points
// and attaches handlers back-to-front, so that by the time a handler is
// attached everything downstream of it already is. Calling it again after
// further assembly re-runs the wiring; contexts that were already attached
// are not attached twice.
//
// The returned error reports a typed edge whose two handlers disagree on the
// message type crossing it.
func (p *Pipeline[R, W]) Finalize() error {
	if len(p.inCtxs) > 0 {
		front, ok := p.inCtxs[0].(inboundLink[R])
		if !ok {
			p.front = nil
			if !nothing[R]() {
				log.Warn("pipeline %v: front handler %T does not accept the pipeline's inbound type",
					p.ID(), p.inCtxs[0].handler())
			}
		} else {
			p.front = front
		}
		for i := 0; i < len(p.inCtxs)-1; i++ {
			if err := p.inCtxs[i].setNextIn(p.inCtxs[i+1]); err != nil {
				return errors.Trace(err)
			}
		}
		if err := p.inCtxs[len(p.inCtxs)-1].setNextIn(nil); err != nil {
			return errors.Trace(err)
		}
	} else {
		p.front = nil
	}

	if len(p.outCtxs) > 0 {
		back, ok := p.outCtxs[len(p.outCtxs)-1].(outboundLink[W])
		if !ok {
			p.back = nil
			if !nothing[W]() {
				log.Warn("pipeline %v: back handler %T does not accept the pipeline's outbound type",
					p.ID(), p.outCtxs[len(p.outCtxs)-1].handler())
			}
		} else {
			p.back = back
		}
		for i := len(p.outCtxs) - 1; i > 0; i-- {
			if err := p.outCtxs[i].setNextOut(p.outCtxs[i-1]); err != nil {
				return errors.Trace(err)
			}
		}
		if err := p.outCtxs[0].setNextOut(nil); err != nil {
			return errors.Trace(err)
		}
	} else {
		p.back = nil
	}

	if p.front == nil && !nothing[R]() {
		log.Warn("pipeline %v: no inbound handler, inbound operations will fail", p.ID())
	}
	if p.back == nil && !nothing[W]() {
		log.Warn("pipeline %v: no outbound handler, outbound operations will fail", p.ID())
	}

	for i := len(p.ctxs) - 1; i >= 0; i-- {
		p.ctxs[i].attachPipeline()
	}
	return nil
}

// SetOwner marks the context wrapping handler as the pipeline's owner,
// exempting it from detach during teardown. Used when the handler itself
// owns the pipeline, to keep teardown from calling back into a
// half-destroyed owner. Reports whether a matching context was found.
func (p *Pipeline[R, W]) SetOwner(handler any) bool {
	for _, ctx := range p.ctxs {
		if ctx.handler() == handler {
			p.owner = ctx
			return true
		}
	}
	return false
}

// Len returns the number of handlers in the chain.
func (p *Pipeline[R, W]) Len() int {
	return len(p.ctxs)
}

// teardown runs once, via Base.Destroy, after outstanding write completions
// have drained.
func (p *Pipeline[R, W]) teardown() {
	if p.isStatic {
		return
	}
	p.detachHandlers()
}

func (p *Pipeline[R, W]) detachHandlers() {
	for _, ctx := range p.ctxs {
		if ctx != p.owner {
			ctx.detachPipeline()
		}
	}
}

// addCtx inserts a freshly-built context at the chosen end, keeping the
// derived inbound/outbound sequences consistent with the main one.
func (p *Pipeline[R, W]) addCtx(ctx pipelineContext, front bool) {
	p.ctxs = insert(p.ctxs, ctx, front)
	if ctx.direction().handlesIn() {
		p.inCtxs = insert(p.inCtxs, ctx, front)
	}
	if ctx.direction().handlesOut() {
		p.outCtxs = insert(p.outCtxs, ctx, front)
	}
}

func insert(ctxs []pipelineContext, ctx pipelineContext, front bool) []pipelineContext {
	if front {
		return append([]pipelineContext{ctx}, ctxs...)
	}
	return append(ctxs, ctx)
}
