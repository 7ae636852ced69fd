package pipeline

import (
	"github.com/pingcap/errors"
)

// Assembly is done through free functions because Go methods cannot
// introduce the handler's own type parameters. Each call wraps the handler
// in a context matching its capability set and inserts it; neighbour links
// are not wired and AttachPipeline is not invoked until Finalize.

// AddBack appends a bidirectional handler at the application end.
func AddBack[R, W, Rin, Rout, Win, Wout any](p *Pipeline[R, W], h Handler[Rin, Rout, Win, Wout]) *Pipeline[R, W] {
	p.addCtx(&bothCtx[Rin, Rout, Win, Wout]{pipe: &p.Base, h: h}, false)
	return p
}

// AddFront prepends a bidirectional handler at the transport end.
func AddFront[R, W, Rin, Rout, Win, Wout any](p *Pipeline[R, W], h Handler[Rin, Rout, Win, Wout]) *Pipeline[R, W] {
	p.addCtx(&bothCtx[Rin, Rout, Win, Wout]{pipe: &p.Base, h: h}, true)
	return p
}

// AddInboundBack appends an inbound-only handler at the application end.
func AddInboundBack[R, W, Rin, Rout any](p *Pipeline[R, W], h InboundHandler[Rin, Rout]) *Pipeline[R, W] {
	p.addCtx(&inCtx[Rin, Rout]{pipe: &p.Base, h: h}, false)
	return p
}

// AddInboundFront prepends an inbound-only handler at the transport end.
func AddInboundFront[R, W, Rin, Rout any](p *Pipeline[R, W], h InboundHandler[Rin, Rout]) *Pipeline[R, W] {
	p.addCtx(&inCtx[Rin, Rout]{pipe: &p.Base, h: h}, true)
	return p
}

// AddOutboundBack appends an outbound-only handler at the application end.
func AddOutboundBack[R, W, Win, Wout any](p *Pipeline[R, W], h OutboundHandler[Win, Wout]) *Pipeline[R, W] {
	p.addCtx(&outCtx[Win, Wout]{pipe: &p.Base, h: h}, false)
	return p
}

// AddOutboundFront prepends an outbound-only handler at the transport end.
func AddOutboundFront[R, W, Win, Wout any](p *Pipeline[R, W], h OutboundHandler[Win, Wout]) *Pipeline[R, W] {
	p.addCtx(&outCtx[Win, Wout]{pipe: &p.Base, h: h}, true)
	return p
}

// GetHandler retrieves the handler at position i (front = 0), checking at
// retrieval time that it has the expected type H.
func GetHandler[H any, R, W any](p *Pipeline[R, W], i int) (H, error) {
	var zero H
	if i < 0 || i >= len(p.ctxs) {
		return zero, errors.Errorf("pipeline: handler index %d out of range [0, %d)", i, len(p.ctxs))
	}
	h, ok := p.ctxs[i].handler().(H)
	if !ok {
		return zero, errors.Annotatef(ErrHandlerTypeMismatch,
			"handler at %d is %T, not %T", i, p.ctxs[i].handler(), zero)
	}
	return h, nil
}
