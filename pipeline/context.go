package pipeline

import (
	"github.com/pingcap/errors"

	"github.com/lonng/conduit/concurrent"
	"github.com/lonng/conduit/internal/log"
)

// HandlerContext is the adapter a BOTH handler talks to its neighbours
// through. Fire* calls forward to the next stage in the given direction; a
// handler that does not fire absorbs the event. The context, not the
// handler, knows the chain.
type HandlerContext[Rout, Win any] interface {
	FireRead(msg Rout)
	FireReadEOF()
	FireReadException(err error)
	FireTransportActive()
	FireTransportInactive()

	FireWrite(msg Win) *concurrent.Future
	FireClose() *concurrent.Future

	Pipeline() *Base
	Transport() Transport
	Handler() any
}

// InboundContext is the adapter handed to an inbound-only handler.
type InboundContext[Rout any] interface {
	FireRead(msg Rout)
	FireReadEOF()
	FireReadException(err error)
	FireTransportActive()
	FireTransportInactive()

	Pipeline() *Base
	Transport() Transport
	Handler() any
}

// OutboundContext is the adapter handed to an outbound-only handler.
type OutboundContext[Win any] interface {
	FireWrite(msg Win) *concurrent.Future
	FireClose() *concurrent.Future

	Pipeline() *Base
	Transport() Transport
	Handler() any
}

// inboundLink is one inbound edge of the chain, typed by the message the
// upstream stage emits.
type inboundLink[T any] interface {
	read(msg T)
	readEOF()
	readException(err error)
	transportActive()
	transportInactive()
}

// outboundLink is one outbound edge of the chain, typed by the operation the
// downstream stage emits.
type outboundLink[T any] interface {
	write(msg T) *concurrent.Future
	close() *concurrent.Future
}

// pipelineContext is the untyped view the pipeline keeps of every context
// for bookkeeping and wiring. Per-edge typing is recovered inside setNextIn
// and setNextOut via link assertions.
type pipelineContext interface {
	attachPipeline()
	detachPipeline()
	direction() Direction
	handler() any
	setNextIn(next pipelineContext) error
	setNextOut(next pipelineContext) error
}

//====

// bothCtx wraps a Handler. It is an inbound link typed Rin, an outbound link
// typed Wout, and forwards to nextIn/nextOut typed by what the handler emits.
type bothCtx[Rin, Rout, Win, Wout any] struct {
	pipe     *Base
	h        Handler[Rin, Rout, Win, Wout]
	nextIn   inboundLink[Rout]
	nextOut  outboundLink[Win]
	attached bool
}

func (c *bothCtx[Rin, Rout, Win, Wout]) attachPipeline() {
	if c.attached {
		return
	}
	c.attached = true
	c.h.AttachPipeline(c)
}

func (c *bothCtx[Rin, Rout, Win, Wout]) detachPipeline() {
	if !c.attached {
		return
	}
	c.attached = false
	c.h.DetachPipeline(c)
}

func (c *bothCtx[Rin, Rout, Win, Wout]) direction() Direction {
	return Both
}

func (c *bothCtx[Rin, Rout, Win, Wout]) handler() any {
	return c.h
}

func (c *bothCtx[Rin, Rout, Win, Wout]) setNextIn(next pipelineContext) error {
	if next == nil {
		c.nextIn = nil
		return nil
	}
	link, ok := next.(inboundLink[Rout])
	if !ok {
		return errors.Annotatef(ErrHandlerTypeMismatch,
			"inbound edge: %T does not accept what %T emits", next.handler(), c.h)
	}
	c.nextIn = link
	return nil
}

func (c *bothCtx[Rin, Rout, Win, Wout]) setNextOut(next pipelineContext) error {
	if next == nil {
		c.nextOut = nil
		return nil
	}
	link, ok := next.(outboundLink[Win])
	if !ok {
		return errors.Annotatef(ErrHandlerTypeMismatch,
			"outbound edge: %T does not accept what %T emits", next.handler(), c.h)
	}
	c.nextOut = link
	return nil
}

// inboundLink[Rin]

func (c *bothCtx[Rin, Rout, Win, Wout]) read(msg Rin) {
	c.h.Read(c, msg)
}

func (c *bothCtx[Rin, Rout, Win, Wout]) readEOF() {
	c.h.ReadEOF(c)
}

func (c *bothCtx[Rin, Rout, Win, Wout]) readException(err error) {
	c.h.ReadException(c, err)
}

func (c *bothCtx[Rin, Rout, Win, Wout]) transportActive() {
	c.h.TransportActive(c)
}

func (c *bothCtx[Rin, Rout, Win, Wout]) transportInactive() {
	c.h.TransportInactive(c)
}

// outboundLink[Wout]

func (c *bothCtx[Rin, Rout, Win, Wout]) write(msg Wout) *concurrent.Future {
	return c.h.Write(c, msg)
}

func (c *bothCtx[Rin, Rout, Win, Wout]) close() *concurrent.Future {
	return c.h.Close(c)
}

// HandlerContext[Rout, Win]

func (c *bothCtx[Rin, Rout, Win, Wout]) FireRead(msg Rout) {
	if c.nextIn == nil {
		logReadPastTail(c.pipe, c.h)
		return
	}
	c.nextIn.read(msg)
}

func (c *bothCtx[Rin, Rout, Win, Wout]) FireReadEOF() {
	if c.nextIn == nil {
		logReadPastTail(c.pipe, c.h)
		return
	}
	c.nextIn.readEOF()
}

func (c *bothCtx[Rin, Rout, Win, Wout]) FireReadException(err error) {
	if c.nextIn == nil {
		logReadPastTail(c.pipe, c.h)
		return
	}
	c.nextIn.readException(err)
}

func (c *bothCtx[Rin, Rout, Win, Wout]) FireTransportActive() {
	if c.nextIn != nil {
		c.nextIn.transportActive()
	}
}

func (c *bothCtx[Rin, Rout, Win, Wout]) FireTransportInactive() {
	if c.nextIn != nil {
		c.nextIn.transportInactive()
	}
}

func (c *bothCtx[Rin, Rout, Win, Wout]) FireWrite(msg Win) *concurrent.Future {
	if c.nextOut == nil {
		logWritePastHead(c.pipe, c.h)
		return concurrent.Resolved()
	}
	return c.nextOut.write(msg)
}

func (c *bothCtx[Rin, Rout, Win, Wout]) FireClose() *concurrent.Future {
	if c.nextOut == nil {
		logWritePastHead(c.pipe, c.h)
		return concurrent.Resolved()
	}
	return c.nextOut.close()
}

func (c *bothCtx[Rin, Rout, Win, Wout]) Pipeline() *Base {
	return c.pipe
}

func (c *bothCtx[Rin, Rout, Win, Wout]) Transport() Transport {
	return c.pipe.Transport()
}

// Handler returns the wrapped handler.
func (c *bothCtx[Rin, Rout, Win, Wout]) Handler() any {
	return c.h
}

//====

// inCtx wraps an InboundHandler.
type inCtx[Rin, Rout any] struct {
	pipe     *Base
	h        InboundHandler[Rin, Rout]
	nextIn   inboundLink[Rout]
	attached bool
}

func (c *inCtx[Rin, Rout]) attachPipeline() {
	if c.attached {
		return
	}
	c.attached = true
	c.h.AttachPipeline(c)
}

func (c *inCtx[Rin, Rout]) detachPipeline() {
	if !c.attached {
		return
	}
	c.attached = false
	c.h.DetachPipeline(c)
}

func (c *inCtx[Rin, Rout]) direction() Direction {
	return In
}

func (c *inCtx[Rin, Rout]) handler() any {
	return c.h
}

func (c *inCtx[Rin, Rout]) setNextIn(next pipelineContext) error {
	if next == nil {
		c.nextIn = nil
		return nil
	}
	link, ok := next.(inboundLink[Rout])
	if !ok {
		return errors.Annotatef(ErrHandlerTypeMismatch,
			"inbound edge: %T does not accept what %T emits", next.handler(), c.h)
	}
	c.nextIn = link
	return nil
}

func (c *inCtx[Rin, Rout]) setNextOut(pipelineContext) error {
	// inbound-only contexts never appear on the outbound chain
	return nil
}

func (c *inCtx[Rin, Rout]) read(msg Rin) {
	c.h.Read(c, msg)
}

func (c *inCtx[Rin, Rout]) readEOF() {
	c.h.ReadEOF(c)
}

func (c *inCtx[Rin, Rout]) readException(err error) {
	c.h.ReadException(c, err)
}

func (c *inCtx[Rin, Rout]) transportActive() {
	c.h.TransportActive(c)
}

func (c *inCtx[Rin, Rout]) transportInactive() {
	c.h.TransportInactive(c)
}

func (c *inCtx[Rin, Rout]) FireRead(msg Rout) {
	if c.nextIn == nil {
		logReadPastTail(c.pipe, c.h)
		return
	}
	c.nextIn.read(msg)
}

func (c *inCtx[Rin, Rout]) FireReadEOF() {
	if c.nextIn == nil {
		logReadPastTail(c.pipe, c.h)
		return
	}
	c.nextIn.readEOF()
}

func (c *inCtx[Rin, Rout]) FireReadException(err error) {
	if c.nextIn == nil {
		logReadPastTail(c.pipe, c.h)
		return
	}
	c.nextIn.readException(err)
}

func (c *inCtx[Rin, Rout]) FireTransportActive() {
	if c.nextIn != nil {
		c.nextIn.transportActive()
	}
}

func (c *inCtx[Rin, Rout]) FireTransportInactive() {
	if c.nextIn != nil {
		c.nextIn.transportInactive()
	}
}

func (c *inCtx[Rin, Rout]) Pipeline() *Base {
	return c.pipe
}

func (c *inCtx[Rin, Rout]) Transport() Transport {
	return c.pipe.Transport()
}

// Handler returns the wrapped handler.
func (c *inCtx[Rin, Rout]) Handler() any {
	return c.h
}

//====

// outCtx wraps an OutboundHandler.
type outCtx[Win, Wout any] struct {
	pipe     *Base
	h        OutboundHandler[Win, Wout]
	nextOut  outboundLink[Win]
	attached bool
}

func (c *outCtx[Win, Wout]) attachPipeline() {
	if c.attached {
		return
	}
	c.attached = true
	c.h.AttachPipeline(c)
}

func (c *outCtx[Win, Wout]) detachPipeline() {
	if !c.attached {
		return
	}
	c.attached = false
	c.h.DetachPipeline(c)
}

func (c *outCtx[Win, Wout]) direction() Direction {
	return Out
}

func (c *outCtx[Win, Wout]) handler() any {
	return c.h
}

func (c *outCtx[Win, Wout]) setNextIn(pipelineContext) error {
	// outbound-only contexts never appear on the inbound chain
	return nil
}

func (c *outCtx[Win, Wout]) setNextOut(next pipelineContext) error {
	if next == nil {
		c.nextOut = nil
		return nil
	}
	link, ok := next.(outboundLink[Win])
	if !ok {
		return errors.Annotatef(ErrHandlerTypeMismatch,
			"outbound edge: %T does not accept what %T emits", next.handler(), c.h)
	}
	c.nextOut = link
	return nil
}

func (c *outCtx[Win, Wout]) write(msg Wout) *concurrent.Future {
	return c.h.Write(c, msg)
}

func (c *outCtx[Win, Wout]) close() *concurrent.Future {
	return c.h.Close(c)
}

func (c *outCtx[Win, Wout]) FireWrite(msg Win) *concurrent.Future {
	if c.nextOut == nil {
		logWritePastHead(c.pipe, c.h)
		return concurrent.Resolved()
	}
	return c.nextOut.write(msg)
}

func (c *outCtx[Win, Wout]) FireClose() *concurrent.Future {
	if c.nextOut == nil {
		logWritePastHead(c.pipe, c.h)
		return concurrent.Resolved()
	}
	return c.nextOut.close()
}

func (c *outCtx[Win, Wout]) Pipeline() *Base {
	return c.pipe
}

func (c *outCtx[Win, Wout]) Transport() Transport {
	return c.pipe.Transport()
}

// Handler returns the wrapped handler.
func (c *outCtx[Win, Wout]) Handler() any {
	return c.h
}

//====

func logReadPastTail(pipe *Base, h any) {
	log.Warn("pipeline %v: %T fired an inbound event past the tail, discarding", pipe.ID(), h)
}

func logWritePastHead(pipe *Base, h any) {
	log.Warn("pipeline %v: %T fired an outbound operation past the head, discarding", pipe.ID(), h)
}
