package handlers

import (
	"github.com/pingcap/errors"

	"github.com/lonng/conduit/concurrent"
	"github.com/lonng/conduit/executor"
	"github.com/lonng/conduit/internal/log"
	"github.com/lonng/conduit/pipeline"
)

// ErrExecutorClosed resolves futures for operations submitted after the
// handler's executor stopped.
var ErrExecutorClosed = errors.New("handlers: executor closed")

// ExecutorHandler re-schedules pipeline traffic onto a single executor,
// establishing the thread affinity the core trusts: everything behind this
// handler runs on the executor goroutine. Place it near the front of the
// chain, just above the transport-writing stage.
type ExecutorHandler[R, W any] struct {
	exec *executor.Executor
}

func NewExecutorHandler[R, W any](exec *executor.Executor) pipeline.Handler[R, R, W, W] {
	return &ExecutorHandler[R, W]{exec: exec}
}

func (h *ExecutorHandler[R, W]) Read(ctx pipeline.HandlerContext[R, W], msg R) {
	if !h.exec.Execute(func() { ctx.FireRead(msg) }) {
		log.Warn("pipeline %v: executor closed, inbound event dropped", ctx.Pipeline().ID())
	}
}

func (h *ExecutorHandler[R, W]) ReadEOF(ctx pipeline.HandlerContext[R, W]) {
	if !h.exec.Execute(func() { ctx.FireReadEOF() }) {
		log.Warn("pipeline %v: executor closed, EOF dropped", ctx.Pipeline().ID())
	}
}

func (h *ExecutorHandler[R, W]) ReadException(ctx pipeline.HandlerContext[R, W], err error) {
	if !h.exec.Execute(func() { ctx.FireReadException(err) }) {
		log.Warn("pipeline %v: executor closed, inbound exception dropped", ctx.Pipeline().ID(), err)
	}
}

func (h *ExecutorHandler[R, W]) TransportActive(ctx pipeline.HandlerContext[R, W]) {
	h.exec.Execute(func() { ctx.FireTransportActive() })
}

func (h *ExecutorHandler[R, W]) TransportInactive(ctx pipeline.HandlerContext[R, W]) {
	h.exec.Execute(func() { ctx.FireTransportInactive() })
}

func (h *ExecutorHandler[R, W]) Write(ctx pipeline.HandlerContext[R, W], msg W) *concurrent.Future {
	return h.hop(func() *concurrent.Future { return ctx.FireWrite(msg) })
}

func (h *ExecutorHandler[R, W]) Close(ctx pipeline.HandlerContext[R, W]) *concurrent.Future {
	return h.hop(func() *concurrent.Future { return ctx.FireClose() })
}

func (h *ExecutorHandler[R, W]) AttachPipeline(pipeline.HandlerContext[R, W]) {}

func (h *ExecutorHandler[R, W]) DetachPipeline(pipeline.HandlerContext[R, W]) {}

// hop runs op on the executor and bridges its future back to the caller.
func (h *ExecutorHandler[R, W]) hop(op func() *concurrent.Future) *concurrent.Future {
	promise := concurrent.NewPromise()
	ok := h.exec.Execute(func() {
		op().OnComplete(func(err error) {
			if err != nil {
				promise.Fail(err)
				return
			}
			promise.Complete()
		})
	})
	if !ok {
		promise.Fail(errors.Trace(ErrExecutorClosed))
	}
	return promise.Future()
}
