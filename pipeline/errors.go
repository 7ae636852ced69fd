package pipeline

import (
	"github.com/pingcap/errors"
)

// Assembly and gating violations. These indicate a bug in how the pipeline
// was put together, not a transient transport condition.
var (
	// ErrNoInboundHandler is returned by Read, ReadEOF and ReadException
	// when no handler in the pipeline services the inbound direction.
	ErrNoInboundHandler = errors.New("pipeline: no inbound handler")

	// ErrNoOutboundHandler is returned by Write and Close when no handler
	// in the pipeline services the outbound direction.
	ErrNoOutboundHandler = errors.New("pipeline: no outbound handler")

	// ErrHandlerTypeMismatch is returned when a stored handler does not
	// have the type the caller expects, or when adjacent handlers disagree
	// on the message type crossing their shared edge.
	ErrHandlerTypeMismatch = errors.New("pipeline: handler type mismatch")

	// ErrNoTransport is returned by transport-writing handlers on a
	// pipeline without an attached transport.
	ErrNoTransport = errors.New("pipeline: no transport attached")
)
