package pipeline

import (
	"github.com/lonng/conduit/concurrent"
)

// Transport is the asynchronous byte conduit underneath a pipeline. The core
// never touches it; it is stored on the pipeline and consumed by whichever
// outbound-tail handler writes to the wire. Concrete adapters live in the
// transport package.
type Transport interface {
	// Write hands a buffer to the transport and returns a future that
	// resolves when the bytes have been accepted by the wire.
	Write(p []byte) *concurrent.Future

	// Close shuts the transport down after pending writes have drained.
	Close() *concurrent.Future
}
