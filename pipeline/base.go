package pipeline

import (
	"sync"

	"github.com/google/uuid"
)

// WriteFlags are advisory flags attached to a pipeline and passed through to
// whichever handler writes to the transport.
type WriteFlags uint32

const (
	WriteFlagNone WriteFlags = 0
	// WriteFlagCork hints that further writes follow shortly.
	WriteFlagCork WriteFlags = 1 << iota
	// WriteFlagEOR marks the end of an application record.
	WriteFlagEOR
)

// ReadBufferConfig is the advisory read-buffer hint honoured by whichever
// handler allocates inbound buffers.
type ReadBufferConfig struct {
	MinAvailable   uint64
	AllocationSize uint64
}

const defaultReadBufferSize = 2048

// Base is the untyped part of every pipeline: the transport reference, the
// manager back-pointer, advisory settings and the delayed-destruction guard.
// It is embedded in Pipeline and never used on its own.
type Base struct {
	id         string
	manager    Manager
	transport  Transport
	writeFlags WriteFlags
	readBuffer ReadBufferConfig

	// Destruction bookkeeping. Completions may arrive from a transport
	// writer goroutine, so this corner is locked even though pipeline
	// traversal itself is single-threaded by contract.
	mu        sync.Mutex
	guards    int
	requested bool
	destroyed bool
	destroyFn func()
}

func newBase() Base {
	return Base{
		id: uuid.NewString(),
		readBuffer: ReadBufferConfig{
			MinAvailable:   defaultReadBufferSize,
			AllocationSize: defaultReadBufferSize,
		},
	}
}

// ID returns the pipeline's correlation id, used in log output.
func (b *Base) ID() string {
	return b.id
}

// SetManager installs the owner invoked by DeletePipeline.
func (b *Base) SetManager(m Manager) {
	b.manager = m
}

func (b *Base) Manager() Manager {
	return b.manager
}

// DeletePipeline asks the manager to release this pipeline. A handler that
// owns its pipeline uses this instead of destroying it out from under the
// chain it is part of. Without a manager the call is a no-op.
func (b *Base) DeletePipeline() {
	if b.manager != nil {
		b.manager.DeletePipeline(b)
	}
}

func (b *Base) SetTransport(t Transport) {
	b.transport = t
}

func (b *Base) Transport() Transport {
	return b.transport
}

func (b *Base) SetWriteFlags(flags WriteFlags) {
	b.writeFlags = flags
}

func (b *Base) WriteFlags() WriteFlags {
	return b.writeFlags
}

func (b *Base) SetReadBufferConfig(cfg ReadBufferConfig) {
	b.readBuffer = cfg
}

func (b *Base) ReadBufferConfig() ReadBufferConfig {
	return b.readBuffer
}

// Destroy tears the pipeline down. If asynchronous write completions are
// still outstanding the teardown is deferred until the last of them
// resolves; the teardown runs exactly once either way.
func (b *Base) Destroy() {
	b.mu.Lock()
	b.requested = true
	if b.guards > 0 || b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	fn := b.destroyFn
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Destroyed reports whether teardown has run.
func (b *Base) Destroyed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destroyed
}

// acquireGuard extends the pipeline's lifetime across one outstanding
// asynchronous completion.
func (b *Base) acquireGuard() {
	b.mu.Lock()
	b.guards++
	b.mu.Unlock()
}

func (b *Base) releaseGuard() {
	b.mu.Lock()
	b.guards--
	if b.guards > 0 || !b.requested || b.destroyed {
		b.mu.Unlock()
		return
	}
	b.destroyed = true
	fn := b.destroyFn
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}
