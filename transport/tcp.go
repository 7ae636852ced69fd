package transport

import (
	"io"
	"net"

	"github.com/pingcap/errors"

	"github.com/lonng/conduit/concurrent"
	"github.com/lonng/conduit/pipeline"
)

// ErrTransportClosed resolves futures for writes submitted after Close.
var ErrTransportClosed = errors.New("transport: closed")

const writeBacklog = 64

type pendingWrite struct {
	data    []byte
	promise *concurrent.Promise
}

// TCP adapts a net.Conn into a pipeline.Transport. Writes are queued onto a
// dedicated goroutine so callers never block; each write's future resolves
// once the bytes reach the connection. Close drains pending writes first.
type TCP struct {
	id      int64
	conn    net.Conn
	chSend  chan pendingWrite
	chDie   chan struct{}
	closing *concurrent.Promise
}

// NewTCP wraps conn and starts its write goroutine.
func NewTCP(conn net.Conn) *TCP {
	t := &TCP{
		id:      nextID(),
		conn:    conn,
		chSend:  make(chan pendingWrite, writeBacklog),
		chDie:   make(chan struct{}),
		closing: concurrent.NewPromise(),
	}
	go t.writeLoop()
	return t
}

// ID returns the connection id.
func (t *TCP) ID() int64 {
	return t.id
}

// RemoteAddr returns the peer address.
func (t *TCP) RemoteAddr() net.Addr {
	return t.conn.RemoteAddr()
}

func (t *TCP) Write(p []byte) *concurrent.Future {
	promise := concurrent.NewPromise()
	select {
	case <-t.chDie:
		promise.Fail(errors.Trace(ErrTransportClosed))
		return promise.Future()
	default:
	}
	select {
	case t.chSend <- pendingWrite{data: p, promise: promise}:
	case <-t.chDie:
		promise.Fail(errors.Trace(ErrTransportClosed))
	}
	return promise.Future()
}

func (t *TCP) Close() *concurrent.Future {
	select {
	case <-t.chDie:
	default:
		close(t.chDie)
	}
	return t.closing.Future()
}

// Pump reads from the connection until EOF or error, handing each buffer to
// sink. Buffer sizing follows the pipeline's read-buffer hint. The returned
// error is nil on clean EOF.
func (t *TCP) Pump(cfg pipeline.ReadBufferConfig, sink func([]byte) error) error {
	size := int(cfg.AllocationSize)
	if size <= 0 {
		size = 2048
	}
	for {
		buf := make([]byte, size)
		n, err := t.conn.Read(buf)
		if n > 0 {
			if serr := sink(buf[:n]); serr != nil {
				return errors.Trace(serr)
			}
		}
		if err != nil {
			if errors.Cause(err) == io.EOF {
				return nil
			}
			return errors.Trace(err)
		}
	}
}

// writeLoop flushes queued writes in submission order, then closes the
// connection once the die signal arrives and the queue is drained.
func (t *TCP) writeLoop() {
	defer func() {
		err := t.conn.Close()
		if err != nil {
			t.closing.Fail(errors.Trace(err))
			return
		}
		t.closing.Complete()
	}()

	for {
		select {
		case w := <-t.chSend:
			t.flush(w)

		case <-t.chDie:
			for {
				select {
				case w := <-t.chSend:
					t.flush(w)
				default:
					return
				}
			}
		}
	}
}

func (t *TCP) flush(w pendingWrite) {
	if _, err := t.conn.Write(w.data); err != nil {
		w.promise.Fail(errors.Trace(err))
		return
	}
	w.promise.Complete()
}
