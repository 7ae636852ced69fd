package transport

import (
	"net"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pingcap/errors"

	"github.com/lonng/conduit/concurrent"
	"github.com/lonng/conduit/pipeline"
)

const closeGracePeriod = time.Second

// WebSocket adapts a gorilla websocket connection into a pipeline.Transport.
// Every pipeline write becomes one binary websocket message. Close sends a
// close frame after pending writes have drained.
type WebSocket struct {
	id      int64
	conn    *websocket.Conn
	chSend  chan pendingWrite
	chDie   chan struct{}
	closing *concurrent.Promise
}

// NewWebSocket wraps conn and starts its write goroutine.
func NewWebSocket(conn *websocket.Conn) *WebSocket {
	t := &WebSocket{
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
func (t *WebSocket) ID() int64 {
	return t.id
}

// RemoteAddr returns the peer address.
func (t *WebSocket) RemoteAddr() net.Addr {
	return t.conn.RemoteAddr()
}

func (t *WebSocket) Write(p []byte) *concurrent.Future {
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

func (t *WebSocket) Close() *concurrent.Future {
	select {
	case <-t.chDie:
	default:
		close(t.chDie)
	}
	return t.closing.Future()
}

// Pump reads binary messages until the peer closes, handing each payload to
// sink. Websocket messages arrive pre-framed, so the read-buffer hint only
// applies to transports that expose a raw byte stream; it is accepted here
// for interface symmetry and ignored.
func (t *WebSocket) Pump(_ pipeline.ReadBufferConfig, sink func([]byte) error) error {
	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return errors.Trace(err)
		}
		if serr := sink(data); serr != nil {
			return errors.Trace(serr)
		}
	}
}

func (t *WebSocket) writeLoop() {
	defer func() {
		err := t.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeGracePeriod))
		if cerr := t.conn.Close(); err == nil {
			err = cerr
		}
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

func (t *WebSocket) flush(w pendingWrite) {
	if err := t.conn.WriteMessage(websocket.BinaryMessage, w.data); err != nil {
		w.promise.Fail(errors.Trace(err))
		return
	}
	w.promise.Complete()
}
