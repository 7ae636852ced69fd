package handlers

import (
	"bytes"
	"encoding/binary"

	"github.com/pingcap/errors"

	"github.com/lonng/conduit/concurrent"
	"github.com/lonng/conduit/pipeline"
)

// Wire format: every frame is a 4-byte big-endian payload length followed by
// the payload.
const frameHeadLength = 4

var (
	// ErrFrameTooLarge is surfaced as an inbound exception when a frame
	// header announces a payload beyond the decoder's limit.
	ErrFrameTooLarge = errors.New("handlers: frame exceeds maximum length")
)

// FrameDecoder splits the inbound byte stream into length-prefixed frames.
// Partial frames are buffered until the rest arrives; a single buffer may
// also carry several frames, each fired separately in wire order.
type FrameDecoder struct {
	maxFrameLength uint32
	buf            bytes.Buffer
}

// NewFrameDecoder builds a decoder rejecting frames longer than
// maxFrameLength bytes. The interface return type lets assembly calls infer
// their edge types.
func NewFrameDecoder(maxFrameLength uint32) pipeline.InboundHandler[[]byte, []byte] {
	return &FrameDecoder{maxFrameLength: maxFrameLength}
}

func (d *FrameDecoder) Read(ctx pipeline.InboundContext[[]byte], data []byte) {
	d.buf.Write(data)
	for d.buf.Len() >= frameHeadLength {
		length := binary.BigEndian.Uint32(d.buf.Bytes()[:frameHeadLength])
		if length > d.maxFrameLength {
			d.buf.Reset()
			ctx.FireReadException(errors.Annotatef(ErrFrameTooLarge, "%d > %d", length, d.maxFrameLength))
			return
		}
		if uint32(d.buf.Len()-frameHeadLength) < length {
			return
		}
		d.buf.Next(frameHeadLength)
		frame := make([]byte, length)
		d.buf.Read(frame)
		ctx.FireRead(frame)
	}
}

func (d *FrameDecoder) ReadEOF(ctx pipeline.InboundContext[[]byte]) {
	ctx.FireReadEOF()
}

func (d *FrameDecoder) ReadException(ctx pipeline.InboundContext[[]byte], err error) {
	ctx.FireReadException(err)
}

func (d *FrameDecoder) TransportActive(ctx pipeline.InboundContext[[]byte]) {
	ctx.FireTransportActive()
}

func (d *FrameDecoder) TransportInactive(ctx pipeline.InboundContext[[]byte]) {
	ctx.FireTransportInactive()
}

func (d *FrameDecoder) AttachPipeline(pipeline.InboundContext[[]byte]) {
	d.buf.Reset()
}

func (d *FrameDecoder) DetachPipeline(pipeline.InboundContext[[]byte]) {}

// FramePrepender prefixes every outbound payload with its length.
type FramePrepender struct{}

func NewFramePrepender() pipeline.OutboundHandler[[]byte, []byte] {
	return &FramePrepender{}
}

func (p *FramePrepender) Write(ctx pipeline.OutboundContext[[]byte], msg []byte) *concurrent.Future {
	framed := make([]byte, frameHeadLength+len(msg))
	binary.BigEndian.PutUint32(framed, uint32(len(msg)))
	copy(framed[frameHeadLength:], msg)
	return ctx.FireWrite(framed)
}

func (p *FramePrepender) Close(ctx pipeline.OutboundContext[[]byte]) *concurrent.Future {
	return ctx.FireClose()
}

func (p *FramePrepender) AttachPipeline(pipeline.OutboundContext[[]byte]) {}

func (p *FramePrepender) DetachPipeline(pipeline.OutboundContext[[]byte]) {}
