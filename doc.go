// Copyright (c) conduit Authors. All Rights Reserved.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package conduit assembles protocol stacks from small, composable
// stream-processing stages.
//
// The core lives in the pipeline package: an ordered, bidirectional chain of
// typed handlers between a transport and application code. Inbound traffic
// (bytes arriving from the wire) flows front to back; outbound operations
// (writes issued by the application) flow back to front and hand back an
// asynchronous completion. Stock stages for length-prefix framing,
// serialization and event-loop affinity live in the handlers package, with
// TCP and WebSocket transport adapters under transport.
package conduit

// VERSION returns current conduit version
var VERSION = "0.1.0"
