// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

// Package grpcweb bridges gRPC-Web clients to native gRPC upstreams.
// Requests are re-framed onto HTTP/2 and the upstream trailers come
// back to the browser as a trailer frame at the end of the body.
package grpcweb

import (
	"crypto/tls"
	"encoding/base64"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"google.golang.org/grpc/codes"

	"trac.io/trac/gateway/route"
)

// Error is the grpc-web bridge error class.
var Error = errs.Class("grpcweb")

const (
	contentTypeGRPC    = "application/grpc"
	contentTypeWeb     = "application/grpc-web"
	contentTypeWebText = "application/grpc-web-text"
)

// Bridge is an http.Handler translating gRPC-Web calls into native
// gRPC calls against the target of the route on the request context.
type Bridge struct {
	log       *zap.Logger
	transport *http2.Transport
}

// New creates a bridge over a shared plaintext HTTP/2 transport.
func New(log *zap.Logger) *Bridge {
	return &Bridge{
		log: log,
		transport: &http2.Transport{
			AllowHTTP: true,
			DialTLS: func(network, addr string, _ *tls.Config) (net.Conn, error) {
				return net.DialTimeout(network, addr, 10*time.Second)
			},
		},
	}
}

// ServeHTTP implements http.Handler.
func (bridge *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	matched, ok := route.FromContext(r.Context())
	if !ok {
		http.Error(w, "no route", http.StatusNotFound)
		return
	}

	contentType := r.Header.Get("Content-Type")
	isText, suffix, ok := splitWebContentType(contentType)
	if !ok {
		http.Error(w, "unsupported content type", http.StatusUnsupportedMediaType)
		return
	}

	var body io.Reader = r.Body
	if isText {
		body = base64.NewDecoder(base64.StdEncoding, r.Body)
	}

	upstream, err := http.NewRequest(http.MethodPost, "http://"+matched.Target.Authority()+r.URL.Path, body)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	upstream = upstream.WithContext(r.Context())
	copyRequestHeaders(upstream.Header, r.Header)
	upstream.Header.Set("Content-Type", contentTypeGRPC+suffix)
	upstream.Header.Set("Te", "trailers")

	resp, err := bridge.transport.RoundTrip(upstream)
	if err != nil {
		bridge.log.Warn("grpc upstream failed",
			zap.String("method", r.URL.Path),
			zap.String("upstream", matched.Target.Authority()),
			zap.Error(err))
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	responseType := contentTypeWeb + suffix
	if isText {
		responseType = contentTypeWebText + suffix
	}
	copyResponseHeaders(w.Header(), resp.Header)
	w.Header().Set("Content-Type", responseType)
	w.WriteHeader(resp.StatusCode)

	out := newFrameWriter(w, isText)
	if err := bridge.copyFrames(out, resp.Body); err != nil {
		// headers are gone, all we can do is drop the stream
		bridge.log.Warn("grpc-web stream aborted", zap.Error(err))
		return
	}
	if err := out.writeFrame(flagTrailer, trailerBlock(resp)); err != nil {
		bridge.log.Warn("grpc-web trailer write failed", zap.Error(err))
	}
}

// copyFrames relays data frames one at a time so each one can be
// separately encoded and flushed.
func (bridge *Bridge) copyFrames(out *frameWriter, body io.Reader) error {
	for {
		flag, payload, err := readFrame(body)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := out.writeFrame(flag, payload); err != nil {
			return err
		}
	}
}

// trailerBlock renders the upstream trailers as the grpc-web trailer
// payload. A trailers-only response carries its status in the headers
// instead, so those are consulted as a fallback.
func trailerBlock(resp *http.Response) []byte {
	trailer := resp.Trailer
	if trailer.Get("Grpc-Status") == "" && resp.Header.Get("Grpc-Status") != "" {
		trailer = http.Header{}
		for name, values := range resp.Header {
			if strings.HasPrefix(name, "Grpc-") {
				trailer[name] = values
			}
		}
	}
	if trailer.Get("Grpc-Status") == "" {
		trailer = http.Header{}
		trailer.Set("Grpc-Status", "2")
		trailer.Set("Grpc-Message", codes.Internal.String())
	}

	names := make([]string, 0, len(trailer))
	for name := range trailer {
		names = append(names, name)
	}
	sort.Strings(names)

	var block strings.Builder
	for _, name := range names {
		for _, value := range trailer[name] {
			block.WriteString(strings.ToLower(name))
			block.WriteString(": ")
			block.WriteString(value)
			block.WriteString("\r\n")
		}
	}
	return []byte(block.String())
}

// splitWebContentType recognizes the grpc-web content types and
// returns the text flag and the message encoding suffix.
func splitWebContentType(contentType string) (isText bool, suffix string, ok bool) {
	switch {
	case contentType == contentTypeWebText || strings.HasPrefix(contentType, contentTypeWebText+"+"):
		return true, strings.TrimPrefix(contentType, contentTypeWebText), true
	case contentType == contentTypeWeb || strings.HasPrefix(contentType, contentTypeWeb+"+"):
		return false, strings.TrimPrefix(contentType, contentTypeWeb), true
	}
	return false, "", false
}

// headers with per-hop or framing meaning that must not cross the
// protocol boundary.
var skipHeaders = map[string]bool{
	"Connection":        true,
	"Keep-Alive":        true,
	"Te":                true,
	"Trailer":           true,
	"Transfer-Encoding": true,
	"Upgrade":           true,
	"Content-Type":      true,
	"Content-Length":    true,
	"Accept-Encoding":   true,
	"Grpc-Status":       true,
	"Grpc-Message":      true,
}

func copyRequestHeaders(dst, src http.Header) {
	for name, values := range src {
		if skipHeaders[name] {
			continue
		}
		dst[name] = values
	}
}

func copyResponseHeaders(dst, src http.Header) {
	for name, values := range src {
		if skipHeaders[name] {
			continue
		}
		dst[name] = values
	}
}

// frameWriter writes grpc-web frames, base64 encoding each frame on
// its own in text mode, and flushes after every frame.
type frameWriter struct {
	w      http.ResponseWriter
	isText bool
}

func newFrameWriter(w http.ResponseWriter, isText bool) *frameWriter {
	return &frameWriter{w: w, isText: isText}
}

func (fw *frameWriter) writeFrame(flag byte, payload []byte) error {
	var out io.Writer = fw.w
	var finish func() error
	if fw.isText {
		encoder := base64.NewEncoder(base64.StdEncoding, fw.w)
		out, finish = encoder, encoder.Close
	}

	if err := writeFrame(out, flag, payload); err != nil {
		return err
	}
	if finish != nil {
		if err := finish(); err != nil {
			return Error.Wrap(err)
		}
	}
	if flusher, ok := fw.w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
