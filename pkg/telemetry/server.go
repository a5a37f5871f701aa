// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package telemetry

import (
	"context"
	"net"

	"github.com/zeebo/admission/admproto"
	"github.com/zeebo/errs"
)

// Error is the default telemetry error class.
var Error = errs.Class("telemetry error")

const maxPacketSize = 10 * 1024

// Handler receives decoded metric values from telemetry packets.
type Handler interface {
	// Metric is called once per metric in a received packet.
	Metric(application, instance string, key []byte, val float64)
}

// HandlerFunc turns a func into a Handler.
type HandlerFunc func(application, instance string, key []byte, val float64)

// Metric implements Handler.
func (f HandlerFunc) Metric(application, instance string, key []byte, val float64) {
	f(application, instance, key, val)
}

// Server listens for telemetry packets on a UDP socket.
type Server struct {
	conn *net.UDPConn
}

// Listen opens a UDP socket on addr.
func Listen(addr string) (*Server, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return &Server{conn: conn}, nil
}

// Addr returns the address the server listens on.
func (server *Server) Addr() string {
	return server.conn.LocalAddr().String()
}

// Close shuts the underlying socket down.
func (server *Server) Close() error {
	return Error.Wrap(server.conn.Close())
}

// Serve reads packets until the context is canceled or the socket fails,
// delivering every decoded metric to handler.
func (server *Server) Serve(ctx context.Context, handler Handler) error {
	if server.conn == nil {
		return Error.New("invalid conn: %v", server.conn)
	}
	buf := make([]byte, maxPacketSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, _, err := server.conn.ReadFrom(buf)
		if err != nil {
			return Error.Wrap(err)
		}
		server.handlePacket(buf[:n], handler)
	}
}

// handlePacket decodes one admission packet. Bad packets are dropped, a
// metrics collector has no channel to complain on.
func (server *Server) handlePacket(packet []byte, handler Handler) {
	data, err := admproto.CheckChecksum(packet)
	if err != nil {
		return
	}
	var r admproto.Reader
	data, appb, instb, err := r.Begin(data)
	if err != nil {
		return
	}
	application, instance := string(appb), string(instb)
	for len(data) > 0 {
		var key []byte
		var value float64
		data, key, value, err = r.Next(data)
		if err != nil {
			return
		}
		handler.Metric(application, instance, key, value)
	}
}

// ListenAndServe combines Listen and Serve.
func ListenAndServe(ctx context.Context, addr string, handler Handler) error {
	server, err := Listen(addr)
	if err != nil {
		return err
	}
	err = server.Serve(ctx, handler)
	return errs.Combine(err, server.Close())
}
