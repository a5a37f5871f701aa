// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package jobcache

import (
	"time"

	"trac.io/trac/pkg/pb"
)

// Grant duration bounds. Zero asks for the default.
const (
	MinTicketDuration     = time.Second
	MaxTicketDuration     = 5 * time.Minute
	DefaultTicketDuration = 30 * time.Second
)

// Ticket grants its holder exclusive writes to one entry until it
// expires or is closed. The zero Ticket is not held.
type Ticket struct {
	key       string
	revision  int64
	grantTime time.Time
	expiry    time.Time

	superseded bool
	missing    bool
}

// SupersededTicket marks a grant attempt that lost against a newer
// revision or a live ticket.
func SupersededTicket(key string) Ticket {
	return Ticket{key: key, superseded: true}
}

// MissingTicket marks a grant attempt against an entry that is not in
// the cache.
func MissingTicket(key string) Ticket {
	return Ticket{key: key, missing: true}
}

// Key returns the entry key the ticket refers to.
func (ticket Ticket) Key() string { return ticket.key }

// Revision returns the revision the ticket was granted against.
func (ticket Ticket) Revision() int64 { return ticket.revision }

// Superseded reports whether the grant lost to a newer revision.
func (ticket Ticket) Superseded() bool { return ticket.superseded }

// Missing reports whether the grant found no entry.
func (ticket Ticket) Missing() bool { return ticket.missing }

// Held reports whether the ticket authorizes writes at now. Sentinel
// and expired tickets are never held.
func (ticket Ticket) Held(now time.Time) bool {
	if ticket.superseded || ticket.missing || ticket.grantTime.IsZero() {
		return false
	}
	return now.Before(ticket.expiry)
}

// clampDuration bounds a requested grant duration.
func clampDuration(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return DefaultTicketDuration
	case d < MinTicketDuration:
		return MinTicketDuration
	case d > MaxTicketDuration:
		return MaxTicketDuration
	}
	return d
}

// wireTicket converts a ticket to its stored form.
func wireTicket(ticket Ticket) *pb.CacheTicket {
	return &pb.CacheTicket{
		Key:             ticket.key,
		Revision:        ticket.revision,
		GrantTimeMicros: micros(ticket.grantTime),
		ExpiryMicros:    micros(ticket.expiry),
	}
}

// sameTicket reports whether a stored ticket is the presented one.
func sameTicket(stored *pb.CacheTicket, ticket Ticket) bool {
	return stored != nil &&
		stored.Key == ticket.key &&
		stored.Revision == ticket.revision &&
		stored.GrantTimeMicros == micros(ticket.grantTime) &&
		stored.ExpiryMicros == micros(ticket.expiry)
}

// ticketLive reports whether a stored ticket still blocks other
// grants at now.
func ticketLive(stored *pb.CacheTicket, now time.Time) bool {
	return stored != nil && micros(now) < stored.ExpiryMicros
}

func micros(t time.Time) int64 {
	return t.UnixNano() / int64(time.Microsecond)
}

func fromMicros(m int64) time.Time {
	return time.Unix(m/1e6, (m%1e6)*1000).UTC()
}
