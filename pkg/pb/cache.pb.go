// Copyright (C) 2019 TRAC Platform Inc.
// See LICENSE for copying information.

package pb

import (
	proto "github.com/gogo/protobuf/proto"
	golang_proto "github.com/golang/protobuf/proto"
)

// CacheTicket grants one holder exclusive write access to one entry for a
// bounded time. Tickets are granted against a revision and become stale
// the moment a write commits a newer revision.
type CacheTicket struct {
	Key             string `protobuf:"bytes,1,opt,name=key,proto3" json:"key,omitempty"`
	Revision        int64  `protobuf:"varint,2,opt,name=revision,proto3" json:"revision,omitempty"`
	GrantTimeMicros int64  `protobuf:"varint,3,opt,name=grant_time_micros,json=grantTimeMicros,proto3" json:"grant_time_micros,omitempty"`
	ExpiryMicros    int64  `protobuf:"varint,4,opt,name=expiry_micros,json=expiryMicros,proto3" json:"expiry_micros,omitempty"`
}

func (m *CacheTicket) Reset()         { *m = CacheTicket{} }
func (m *CacheTicket) String() string { return proto.CompactTextString(m) }
func (*CacheTicket) ProtoMessage()    {}

func (m *CacheTicket) GetKey() string {
	if m != nil {
		return m.Key
	}
	return ""
}

func (m *CacheTicket) GetRevision() int64 {
	if m != nil {
		return m.Revision
	}
	return 0
}

func (m *CacheTicket) GetGrantTimeMicros() int64 {
	if m != nil {
		return m.GrantTimeMicros
	}
	return 0
}

func (m *CacheTicket) GetExpiryMicros() int64 {
	if m != nil {
		return m.ExpiryMicros
	}
	return 0
}

// CacheEntry is the stored envelope for one cache slot. Value holds the
// serialized payload; the cache itself never interprets it.
type CacheEntry struct {
	Key                string       `protobuf:"bytes,1,opt,name=key,proto3" json:"key,omitempty"`
	Revision           int64        `protobuf:"varint,2,opt,name=revision,proto3" json:"revision,omitempty"`
	Status             string       `protobuf:"bytes,3,opt,name=status,proto3" json:"status,omitempty"`
	Value              []byte       `protobuf:"bytes,4,opt,name=value,proto3" json:"value,omitempty"`
	LastActivityMicros int64        `protobuf:"varint,5,opt,name=last_activity_micros,json=lastActivityMicros,proto3" json:"last_activity_micros,omitempty"`
	Ticket             *CacheTicket `protobuf:"bytes,6,opt,name=ticket" json:"ticket,omitempty"`
}

func (m *CacheEntry) Reset()         { *m = CacheEntry{} }
func (m *CacheEntry) String() string { return proto.CompactTextString(m) }
func (*CacheEntry) ProtoMessage()    {}

func (m *CacheEntry) GetKey() string {
	if m != nil {
		return m.Key
	}
	return ""
}

func (m *CacheEntry) GetRevision() int64 {
	if m != nil {
		return m.Revision
	}
	return 0
}

func (m *CacheEntry) GetStatus() string {
	if m != nil {
		return m.Status
	}
	return ""
}

func (m *CacheEntry) GetValue() []byte {
	if m != nil {
		return m.Value
	}
	return nil
}

func (m *CacheEntry) GetLastActivityMicros() int64 {
	if m != nil {
		return m.LastActivityMicros
	}
	return 0
}

func (m *CacheEntry) GetTicket() *CacheTicket {
	if m != nil {
		return m.Ticket
	}
	return nil
}

func init() {
	proto.RegisterType((*CacheTicket)(nil), "trac.cache.CacheTicket")
	golang_proto.RegisterType((*CacheTicket)(nil), "trac.cache.CacheTicket")
	proto.RegisterType((*CacheEntry)(nil), "trac.cache.CacheEntry")
	golang_proto.RegisterType((*CacheEntry)(nil), "trac.cache.CacheEntry")
}
