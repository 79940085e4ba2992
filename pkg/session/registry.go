package session

import (
	"hash/fnv"
	"sync"
)

const shardCount = 32

// GroupKey returns the broadcast group key for a session id.
func GroupKey(sessionID string) string {
	return "ai_processing_" + sessionID
}

// Registry is the broadcast-group registry: group key -> set of connection
// handles. It is the only cross-request mutable shared state, sharded so
// reconnect storms on one session never contend with unrelated sessions.
// Join and Leave are idempotent.
type Registry struct {
	shards [shardCount]*registryShard
}

type registryShard struct {
	mu     sync.RWMutex
	groups map[string]map[*Conn]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i] = &registryShard{groups: make(map[string]map[*Conn]struct{})}
	}
	return r
}

// Join adds a connection to a group.
func (r *Registry) Join(group string, c *Conn) {
	s := r.shardFor(group)

	s.mu.Lock()
	defer s.mu.Unlock()

	members, ok := s.groups[group]
	if !ok {
		members = make(map[*Conn]struct{})
		s.groups[group] = members
	}
	members[c] = struct{}{}
}

// Leave removes a connection from a group. Removing a connection that never
// joined, or leaving twice, is a no-op.
func (r *Registry) Leave(group string, c *Conn) {
	s := r.shardFor(group)

	s.mu.Lock()
	defer s.mu.Unlock()

	members, ok := s.groups[group]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(s.groups, group)
	}
}

// Size returns the current number of connections in a group.
func (r *Registry) Size(group string) int {
	s := r.shardFor(group)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.groups[group])
}

// Broadcast fans a message out to every connection in a group.
func (r *Registry) Broadcast(group string, msg any) {
	s := r.shardFor(group)

	s.mu.RLock()
	members := make([]*Conn, 0, len(s.groups[group]))
	for c := range s.groups[group] {
		members = append(members, c)
	}
	s.mu.RUnlock()

	for _, c := range members {
		c.Queue(msg)
	}
}

func (r *Registry) shardFor(group string) *registryShard {
	h := fnv.New32a()
	h.Write([]byte(group))
	return r.shards[h.Sum32()%shardCount]
}
