package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/creastat/stream-gateway/pkg/logger"
)

func TestGroupKey(t *testing.T) {
	if got := GroupKey("abc-123"); got != "ai_processing_abc-123" {
		t.Errorf("GroupKey = %q", got)
	}
}

func TestRegistry_JoinLeave(t *testing.T) {
	r := NewRegistry()
	group := GroupKey("s1")

	conns := make([]*Conn, 10)
	for i := range conns {
		conns[i] = newConn(nil, logger.Nop())
		r.Join(group, conns[i])
	}
	if got := r.Size(group); got != 10 {
		t.Fatalf("size after joins = %d, want 10", got)
	}

	// Joining twice does not double-count.
	r.Join(group, conns[0])
	if got := r.Size(group); got != 10 {
		t.Errorf("size after duplicate join = %d, want 10", got)
	}

	for _, c := range conns {
		r.Leave(group, c)
	}
	if got := r.Size(group); got != 0 {
		t.Errorf("size after leaves = %d, want 0", got)
	}

	// Leaving again, or leaving a group that never existed, is a no-op.
	r.Leave(group, conns[0])
	r.Leave(GroupKey("never-joined"), conns[0])
	if got := r.Size(group); got != 0 {
		t.Errorf("size after redundant leaves = %d", got)
	}
}

func TestRegistry_GroupsAreIsolated(t *testing.T) {
	r := NewRegistry()
	a, b := GroupKey("a"), GroupKey("b")

	c1 := newConn(nil, logger.Nop())
	c2 := newConn(nil, logger.Nop())
	r.Join(a, c1)
	r.Join(b, c2)

	r.Leave(a, c1)
	if got := r.Size(b); got != 1 {
		t.Errorf("leaving group a changed group b: size = %d", got)
	}
}

func TestRegistry_Broadcast(t *testing.T) {
	r := NewRegistry()
	group := GroupKey("fanout")

	c1 := newConn(nil, logger.Nop())
	c2 := newConn(nil, logger.Nop())
	other := newConn(nil, logger.Nop())
	r.Join(group, c1)
	r.Join(group, c2)
	r.Join(GroupKey("elsewhere"), other)

	r.Broadcast(group, map[string]string{"type": "notice"})

	for i, c := range []*Conn{c1, c2} {
		select {
		case data := <-c.send:
			if string(data) != `{"type":"notice"}` {
				t.Errorf("conn %d received %s", i, data)
			}
		default:
			t.Errorf("conn %d received nothing", i)
		}
	}

	select {
	case data := <-other.send:
		t.Errorf("connection outside the group received %s", data)
	default:
	}
}

func TestRegistry_ConcurrentChurn(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			group := GroupKey(fmt.Sprintf("s%d", i%8))
			c := newConn(nil, logger.Nop())
			for j := 0; j < 100; j++ {
				r.Join(group, c)
				r.Size(group)
				r.Leave(group, c)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		group := GroupKey(fmt.Sprintf("s%d", i))
		if got := r.Size(group); got != 0 {
			t.Errorf("group %s size = %d after churn, want 0", group, got)
		}
	}
}
