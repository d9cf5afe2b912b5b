package database

import (
	"context"
	"database/sql"
	"sync"
)

// connPool keeps up to max dedicated connections ready for reuse. acquire
// pops an idle connection if it passes a liveness probe, else opens a new
// one; release returns a connection to the pool if under capacity, else
// closes it. The mutex guards only the idle list: a checked-out connection
// is used by exactly one caller until released.
type connPool struct {
	db  *sql.DB
	max int

	mu   sync.Mutex
	idle []*sql.Conn
}

func newConnPool(db *sql.DB, max int) *connPool {
	return &connPool{
		db:  db,
		max: max,
	}
}

func (p *connPool) acquire(ctx context.Context) (*sql.Conn, error) {
	for {
		p.mu.Lock()
		n := len(p.idle)
		if n == 0 {
			p.mu.Unlock()
			break
		}
		conn := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.mu.Unlock()

		// liveness probe; a dead connection is discarded and we try the next
		if err := conn.PingContext(ctx); err == nil {
			return conn, nil
		}
		_ = conn.Close()
	}

	return p.db.Conn(ctx)
}

func (p *connPool) release(conn *sql.Conn) {
	if conn == nil {
		return
	}

	p.mu.Lock()
	if len(p.idle) < p.max {
		p.idle = append(p.idle, conn)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	_ = conn.Close()
}

func (p *connPool) idleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

func (p *connPool) closeIdle() {
	p.mu.Lock()
	idle := p.idle
	p.idle = nil
	p.mu.Unlock()

	for _, conn := range idle {
		_ = conn.Close()
	}
}
