package database

import "github.com/jackc/pgx/v5/pgxpool"

// Stats represents database connection pool statistics.
type Stats struct {
	OpenConnections int
	InUse           int
	Idle            int
}

// Stats reports pool statistics. Pools that do not expose them report zeros.
func (p *PgxDatabase) Stats() Stats {
	sp, ok := p.pool.(interface{ Stat() *pgxpool.Stat })
	if !ok {
		return Stats{}
	}
	s := sp.Stat()
	return Stats{
		OpenConnections: int(s.TotalConns()),
		InUse:           int(s.AcquiredConns()),
		Idle:            int(s.IdleConns()),
	}
}

// Stats reports database/sql pool statistics.
func (s *SqlDatabase) Stats() Stats {
	if s.db == nil {
		return Stats{}
	}
	st := s.db.Stats()
	return Stats{
		OpenConnections: st.OpenConnections,
		InUse:           st.InUse,
		Idle:            st.Idle,
	}
}
