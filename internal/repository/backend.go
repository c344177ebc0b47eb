package repository

import (
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// QueryObserver receives the duration of every named backend query. A nil
// observer disables instrumentation.
type QueryObserver interface {
	ObserveDBQuery(query string, duration time.Duration)
}

func observeQuery(obs QueryObserver, query string, started time.Time) {
	if obs == nil {
		return
	}
	obs.ObserveDBQuery(query, time.Since(started))
}

// Backend bundles the optional relational collaborators. A nil *Backend is
// the fixture operating mode: services then serve the in-memory dataset and
// never touch the network.
type Backend struct {
	Students StudentBackend
	Classes  ClassBackend
}

// NewBackend wires the Postgres-backed collaborators. Query timings are
// reported to the observer.
func NewBackend(db *sqlx.DB, observer QueryObserver) *Backend {
	return &Backend{
		Students: NewPostgresStudentBackend(db, observer),
		Classes:  NewPostgresClassBackend(db, observer),
	}
}

// Configured reports whether a live backend is present.
func (b *Backend) Configured() bool {
	return b != nil && b.Students != nil && b.Classes != nil
}

// LogMode records the resolved operating mode once at startup.
func (b *Backend) LogMode(logger *zap.Logger) {
	if logger == nil {
		return
	}
	if b.Configured() {
		logger.Info("relational backend configured, students and classes are backed by the database")
		return
	}
	logger.Warn("no relational backend configured, serving the static fixture dataset")
}
