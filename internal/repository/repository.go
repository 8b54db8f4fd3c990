package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	bolt "go.etcd.io/bbolt"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Backend names reported by Store.Backend.
const (
	BackendMongo       = "mongodb"
	BackendPostgres    = "postgres"
	BackendBolt        = "bolt"
	BackendUnavailable = "unavailable"
)

// defaultMongoDatabase is used when the connection string names no database.
const defaultMongoDatabase = "contactDB"

// pingTimeout bounds the connectivity check made by Open.
const pingTimeout = 5 * time.Second

// mongoServerSelectionTimeout caps how long a MongoDB operation waits for a
// reachable server. It must stay below the HTTP write timeout so a request
// against a down store still gets its 500 written.
const mongoServerSelectionTimeout = pingTimeout

// Store bundles the contact repository with the connection it runs on.
type Store struct {
	Backend  string
	Contacts ContactRepository
	DB       DB

	migrate func(ctx context.Context) error
	drop    func(ctx context.Context) error
	close   func(ctx context.Context) error
}

// Migrate creates the tables, indexes or buckets the backend needs.
func (s *Store) Migrate(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(ctx)
}

// Reset drops all stored contact messages and schema, then migrates again.
func (s *Store) Reset(ctx context.Context) error {
	if s.drop != nil {
		if err := s.drop(ctx); err != nil {
			return err
		}
	}
	return s.Migrate(ctx)
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewPool creates a PostgreSQL connection pool and checks it with a ping.
// The pool is returned even when the ping fails so callers can run degraded.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		return pool, err
	}
	return pool, nil
}

// Open connects to the store named by uri. The scheme picks the backend:
// mongodb:// and mongodb+srv:// for MongoDB, postgres:// and postgresql://
// for PostgreSQL, bolt://<path> for an embedded bbolt file.
//
// Open always returns a usable Store. When the connection cannot be set up
// the returned store fails every operation with ErrUnavailable; when it is set
// up but unreachable the store is returned together with the ping error.
func Open(ctx context.Context, uri string) (*Store, error) {
	scheme, _, _ := strings.Cut(uri, "://")
	switch strings.ToLower(scheme) {
	case "mongodb", "mongodb+srv":
		return openMongo(ctx, uri)
	case "postgres", "postgresql":
		return openPostgres(ctx, uri)
	case "bolt":
		return OpenBolt(strings.TrimPrefix(uri, scheme+"://"))
	default:
		err := fmt.Errorf("repository: unsupported connection string scheme %q", scheme)
		return Unavailable(err), err
	}
}

func openMongo(ctx context.Context, uri string) (*Store, error) {
	// serverSelectionTimeoutMS in the connection string still wins.
	opts := options.Client().SetServerSelectionTimeout(mongoServerSelectionTimeout).ApplyURI(uri)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		err = fmt.Errorf("repository: connect mongodb: %w", err)
		return Unavailable(err), err
	}

	repo := NewMongoContactRepository(client.Database(mongoDatabase(uri)).Collection(contactCollection))
	s := &Store{
		Backend:  BackendMongo,
		Contacts: repo,
		DB:       repo,
		migrate:  repo.EnsureIndexes,
		drop:     repo.Drop,
		close:    client.Disconnect,
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := repo.Ping(pingCtx); err != nil {
		return s, fmt.Errorf("repository: ping mongodb: %w", err)
	}
	return s, nil
}

// mongoDatabase extracts the database name from the connection string path.
func mongoDatabase(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultMongoDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return defaultMongoDatabase
}

func openPostgres(ctx context.Context, uri string) (*Store, error) {
	pool, err := NewPool(ctx, uri)
	if pool == nil {
		err = fmt.Errorf("repository: connect postgres: %w", err)
		return Unavailable(err), err
	}

	s := &Store{
		Backend:  BackendPostgres,
		Contacts: NewPgContactRepository(pool),
		DB:       pool,
		migrate:  func(ctx context.Context) error { return MigratePostgres(ctx, pool) },
		drop:     func(ctx context.Context) error { return DropPostgres(ctx, pool) },
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}
	if err != nil {
		return s, fmt.Errorf("repository: ping postgres: %w", err)
	}
	return s, nil
}

// OpenBolt opens (or creates) a bbolt database file.
func OpenBolt(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		err = fmt.Errorf("repository: open bolt %q: %w", path, err)
		return Unavailable(err), err
	}
	repo, err := NewBoltContactRepository(db)
	if err != nil {
		_ = db.Close()
		return Unavailable(err), err
	}
	return &Store{
		Backend:  BackendBolt,
		Contacts: repo,
		DB:       repo,
		migrate:  func(context.Context) error { return repo.EnsureBucket() },
		drop:     repo.Drop,
		close:    func(context.Context) error { return db.Close() },
	}, nil
}
