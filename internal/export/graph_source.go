package export

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/pkg/errors"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// GraphOptions configures connectivity to the graph store.
type GraphOptions struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")

// GraphSource reads members and tap edges straight from a Bolt-compatible
// graph store, for deployments that skip the denormalized export hop.
// Neptune's openCypher endpoint speaks the same protocol, so the one driver
// covers both local Neo4j and AWS Neptune.
type GraphSource struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewGraphSource dials the graph store and verifies connectivity.
func NewGraphSource(ctx context.Context, opts GraphOptions) (*GraphSource, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	return &GraphSource{driver: driver, database: opts.Database}, nil
}

const (
	memberQuery = `MATCH (m:Member)
RETURN m.id AS id, m.first_name AS first_name, m.last_name AS last_name, m.username AS username`

	tapQuery = `MATCH (a:Member)-[t:TAPPED]->(b:Member)
RETURN a.id AS member_a, b.id AS member_b, t.occurred_at AS occurred_at,
       t.latitude AS latitude, t.longitude AS longitude, t.place AS place`
)

// Fetch loads every member node and tap edge into an export document.
func (s *GraphSource) Fetch(ctx context.Context) (domain.Export, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	var exp domain.Export

	memberRecords, err := runQuery(ctx, session, memberQuery)
	if err != nil {
		return domain.Export{}, errors.Wrap(ErrUnavailable, "read members: "+err.Error())
	}
	for _, rec := range memberRecords {
		id := stringValue(rec, "id")
		if id == "" {
			continue
		}
		exp.Members = append(exp.Members, domain.Member{
			ID:        id,
			FirstName: stringValue(rec, "first_name"),
			LastName:  stringValue(rec, "last_name"),
			Username:  stringValue(rec, "username"),
		})
	}

	tapRecords, err := runQuery(ctx, session, tapQuery)
	if err != nil {
		return domain.Export{}, errors.Wrap(ErrUnavailable, "read taps: "+err.Error())
	}
	for _, rec := range tapRecords {
		ev := domain.InteractionEvent{
			MemberA:       stringValue(rec, "member_a"),
			MemberB:       stringValue(rec, "member_b"),
			OccurredAt:    timeValue(rec, "occurred_at"),
			Latitude:      floatValue(rec, "latitude"),
			Longitude:     floatValue(rec, "longitude"),
			ResolvedPlace: stringValue(rec, "place"),
		}
		if ev.OccurredAt.IsZero() || !ev.Valid() {
			exp.DroppedTaps++
			continue
		}
		exp.Taps = append(exp.Taps, ev)
	}

	return exp, nil
}

// Ping verifies graph connectivity.
func (s *GraphSource) Ping(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

// Close releases the underlying driver.
func (s *GraphSource) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func runQuery(ctx context.Context, session neo4j.SessionWithContext, cypher string) ([]map[string]any, error) {
	res, err := session.Run(ctx, cypher, nil)
	if err != nil {
		return nil, err
	}
	var records []map[string]any
	for res.Next(ctx) {
		rec := res.Record()
		record := make(map[string]any, len(rec.Keys))
		for _, key := range rec.Keys {
			value, _ := rec.Get(key)
			record[key] = value
		}
		records = append(records, record)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func stringValue(rec map[string]any, key string) string {
	if v, ok := rec[key].(string); ok {
		return v
	}
	return ""
}

func floatValue(rec map[string]any, key string) *float64 {
	switch v := rec[key].(type) {
	case float64:
		return &v
	case int64:
		f := float64(v)
		return &f
	}
	return nil
}

func timeValue(rec map[string]any, key string) time.Time {
	switch v := rec[key].(type) {
	case time.Time:
		return v.UTC()
	case string:
		if t, ok := parseTapTime(v); ok {
			return t
		}
	}
	return time.Time{}
}
