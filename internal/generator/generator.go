package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Tap is one generated interaction in export wire format.
type Tap struct {
	User1ID   string   `json:"user1_id"`
	User2ID   string   `json:"user2_id"`
	Time      string   `json:"time"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// User is one generated member profile in export wire format.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// Document is a complete synthetic export, shaped like the data reader's
// data-export response.
type Document struct {
	Taps  []Tap  `json:"taps"`
	Users []User `json:"users"`
}

// Generator produces synthetic community data with clustered social
// behaviour: most taps happen inside a member's home cluster.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

var (
	firstNames = []string{
		"Ava", "Ben", "Cora", "Dev", "Elena", "Felix", "Gia", "Hugo",
		"Iris", "Jonah", "Kira", "Liam", "Mara", "Noah", "Opal", "Priya",
		"Quinn", "Rosa", "Sam", "Tara", "Uri", "Vera", "Wes", "Yara", "Zane",
	}
	lastNames = []string{
		"Adler", "Brooks", "Castillo", "Dayan", "Ellis", "Fuentes", "Grant",
		"Hale", "Ito", "Joshi", "Kim", "Lang", "Moreau", "Nakamura", "Ochoa",
		"Park", "Reyes", "Silva", "Tran", "Vance", "Walsh", "Young", "Zhou",
	}
	// Geo hotspots where tap events tend to occur.
	hotspots = [][2]float64{
		{30.2672, -97.7431},
		{30.2850, -97.7335},
		{30.2500, -97.7500},
		{30.4014, -97.7174},
	}
)

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumMembers <= 0 {
		cfg.NumMembers = def.NumMembers
	}
	if cfg.NumTaps <= 0 {
		cfg.NumTaps = def.NumTaps
	}
	if cfg.NumClusters <= 0 {
		cfg.NumClusters = def.NumClusters
	}
	if cfg.CrossClusterChance <= 0 {
		cfg.CrossClusterChance = def.CrossClusterChance
	}
	if cfg.GeoChance < 0 {
		cfg.GeoChance = def.GeoChance
	}
	if cfg.DaysOfHistory <= 0 {
		cfg.DaysOfHistory = def.DaysOfHistory
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate synthesises members and taps. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Document, error) {
	users := make([]User, g.cfg.NumMembers)
	clusters := make([][]int, g.cfg.NumClusters)

	for i := 0; i < g.cfg.NumMembers; i++ {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}
		first := firstNames[g.rand.Intn(len(firstNames))]
		last := lastNames[g.rand.Intn(len(lastNames))]
		users[i] = User{
			ID:        fmt.Sprintf("MEM-%04d", i+1),
			FirstName: first,
			LastName:  last,
			Username:  fmt.Sprintf("%s%s%d", first, last, i+1),
		}
		cluster := g.rand.Intn(g.cfg.NumClusters)
		clusters[cluster] = append(clusters[cluster], i)
	}

	now := time.Now().UTC()
	span := time.Duration(g.cfg.DaysOfHistory) * 24 * time.Hour
	taps := make([]Tap, 0, g.cfg.NumTaps)

	for len(taps) < g.cfg.NumTaps {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}

		cluster := clusters[g.rand.Intn(g.cfg.NumClusters)]
		if len(cluster) < 2 {
			continue
		}
		a := cluster[g.rand.Intn(len(cluster))]
		var b int
		if g.rand.Float64() < g.cfg.CrossClusterChance {
			b = g.rand.Intn(g.cfg.NumMembers)
		} else {
			b = cluster[g.rand.Intn(len(cluster))]
		}
		if a == b {
			continue
		}

		at := now.Add(-time.Duration(g.rand.Int63n(int64(span))))
		tap := Tap{
			User1ID: users[a].ID,
			User2ID: users[b].ID,
			Time:    at.Format(time.RFC3339),
		}
		if g.rand.Float64() < g.cfg.GeoChance {
			spot := hotspots[g.rand.Intn(len(hotspots))]
			lat := spot[0] + (g.rand.Float64()-0.5)*0.02
			lng := spot[1] + (g.rand.Float64()-0.5)*0.02
			tap.Latitude = &lat
			tap.Longitude = &lng
		}
		taps = append(taps, tap)
	}

	return Document{Taps: taps, Users: users}, nil
}
