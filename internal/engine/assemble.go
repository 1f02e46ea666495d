package engine

import (
	"fmt"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// Warning records one degraded section of a payload. A warning with an empty
// Section is emitted verbatim.
type Warning struct {
	Section string
	Message string
}

func (w Warning) String() string {
	if w.Section == "" {
		return w.Message
	}
	return w.Section + "_error:" + w.Message
}

const geoWarning = "geo_expansion not computed: no geohash in taps"

func warningStrings(warnings []Warning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.String()
	}
	return out
}

// Assembler turns a fetched export into view payloads. Every section runs
// through a recovery wrapper: a panicking section yields a Warning and its
// zero value, and the response shape stays complete.
type Assembler struct {
	source string
	nowFn  func() time.Time
	coll   *collate.Collator
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithClock overrides the assembler's notion of now.
func WithClock(nowFn func() time.Time) Option {
	return func(a *Assembler) { a.nowFn = nowFn }
}

// WithCollator overrides the collation used for display-name ordering.
func WithCollator(coll *collate.Collator) Option {
	return func(a *Assembler) { a.coll = coll }
}

// NewAssembler builds an assembler stamping the given source label into every
// payload.
func NewAssembler(source string, opts ...Option) *Assembler {
	a := &Assembler{
		source: source,
		nowFn:  time.Now,
		coll:   collate.New(language.English, collate.IgnoreCase),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// section runs fn, converting a panic into a warning for the named section.
func section(name string, warnings *[]Warning, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			*warnings = append(*warnings, Warning{Section: name, Message: fmt.Sprint(r)})
		}
	}()
	fn()
}

// WeeklyParams scope the weekly recap view.
type WeeklyParams struct {
	UserID     string
	TimeWindow string
	Debug      bool
}

// RadarParams scope the hourly personal-activity view.
type RadarParams struct {
	UserID string
	Hours  int
	Debug  bool
}

// NetworkParams scope the hourly network-activity view.
type NetworkParams struct {
	UserID string
	Hours  int
	Mode   BucketMode
	Debug  bool
}

// QuestsParams scope the weekly quests view.
type QuestsParams struct {
	UserID string
	Debug  bool
}

// HealthParams scope the relationship health view.
type HealthParams struct {
	UserID string
	Debug  bool
}

func windowEvents(events []domain.InteractionEvent, win Window) []domain.InteractionEvent {
	out := make([]domain.InteractionEvent, 0, len(events))
	for _, ev := range events {
		if ev.Valid() && win.Contains(ev.OccurredAt) {
			out = append(out, ev)
		}
	}
	return out
}

func (a *Assembler) degreeEntries(members []DegreeMember, idx domain.MemberIndex, firstDegree bool) []DegreeEntry {
	out := make([]DegreeEntry, len(members))
	for i, m := range members {
		via := "direct"
		if !firstDegree {
			via = idx.DisplayName(m.Via)
		}
		out[i] = DegreeEntry{MemberID: m.MemberID, Name: m.Name, ConnectedVia: via}
	}
	return out
}

func bucketPayloads(buckets []Bucket) []BucketPayload {
	out := make([]BucketPayload, len(buckets))
	for i, b := range buckets {
		participants := make([]NamedCount, len(b.Participants))
		for j, p := range b.Participants {
			participants[j] = NamedCount{MemberID: p.MemberID, Name: p.Name, Count: p.Count}
		}
		out[i] = BucketPayload{
			TS:            b.Start.Format(time.RFC3339),
			ActivityCount: b.ActivityCount,
			UniquePeople:  b.UniquePeople,
			Participants:  participants,
		}
	}
	return out
}

func hasCoordinates(events []domain.InteractionEvent) bool {
	for _, ev := range events {
		if ev.HasCoordinates() {
			return true
		}
	}
	return false
}

// Weekly assembles the weekly recap payload.
func (a *Assembler) Weekly(exp domain.Export, p WeeklyParams) WeeklyPayload {
	started := time.Now()
	now := a.nowFn().UTC()
	idx := domain.NewMemberIndex(exp.Members)

	spec := p.TimeWindow
	if spec == "" {
		spec = DefaultWindowSpec
	}
	canonical := NormalizeWindowSpec(spec)
	win := ResolveWindow(spec, now)
	inWindow := windowEvents(exp.Taps, win)

	var warnings []Warning

	var degrees Degrees
	section("degree_calculation", &warnings, func() {
		degrees = ResolveDegrees(BuildAdjacency(inWindow), p.UserID, idx)
	})

	var daily []ActivityDay
	section("community_activity", &warnings, func() {
		for _, d := range DailySeries(exp.Taps, win) {
			daily = append(daily, ActivityDay{Day: d.Day, Taps: d.Taps})
		}
	})

	var momentum Momentum
	section("momentum", &warnings, func() {
		momentum = ComputeMomentum(exp.Taps, p.UserID, win)
	})

	var boards LeaderboardBlock
	section("leaderboard", &warnings, func() {
		boards = LeaderboardBlock{
			NewConnections:    []NewConnectionRow{},
			CommunityBuilders: []BuilderRow{},
			StreakMasters:     []StreakMasterRow{},
			Connectors:        []ConnectorRow{},
		}
		for _, e := range NewConnectionLeaders(exp.Taps, p.UserID, win, idx) {
			boards.NewConnections = append(boards.NewConnections, NewConnectionRow{
				MemberID:  e.MemberID,
				Name:      e.Name,
				TapCount:  e.Count,
				LastTapAt: e.LastSeen.UTC().Format(time.RFC3339),
			})
		}
		for _, e := range CommunityBuilders(exp.Taps, win, idx) {
			boards.CommunityBuilders = append(boards.CommunityBuilders, BuilderRow{
				MemberID: e.MemberID,
				Name:     e.Name,
				TapCount: e.Count,
			})
		}
		for _, e := range StreakMasters(exp.Taps, win, idx) {
			boards.StreakMasters = append(boards.StreakMasters, StreakMasterRow{
				MemberID:   e.MemberID,
				Name:       e.Name,
				ActiveDays: e.Count,
				LastTapAt:  e.LastSeen.UTC().Format(time.RFC3339),
			})
		}
		for _, e := range ExpandedReach(exp.Taps, win, idx) {
			boards.Connectors = append(boards.Connectors, ConnectorRow{
				MemberID:       e.MemberID,
				Name:           e.Name,
				NewConnections: e.Count,
			})
		}
	})

	recommendations := []Recommendation{}
	section("recommendations", &warnings, func() {
		fullAdj := BuildAdjacency(exp.Taps)
		for _, c := range Recommend(fullAdj, p.UserID, idx, a.coll) {
			recommendations = append(recommendations, Recommendation{
				MemberID:  c.MemberID,
				Name:      c.Name,
				Scores:    RecommendationScores{Total: c.Score, MutualConnections: c.MutualCount},
				Mutuals:   c.MutualNames,
				MutualIDs: c.MutualIDs,
				Explain:   fmt.Sprintf("Connected through %d mutual friends", c.MutualCount),
				Degree:    2,
			})
		}
	})

	if !hasCoordinates(exp.Taps) {
		warnings = append(warnings, Warning{Message: geoWarning})
	}

	year, week := ISOWeek(now)
	payload := WeeklyPayload{
		Source:      a.source,
		GeneratedAt: now.Format(time.RFC3339),
		Week: WeekBlock{
			Year:       year,
			ISOWeek:    week,
			Range:      []string{win.Start.UTC().Format(dateLayout), win.End.UTC().Format(dateLayout)},
			TimeWindow: canonical,
		},
		Recap: RecapBlock{
			FirstDegreeNew:    a.degreeEntries(degrees.First, idx, true),
			SecondDegreeNew:   a.degreeEntries(degrees.Second, idx, false),
			ThirdDegreeNew:    a.degreeEntries(degrees.Third, idx, false),
			CommunityActivity: daily,
			GeoExpansion:      []GeoCluster{},
		},
		Momentum: MomentumBlock{
			CurrentStreakDays: momentum.Streaks.CurrentDays,
			LongestStreakDays: momentum.Streaks.LongestDays,
			WeeklyTaps:        momentum.WindowTaps,
			NewConnections:    momentum.NewConnections,
			WeeklyGoal:        WeeklyGoal{Progress: momentum.WindowTaps, TargetTaps: 25},
		},
		Leaderboard:     boards,
		Recommendations: recommendations,
		Meta: WeeklyMeta{
			Source:     a.source,
			DurationMS: time.Since(started).Milliseconds(),
			UserID:     p.UserID,
			Watermark:  now.Format(time.RFC3339),
			TimeWindow: canonical,
			Warnings:   warningStrings(warnings),
		},
	}

	if p.Debug {
		pairs := make(map[string]struct{})
		for _, ev := range inWindow {
			pairs[ev.PairKey()] = struct{}{}
		}
		payload.Meta.Debug = &WeeklyDebug{
			UsersMapped:         idx.Size(),
			TimeWindowRaw:       spec,
			WindowStart:         win.Start.UTC().Format(time.RFC3339),
			WindowEnd:           win.End.UTC().Format(time.RFC3339),
			TapsInWindow:        len(inWindow),
			UniquePairsInWindow: len(pairs),
			DegreeCounts: DegreeCounts{
				First:  len(degrees.First),
				Second: len(degrees.Second),
				Third:  len(degrees.Third),
			},
			DroppedTaps: exp.DroppedTaps,
		}
	}
	return payload
}

// Radar assembles the hourly personal-activity payload.
func (a *Assembler) Radar(exp domain.Export, p RadarParams) RadarPayload {
	started := time.Now()
	now := a.nowFn().UTC()
	idx := domain.NewMemberIndex(exp.Members)

	var warnings []Warning

	var buckets []Bucket
	section("radar", &warnings, func() {
		buckets = RadarSeries(exp.Taps, p.UserID, now, p.Hours, idx)
	})

	top := []NamedCount{}
	section("top_current_window", &warnings, func() {
		if len(buckets) == 0 {
			return
		}
		current := buckets[len(buckets)-1]
		for i, participant := range current.Participants {
			if i == 5 {
				break
			}
			top = append(top, NamedCount{
				MemberID: participant.MemberID,
				Name:     participant.Name,
				Count:    participant.Count,
			})
		}
	})

	payload := RadarPayload{
		Source:           a.source,
		UserID:           p.UserID,
		Window:           RadarWindow{Hours: p.Hours, End: now.Format(time.RFC3339)},
		Buckets:          bucketPayloads(buckets),
		TopCurrentWindow: top,
		Meta: RadarMeta{
			DurationMS: time.Since(started).Milliseconds(),
			Warnings:   warningStrings(warnings),
		},
	}

	if p.Debug {
		totalTaps := 0
		people := make(map[string]struct{})
		currentWindowTaps := 0
		for _, ev := range exp.Taps {
			if !ev.Valid() || !ev.Touches(p.UserID) {
				continue
			}
			totalTaps++
			people[ev.Counterpart(p.UserID)] = struct{}{}
			if now.Sub(ev.OccurredAt) < time.Hour {
				currentWindowTaps++
			}
		}
		var start string
		if len(buckets) > 0 {
			start = buckets[0].Start.Format(time.RFC3339)
		}
		payload.Meta.Debug = &RadarDebug{
			TotalTaps:         totalTaps,
			BucketsProcessed:  len(buckets),
			CurrentWindowTaps: currentWindowTaps,
			UniquePeopleTotal: len(people),
			WindowStart:       start,
			WindowEnd:         now.Format(time.RFC3339),
			DroppedTaps:       exp.DroppedTaps,
		}
	}
	return payload
}

// Network assembles the hourly network-activity payload. The member roster is
// the focal member plus every member within three degrees over the same span.
func (a *Assembler) Network(exp domain.Export, p NetworkParams) NetworkPayload {
	started := time.Now()
	now := a.nowFn().UTC()
	idx := domain.NewMemberIndex(exp.Members)

	win := Window{Start: now.Add(-time.Duration(p.Hours) * time.Hour), End: now}
	inWindow := windowEvents(exp.Taps, win)

	var warnings []Warning

	roster := map[string]struct{}{p.UserID: {}}
	section("network_members", &warnings, func() {
		degrees := ResolveDegrees(BuildAdjacency(inWindow), p.UserID, idx)
		for _, ring := range [][]DegreeMember{degrees.First, degrees.Second, degrees.Third} {
			for _, m := range ring {
				roster[m.MemberID] = struct{}{}
			}
		}
	})

	var buckets []Bucket
	section("network", &warnings, func() {
		buckets = NetworkSeries(exp.Taps, roster, now, p.Hours, p.Mode, idx)
	})

	totalTaps := 0
	for _, b := range buckets {
		totalTaps += b.ActivityCount
	}

	uniqueConnections := 0
	if p.Mode == ModeConnections {
		counterparts := make(map[string]map[string]struct{})
		for _, ev := range inWindow {
			if _, ok := roster[ev.MemberA]; !ok {
				continue
			}
			if _, ok := roster[ev.MemberB]; !ok {
				continue
			}
			for _, pair := range [][2]string{{ev.MemberA, ev.MemberB}, {ev.MemberB, ev.MemberA}} {
				set, ok := counterparts[pair[0]]
				if !ok {
					set = make(map[string]struct{})
					counterparts[pair[0]] = set
				}
				set[pair[1]] = struct{}{}
			}
		}
		for _, set := range counterparts {
			uniqueConnections += len(set)
		}
	}

	nameMap := make(map[string]string, len(roster))
	for memberID := range roster {
		if name := idx.DisplayName(memberID); name != "Unknown" {
			nameMap[memberID] = name
		}
	}

	payload := NetworkPayload{
		Source:  a.source,
		Buckets: bucketPayloads(buckets),
		Meta: NetworkMeta{
			DurationMS:             time.Since(started).Milliseconds(),
			NameMap:                nameMap,
			NetworkMembers:         len(roster),
			TotalNetworkTaps:       totalTaps,
			TotalUniqueConnections: uniqueConnections,
			Warnings:               warningStrings(warnings),
		},
	}

	if p.Debug {
		payload.Meta.Debug = &NetworkDebug{
			NetworkMembers: len(roster),
			TotalTaps:      len(inWindow),
			NetworkTaps:    totalTaps,
			BucketsCreated: len(buckets),
			NameMapSize:    len(nameMap),
			WindowStart:    win.Start.Format(time.RFC3339),
			WindowEnd:      win.End.Format(time.RFC3339),
			DroppedTaps:    exp.DroppedTaps,
		}
	}
	return payload
}

// Quests assembles the weekly quest-progress payload.
func (a *Assembler) Quests(exp domain.Export, p QuestsParams) QuestsPayload {
	started := time.Now()
	now := a.nowFn().UTC()

	var warnings []Warning

	quests := []QuestPayload{}
	section("quests", &warnings, func() {
		for _, q := range ComputeQuests(exp.Taps, p.UserID, now) {
			quests = append(quests, QuestPayload{
				ID:       q.ID,
				Title:    q.Title,
				Progress: q.Progress,
				Target:   q.Target,
				Unit:     q.Unit,
			})
		}
	})

	year, week := ISOWeek(now)
	payload := QuestsPayload{
		Source: a.source,
		UserID: p.UserID,
		Week:   WeekBlock{Year: year, ISOWeek: week},
		Quests: quests,
		Meta: QuestsMeta{
			DurationMS: time.Since(started).Milliseconds(),
			Warnings:   warningStrings(warnings),
		},
	}

	if p.Debug {
		bounds := ISOWeekBounds(now, time.UTC)
		weeklyTaps := 0
		counterparts := make(map[string]struct{})
		for _, ev := range exp.Taps {
			if !ev.Valid() || !ev.Touches(p.UserID) || !bounds.Contains(ev.OccurredAt) {
				continue
			}
			weeklyTaps++
			counterparts[ev.Counterpart(p.UserID)] = struct{}{}
		}
		payload.Meta.Debug = &QuestsDebug{
			WeeklyTaps:     weeklyTaps,
			NewFirstDegree: len(counterparts),
			StreakDays:     CurrentStreak(exp.Taps, p.UserID, bounds),
			WeekStart:      bounds.Start.Format(time.RFC3339),
			WeekEnd:        bounds.End.Format(time.RFC3339),
		}
	}
	return payload
}

// Health assembles the relationship health payload.
func (a *Assembler) Health(exp domain.Export, p HealthParams) HealthPayload {
	started := time.Now()
	now := a.nowFn().UTC()
	idx := domain.NewMemberIndex(exp.Members)

	var warnings []Warning

	relationships := []RelationshipRow{}
	var scored int
	section("relationships", &warnings, func() {
		rows := RelationshipHealth(exp.Taps, p.UserID, now, idx, a.coll)
		scored = len(rows)
		for _, r := range rows {
			relationships = append(relationships, RelationshipRow{
				MemberID:      r.MemberID,
				Name:          r.Name,
				Taps30d:       r.Taps30d,
				Taps90d:       r.Taps90d,
				DaysSinceLast: r.DaysSinceLast,
				Strength:      r.Strength,
				Bucket:        r.Bucket,
			})
		}
	})

	payload := HealthPayload{
		Source:        a.source,
		UserID:        p.UserID,
		Relationships: relationships,
		Meta: HealthMeta{
			DurationMS: time.Since(started).Milliseconds(),
			Warnings:   warningStrings(warnings),
		},
	}

	if p.Debug {
		payload.Meta.Debug = &HealthDebug{
			CounterpartsScored: scored,
			DroppedTaps:        exp.DroppedTaps,
		}
	}
	return payload
}
