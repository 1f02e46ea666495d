package engine

// Response payload types. Field names match the JSON contract the charting
// clients already consume, including the legacy names carried over from the
// first deployment.

// NamedCount is a member with an attached count, used for bucket participants
// and the radar top list.
type NamedCount struct {
	MemberID string `json:"user_id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// DegreeEntry is one member of a degree-of-separation ring.
type DegreeEntry struct {
	MemberID     string `json:"user_id"`
	Name         string `json:"name"`
	ConnectedVia string `json:"connected_via"`
}

// ActivityDay is one day of the community activity series.
type ActivityDay struct {
	Day  string `json:"day"`
	Taps int    `json:"taps"`
}

// GeoCluster is a placeholder slot in the recap; populated only when events
// carry coordinates.
type GeoCluster struct {
	Place string `json:"place"`
	Taps  int    `json:"taps"`
}

// WeekBlock identifies the ISO week a payload describes. Range and TimeWindow
// are present on the weekly view only.
type WeekBlock struct {
	Year       int      `json:"year"`
	ISOWeek    int      `json:"iso_week"`
	Range      []string `json:"range,omitempty"`
	TimeWindow string   `json:"time_window,omitempty"`
}

// RecapBlock is the weekly degree recap.
type RecapBlock struct {
	FirstDegreeNew    []DegreeEntry `json:"first_degree_new"`
	SecondDegreeNew   []DegreeEntry `json:"second_degree_new"`
	ThirdDegreeNew    []DegreeEntry `json:"third_degree_new"`
	CommunityActivity []ActivityDay `json:"community_activity"`
	GeoExpansion      []GeoCluster  `json:"geo_expansion"`
}

// WeeklyGoal tracks progress toward the fixed weekly tap target.
type WeeklyGoal struct {
	Progress   int `json:"progress"`
	TargetTaps int `json:"target_taps"`
}

// MomentumBlock is the weekly streak and volume summary.
type MomentumBlock struct {
	CurrentStreakDays int        `json:"current_streak_days"`
	LongestStreakDays int        `json:"longest_streak_days"`
	WeeklyTaps        int        `json:"weekly_taps"`
	NewConnections    int        `json:"new_connections"`
	WeeklyGoal        WeeklyGoal `json:"weekly_goal"`
}

// NewConnectionRow is one entry on the personal tap-volume board.
type NewConnectionRow struct {
	MemberID  string `json:"user_id"`
	Name      string `json:"name"`
	TapCount  int    `json:"tap_count"`
	LastTapAt string `json:"last_tap_at"`
}

// BuilderRow is one entry on the global volume board. The count field keeps
// its legacy name for chart compatibility.
type BuilderRow struct {
	MemberID string `json:"user_id"`
	Name     string `json:"name"`
	TapCount int    `json:"delta_second_degree"`
}

// StreakMasterRow is one entry on the distinct-active-days board.
type StreakMasterRow struct {
	MemberID   string `json:"user_id"`
	Name       string `json:"name"`
	ActiveDays int    `json:"active_days"`
	LastTapAt  string `json:"last_tap_at"`
}

// ConnectorRow is one entry on the expanded-reach board.
type ConnectorRow struct {
	MemberID       string `json:"user_id"`
	Name           string `json:"name"`
	NewConnections int    `json:"new_connections"`
}

// LeaderboardBlock groups the four weekly boards.
type LeaderboardBlock struct {
	NewConnections    []NewConnectionRow `json:"new_connections"`
	CommunityBuilders []BuilderRow       `json:"community_builders"`
	StreakMasters     []StreakMasterRow  `json:"streak_masters"`
	Connectors        []ConnectorRow     `json:"connectors"`
}

// RecommendationScores breaks down a recommendation's ranking inputs.
type RecommendationScores struct {
	Total             float64 `json:"total"`
	MutualConnections int     `json:"mutual_connections"`
}

// Recommendation is one suggested connection with its mutual-friend evidence.
type Recommendation struct {
	MemberID  string               `json:"user_id"`
	Name      string               `json:"name"`
	Scores    RecommendationScores `json:"scores"`
	Mutuals   []string             `json:"mutuals"`
	MutualIDs []string             `json:"mutual_ids"`
	Explain   string               `json:"explain"`
	Degree    int                  `json:"degree"`
}

// DegreeCounts summarizes ring sizes for debug meta.
type DegreeCounts struct {
	First  int `json:"first"`
	Second int `json:"second"`
	Third  int `json:"third"`
}

// WeeklyDebug is the optional diagnostics block on the weekly view.
type WeeklyDebug struct {
	UsersMapped         int          `json:"users_mapped"`
	TimeWindowRaw       string       `json:"tw_raw"`
	WindowStart         string       `json:"window_start"`
	WindowEnd           string       `json:"window_end"`
	TapsInWindow        int          `json:"taps_in_window"`
	UniquePairsInWindow int          `json:"unique_pairs_in_window"`
	DegreeCounts        DegreeCounts `json:"degree_counts"`
	DroppedTaps         int          `json:"dropped_taps"`
}

// WeeklyMeta carries timing, provenance and degradation info.
type WeeklyMeta struct {
	Source     string       `json:"source"`
	DurationMS int64        `json:"duration_ms"`
	UserID     string       `json:"user_id"`
	Watermark  string       `json:"watermark"`
	TimeWindow string       `json:"time_window"`
	Warnings   []string     `json:"warnings"`
	Debug      *WeeklyDebug `json:"debug,omitempty"`
}

// WeeklyPayload is the full weekly recap response.
type WeeklyPayload struct {
	Source          string           `json:"source"`
	GeneratedAt     string           `json:"generated_at"`
	Week            WeekBlock        `json:"week"`
	Recap           RecapBlock       `json:"recap"`
	Momentum        MomentumBlock    `json:"momentum"`
	Leaderboard     LeaderboardBlock `json:"leaderboard"`
	Recommendations []Recommendation `json:"recommendations"`
	Meta            WeeklyMeta       `json:"meta"`
}

// BucketPayload is one serialized hour bucket.
type BucketPayload struct {
	TS            string       `json:"ts"`
	ActivityCount int          `json:"activity_count"`
	UniquePeople  int          `json:"unique_people"`
	Participants  []NamedCount `json:"participants"`
}

// RadarWindow describes the lookback span of a radar response.
type RadarWindow struct {
	Hours int    `json:"hours"`
	End   string `json:"end"`
}

// RadarDebug is the optional diagnostics block on the radar view.
type RadarDebug struct {
	TotalTaps         int    `json:"total_taps"`
	BucketsProcessed  int    `json:"buckets_processed"`
	CurrentWindowTaps int    `json:"current_window_taps"`
	UniquePeopleTotal int    `json:"unique_people_total"`
	WindowStart       string `json:"window_start"`
	WindowEnd         string `json:"window_end"`
	DroppedTaps       int    `json:"dropped_taps"`
}

// RadarMeta carries timing and degradation info for the radar view.
type RadarMeta struct {
	DurationMS int64       `json:"duration_ms"`
	Warnings   []string    `json:"warnings"`
	Debug      *RadarDebug `json:"debug,omitempty"`
}

// RadarPayload is the hourly personal-activity response.
type RadarPayload struct {
	Source           string          `json:"source"`
	UserID           string          `json:"user_id"`
	Window           RadarWindow     `json:"window"`
	Buckets          []BucketPayload `json:"buckets"`
	TopCurrentWindow []NamedCount    `json:"top_current_window"`
	Meta             RadarMeta       `json:"meta"`
}

// NetworkDebug is the optional diagnostics block on the network view.
type NetworkDebug struct {
	NetworkMembers int    `json:"network_members"`
	TotalTaps      int    `json:"total_taps"`
	NetworkTaps    int    `json:"network_taps"`
	BucketsCreated int    `json:"buckets_created"`
	NameMapSize    int    `json:"name_map_size"`
	WindowStart    string `json:"window_start"`
	WindowEnd      string `json:"window_end"`
	DroppedTaps    int    `json:"dropped_taps"`
}

// NetworkMeta carries the member roster summary alongside timing info.
type NetworkMeta struct {
	DurationMS             int64             `json:"duration_ms"`
	NameMap                map[string]string `json:"name_map"`
	NetworkMembers         int               `json:"network_members"`
	TotalNetworkTaps       int               `json:"total_network_taps"`
	TotalUniqueConnections int               `json:"total_unique_connections"`
	Warnings               []string          `json:"warnings"`
	Debug                  *NetworkDebug     `json:"debug,omitempty"`
}

// NetworkPayload is the hourly network-activity response.
type NetworkPayload struct {
	Source  string          `json:"source"`
	Buckets []BucketPayload `json:"buckets"`
	Meta    NetworkMeta     `json:"meta"`
}

// QuestPayload is one serialized weekly quest.
type QuestPayload struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Progress int    `json:"progress"`
	Target   int    `json:"target"`
	Unit     string `json:"unit"`
}

// QuestsDebug is the optional diagnostics block on the quests view.
type QuestsDebug struct {
	WeeklyTaps     int    `json:"weekly_taps"`
	NewFirstDegree int    `json:"new_first_degree"`
	StreakDays     int    `json:"streak_days"`
	WeekStart      string `json:"week_start"`
	WeekEnd        string `json:"week_end"`
}

// QuestsMeta carries timing and degradation info for the quests view.
type QuestsMeta struct {
	DurationMS int64        `json:"duration_ms"`
	Warnings   []string     `json:"warnings"`
	Debug      *QuestsDebug `json:"debug,omitempty"`
}

// QuestsPayload is the weekly quest-progress response.
type QuestsPayload struct {
	Source string         `json:"source"`
	UserID string         `json:"user_id"`
	Week   WeekBlock      `json:"week"`
	Quests []QuestPayload `json:"quests"`
	Meta   QuestsMeta     `json:"meta"`
}

// RelationshipRow is one scored counterpart on the relationship health view.
type RelationshipRow struct {
	MemberID      string  `json:"user_id"`
	Name          string  `json:"name"`
	Taps30d       int     `json:"taps_30d"`
	Taps90d       int     `json:"taps_90d"`
	DaysSinceLast int     `json:"days_since_last"`
	Strength      float64 `json:"strength"`
	Bucket        string  `json:"bucket"`
}

// HealthDebug is the optional diagnostics block on the health view.
type HealthDebug struct {
	CounterpartsScored int `json:"counterparts_scored"`
	DroppedTaps        int `json:"dropped_taps"`
}

// HealthMeta carries timing and degradation info for the health view.
type HealthMeta struct {
	DurationMS int64        `json:"duration_ms"`
	Warnings   []string     `json:"warnings"`
	Debug      *HealthDebug `json:"debug,omitempty"`
}

// HealthPayload is the relationship health response.
type HealthPayload struct {
	Source        string            `json:"source"`
	UserID        string            `json:"user_id"`
	Relationships []RelationshipRow `json:"relationships"`
	Meta          HealthMeta        `json:"meta"`
}
