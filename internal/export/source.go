package export

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/domain"
)

// Source supplies the full community export every view is computed from.
type Source interface {
	Fetch(ctx context.Context) (domain.Export, error)
	Ping(ctx context.Context) error
}

// ErrUnavailable marks a fetch failure caused by the upstream reader rather
// than the request itself. Handlers translate it to 502.
var ErrUnavailable = errors.New("reader unavailable")

// Wire types for the data-export document. Tap endpoints arrive under two
// generations of field names; member profiles may nest under basic_info.
type wireTap struct {
	User1ID           string   `json:"user1_id"`
	ID1               string   `json:"id1"`
	User2ID           string   `json:"user2_id"`
	ID2               string   `json:"id2"`
	Time              string   `json:"time"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	FormattedLocation string   `json:"formatted_location"`
}

type wireBasicInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

type wireUser struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Username  string         `json:"username"`
	BasicInfo *wireBasicInfo `json:"basic_info"`
}

type wireExport struct {
	Taps  []wireTap  `json:"taps"`
	Users []wireUser `json:"users"`
}

var tapTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func parseTapTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range tapTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func (t wireTap) endpoints() (string, string) {
	a := t.User1ID
	if a == "" {
		a = t.ID1
	}
	b := t.User2ID
	if b == "" {
		b = t.ID2
	}
	return a, b
}

// fromWire converts the raw document into domain types, dropping malformed
// taps and counting them.
func fromWire(raw wireExport) domain.Export {
	exp := domain.Export{
		Taps:    make([]domain.InteractionEvent, 0, len(raw.Taps)),
		Members: make([]domain.Member, 0, len(raw.Users)),
	}
	for _, tap := range raw.Taps {
		a, b := tap.endpoints()
		at, ok := parseTapTime(tap.Time)
		ev := domain.InteractionEvent{
			MemberA:       a,
			MemberB:       b,
			OccurredAt:    at,
			Latitude:      tap.Latitude,
			Longitude:     tap.Longitude,
			ResolvedPlace: tap.FormattedLocation,
		}
		if !ok || !ev.Valid() {
			exp.DroppedTaps++
			continue
		}
		exp.Taps = append(exp.Taps, ev)
	}
	for _, user := range raw.Users {
		id := user.ID
		if id == "" {
			id = user.UserID
		}
		if id == "" {
			continue
		}
		member := domain.Member{
			ID:        id,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Username:  user.Username,
		}
		if info := user.BasicInfo; info != nil {
			if info.FirstName != "" {
				member.FirstName = info.FirstName
			}
			if info.LastName != "" {
				member.LastName = info.LastName
			}
			if info.Username != "" {
				member.Username = info.Username
			}
		}
		exp.Members = append(exp.Members, member)
	}
	return exp
}
