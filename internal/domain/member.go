package domain

import "strings"

// Member is one directory entry from the export.
type Member struct {
	ID        string
	FirstName string
	LastName  string
	Username  string
}

// DisplayName resolves the name shown in community views: trimmed
// "first last", falling back to the username, falling back to "Unknown".
func (m Member) DisplayName() string {
	full := strings.TrimSpace(strings.TrimSpace(m.FirstName) + " " + strings.TrimSpace(m.LastName))
	if full != "" {
		return full
	}
	if handle := strings.TrimSpace(m.Username); handle != "" {
		return handle
	}
	return unknownName
}

const unknownName = "Unknown"

// MemberIndex is a lookup from member ID to directory record, built once per
// request from the export and read-only afterwards.
type MemberIndex struct {
	byID map[string]Member
}

// NewMemberIndex builds the index. Later duplicates win, matching the export
// writer which emits each member at most once.
func NewMemberIndex(members []Member) MemberIndex {
	byID := make(map[string]Member, len(members))
	for _, m := range members {
		if m.ID == "" {
			continue
		}
		byID[m.ID] = m
	}
	return MemberIndex{byID: byID}
}

// Lookup returns the member record for the given ID.
func (idx MemberIndex) Lookup(id string) (Member, bool) {
	m, ok := idx.byID[id]
	return m, ok
}

// DisplayName resolves a display name for the given ID, returning "Unknown"
// for members missing from the directory.
func (idx MemberIndex) DisplayName(id string) string {
	if m, ok := idx.byID[id]; ok {
		return m.DisplayName()
	}
	return unknownName
}

// Size returns the number of indexed members.
func (idx MemberIndex) Size() int {
	return len(idx.byID)
}
