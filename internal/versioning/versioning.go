// Package versioning maintains the append-only version history carried by
// financial records.
//
// A versioned record starts at version 1 with a single "created" entry.
// Each resource declares which fields are version-significant; a mutation
// touching any of them bumps the version by exactly one and appends one
// history entry. Mutations touching only exempt fields (side-effect
// timestamps, "email was sent" flags) leave version state untouched.
// Repositories commit bumps conditionally on the expected current version,
// so a losing concurrent writer observes a conflict instead of silently
// reusing a version number.
package versioning

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Actions recorded in history entries.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// Entry is one immutable audit record. Its Version equals its 1-based
// position in the history.
type Entry struct {
	Version   int       `json:"version"`
	ActorID   uint      `json:"actorId"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
}

// History is the ordered, append-only sequence of entries. It is stored
// as a JSON text column.
type History []Entry

// Value implements driver.Valuer.
func (h History) Value() (driver.Value, error) {
	if h == nil {
		h = History{}
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (h *History) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*h = History{}
		return nil
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	default:
		return errors.New("versioning: unsupported history column type")
	}
}

// Versioned is the embeddable version state of a financial record.
type Versioned struct {
	Version        int     `gorm:"not null;default:1" json:"version"`
	VersionHistory History `gorm:"column:version_history;type:text" json:"versionHistory"`
	CreatedBy      uint    `gorm:"column:created_by" json:"createdBy"`
	UpdatedBy      uint    `gorm:"column:updated_by" json:"updatedBy"`
}

// NewRecord returns the initial version state for a record being created.
func NewRecord(actorID uint, now time.Time) Versioned {
	return Versioned{
		Version: 1,
		VersionHistory: History{{
			Version:   1,
			ActorID:   actorID,
			Timestamp: now,
			Action:    ActionCreated,
		}},
		CreatedBy: actorID,
		UpdatedBy: actorID,
	}
}

// Policy is a resource's set of version-significant field names.
type Policy struct {
	significant map[string]struct{}
}

// NewPolicy declares the version-significant fields of a resource.
func NewPolicy(fields ...string) Policy {
	m := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		m[f] = struct{}{}
	}
	return Policy{significant: m}
}

// Significant reports whether any changed field is version-significant.
func (p Policy) Significant(changed []string) bool {
	for _, f := range changed {
		if _, ok := p.significant[f]; ok {
			return true
		}
	}
	return false
}

// Apply stamps a proposed mutation onto the version state. If any changed
// field is significant it bumps the version and appends one "updated"
// entry, returning true; otherwise it only records the acting user and
// returns false. The caller must persist the bump atomically with the
// field changes, conditional on the previous version.
func (p Policy) Apply(v *Versioned, changed []string, actorID uint, now time.Time) bool {
	v.UpdatedBy = actorID
	if !p.Significant(changed) {
		return false
	}
	v.Version++
	v.VersionHistory = append(v.VersionHistory, Entry{
		Version:   v.Version,
		ActorID:   actorID,
		Timestamp: now,
		Action:    ActionUpdated,
	})
	return true
}
