package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is the account state of a user as reported by the server.
type Status int

const (
	StatusUnverified Status = 0
	StatusActive     Status = 1
	StatusBlocked    Status = 2
)

var ErrUnknownStatus = errors.New("unknown status")

var statusNames = map[Status]string{
	StatusUnverified: "Unverified",
	StatusActive:     "Active",
	StatusBlocked:    "Blocked",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Code is the numeric value the API expects in update requests.
func (s Status) Code() int {
	return int(s)
}

func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus accepts a status name (case-insensitive) or its numeric code.
func ParseStatus(v string) (Status, error) {
	v = strings.TrimSpace(v)
	if code, err := strconv.Atoi(v); err == nil && Status(code).Valid() {
		return Status(code), nil
	}
	for s, name := range statusNames {
		if strings.EqualFold(name, v) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, v)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON reads either the status name or the numeric code.
func (s *Status) UnmarshalJSON(b []byte) error {
	var code int
	if err := json.Unmarshal(b, &code); err == nil {
		if !Status(code).Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownStatus, code)
		}
		*s = Status(code)
		return nil
	}

	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownStatus, string(b))
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// User is one record of the remote user directory. Records are never
// modified locally; the whole collection is refetched after a mutation.
type User struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	RegisteredAt time.Time  `json:"registeredAt"`
	Status       Status     `json:"status"`
}

// LastSeen returns the last login time, or the zero time when the user
// never logged in.
func (u User) LastSeen() time.Time {
	if u.LastLoginAt == nil {
		return time.Time{}
	}
	return *u.LastLoginAt
}
