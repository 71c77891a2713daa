// Package types defines the Record entity, its input forms, and the standard
// errors shared by the roster client, store, and table engine.
package types

import (
	"errors"
	"strings"
)

// Record statuses. The remote service stores the status as a plain string;
// only these two values are recognized.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// validStatuses is the set of recognized status values.
var validStatuses = map[string]bool{
	StatusActive:   true,
	StatusInactive: true,
}

// ValidStatus reports whether s is a recognized status value.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Validation errors. These are resolved client-side and never reach the wire.
var (
	ErrNameRequired  = errors.New("name is required")
	ErrInvalidStatus = errors.New("invalid status value")
)

// Record is one row of the managed collection. The remote service is the
// sole authority for ID and CreatedAt: both are assigned at creation time
// and immutable thereafter. CreatedAt is a display-formatted date, not a
// machine-sortable timestamp.
type Record struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// RecordInput holds the mutable fields of a record. It is the PUT body for
// updates: full-replace semantics, ID and CreatedAt excluded.
type RecordInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// Validate checks the input client-side. Name must be non-empty after
// trimming; status, when set, must be a recognized value.
func (in RecordInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if in.Status != "" && !ValidStatus(in.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// NewRecordInput is the POST body for creation: the mutable fields plus the
// creation date stamped by the caller. The server assigns the ID.
type NewRecordInput struct {
	RecordInput
	CreatedAt string `json:"createdAt"`
}
