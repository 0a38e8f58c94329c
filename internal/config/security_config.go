package config

import (
	"fmt"

	"unimitr-backend/internal/domain"
)

// SecurityLevel is the capability a caller needs for an operation.
type SecurityLevel string

const (
	SecurityAnonymous SecurityLevel = "anonymous" // No authentication
	SecurityStaff     SecurityLevel = "staff"     // Access token with is_staff
)

// Operation names one endpoint family of a content domain.
type Operation string

const (
	OpList             Operation = "list"
	OpGet              Operation = "get"
	OpCreate           Operation = "create"
	OpUpdate           Operation = "update"
	OpDelete           Operation = "delete"
	OpTransition       Operation = "transition"
	OpSubmit           Operation = "submit"
	OpMyActions        Operation = "my_actions"
	OpListActions      Operation = "list_actions"
	OpTransitionAction Operation = "transition_action"
)

var operations = []Operation{
	OpList, OpGet, OpCreate, OpUpdate, OpDelete, OpTransition,
	OpSubmit, OpMyActions, OpListActions, OpTransitionAction,
}

// DomainAccess maps each operation of one domain to its security level.
type DomainAccess map[Operation]SecurityLevel

// AccessConfig is keyed by domain kind, e.g. "events".
type AccessConfig map[domain.Kind]DomainAccess

func open() DomainAccess {
	return DomainAccess{
		OpList:             SecurityAnonymous,
		OpGet:              SecurityAnonymous,
		OpCreate:           SecurityAnonymous,
		OpUpdate:           SecurityAnonymous,
		OpDelete:           SecurityAnonymous,
		OpTransition:       SecurityAnonymous,
		OpSubmit:           SecurityAnonymous,
		OpMyActions:        SecurityAnonymous,
		OpListActions:      SecurityStaff,
		OpTransitionAction: SecurityAnonymous,
	}
}

func staffManaged() DomainAccess {
	return DomainAccess{
		OpList:             SecurityAnonymous,
		OpGet:              SecurityAnonymous,
		OpCreate:           SecurityStaff,
		OpUpdate:           SecurityStaff,
		OpDelete:           SecurityStaff,
		OpTransition:       SecurityStaff,
		OpSubmit:           SecurityAnonymous,
		OpMyActions:        SecurityAnonymous,
		OpListActions:      SecurityStaff,
		OpTransitionAction: SecurityStaff,
	}
}

// DefaultAccess returns the built-in policy: events, clubs and volunteering
// are community managed; internships and workshops are staff managed.
func DefaultAccess() AccessConfig {
	return AccessConfig{
		domain.KindEvents:       open(),
		domain.KindClubs:        open(),
		domain.KindVolunteering: open(),
		domain.KindInternships:  staffManaged(),
		domain.KindWorkshops:    staffManaged(),
	}
}

// withDefaults fills cells missing from the YAML and rejects unknown values.
func (a AccessConfig) withDefaults() (AccessConfig, error) {
	merged := DefaultAccess()
	for kind, ops := range a {
		base, ok := merged[kind]
		if !ok {
			return nil, fmt.Errorf("access: unknown domain %q", kind)
		}
		for op, level := range ops {
			if _, ok := base[op]; !ok {
				return nil, fmt.Errorf("access.%s: unknown operation %q", kind, op)
			}
			if level != SecurityAnonymous && level != SecurityStaff {
				return nil, fmt.Errorf("access.%s.%s: invalid level %q", kind, op, level)
			}
			base[op] = level
		}
	}
	return merged, nil
}

// GetSecurityLevel returns the level for an operation on a domain
func (a AccessConfig) GetSecurityLevel(kind domain.Kind, op Operation) SecurityLevel {
	if ops, ok := a[kind]; ok {
		if level, ok := ops[op]; ok {
			return level
		}
	}
	// Default to highest security for unknown endpoints
	return SecurityStaff
}

// Operations lists every configurable operation.
func Operations() []Operation {
	return append([]Operation(nil), operations...)
}
