package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent     RoleType = "student"
	RoleEventMember RoleType = "event-member"
	RoleAdmin       RoleType = "admin"
)

// Valid reports whether r is one of the closed set of roles
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleEventMember, RoleAdmin:
		return true
	}
	return false
}

// EventCategory classifies an event
type EventCategory string

const (
	CategoryTechnical EventCategory = "technical"
	CategoryCultural  EventCategory = "cultural"
	CategorySports    EventCategory = "sports"
	CategoryWorkshop  EventCategory = "workshop"
)

// EventCategories lists every category in display order
var EventCategories = []EventCategory{CategoryTechnical, CategoryCultural, CategorySports, CategoryWorkshop}

// Valid reports whether c is a known category
func (c EventCategory) Valid() bool {
	for _, known := range EventCategories {
		if c == known {
			return true
		}
	}
	return false
}

// EventStatus is managed by the event owner or an admin
type EventStatus string

const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// Valid reports whether s is a known status
func (s EventStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
