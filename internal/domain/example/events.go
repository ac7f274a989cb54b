package example

import "github.com/juaoantonio/clean-arch-ddd-template/internal/domain"

// Event names.
const (
	EventCreated     = "example.created"
	EventNameChanged = "example.name_changed"
	EventAgeChanged  = "example.age_changed"
)

// Created is recorded when an Example is created.
type Created struct {
	domain.BaseEvent

	Name string `json:"name"`
	Age  int    `json:"age"`
}

// EventName implements domain.DomainEvent.
func (Created) EventName() string { return EventCreated }

// NameChanged is recorded when an Example is renamed.
type NameChanged struct {
	domain.BaseEvent

	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// EventName implements domain.DomainEvent.
func (NameChanged) EventName() string { return EventNameChanged }

// AgeChanged is recorded when the age of an Example changes.
type AgeChanged struct {
	domain.BaseEvent

	Previous int `json:"previous"`
	Current  int `json:"current"`
}

// EventName implements domain.DomainEvent.
func (AgeChanged) EventName() string { return EventAgeChanged }
