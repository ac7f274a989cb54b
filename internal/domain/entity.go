package domain

// Identifiable is anything carrying an identifier of type ID.
type Identifiable[ID Identifier] interface {
	ID() ID
}

// Entity is the base for objects distinguished by identity. Embed it in
// concrete entities; each instance owns its notification.
type Entity[ID Identifier] struct {
	id           ID
	notification *Notification
}

// NewEntity creates the entity base for id with an empty notification.
func NewEntity[ID Identifier](id ID) Entity[ID] {
	return Entity[ID]{id: id, notification: NewNotification()}
}

// ID returns the identifier.
func (e *Entity[ID]) ID() ID {
	return e.id
}

// Notification returns the validation errors recorded on this instance.
func (e *Entity[ID]) Notification() *Notification {
	if e.notification == nil {
		e.notification = NewNotification()
	}

	return e.notification
}

// Equals reports whether other has the same identifier. Attributes are not
// compared.
func (e *Entity[ID]) Equals(other Identifiable[ID]) bool {
	if isNil(other) {
		return false
	}

	return e.id.Equals(other.ID())
}
