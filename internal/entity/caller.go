package domain

// Caller is the authenticated identity a request acts as. The id is opaque
// (issued by the identity provider); IsAdmin is the only capability flag
// the engine understands.
type Caller struct {
	ID      string
	IsAdmin bool
}

// CanCancel allows the order's owner or an admin.
func (c Caller) CanCancel(o *Order) bool {
	return c.ID == o.UserID || c.IsAdmin
}

// CanComplete is admin-only.
func (c Caller) CanComplete() bool {
	return c.IsAdmin
}
