package security

// In-memory user registry for the token endpoint. Stands in for the real
// identity provider in dev and test environments; production deployments
// terminate auth upstream and forward the provider's JWT unchanged.
type User struct {
	ID       string
	Secret   string
	IsAdmin  bool
	Disabled bool
}

var Users = map[string]User{
	"demo-shopper": {ID: "demo-shopper", Secret: "demo-shopper-secret"},
	"demo-admin":   {ID: "demo-admin", Secret: "demo-admin-secret", IsAdmin: true},
}
