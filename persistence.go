package accounts

import (
	"github.com/goliatone/go-persistence-bun"
)

// RegisterModels registers the account models with the persistence layer so
// fixtures and migrations can resolve them by name.
func RegisterModels() {
	persistence.RegisterModel((*User)(nil))
	persistence.RegisterModel((*Subscription)(nil))
}
