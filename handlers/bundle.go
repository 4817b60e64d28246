package handlers

import (
	"gearbook/middleware"

	"github.com/patrickmn/go-cache"
)

// HandlerBundle groups the endpoint handlers and the pieces route
// registration needs alongside them.
type HandlerBundle struct {
	Verifier   middleware.TokenVerifier
	CacheStore *cache.Cache

	Auth     *AuthHandler
	User     *UserHandler
	Admin    *AdminHandler
	Machine  *MachineHandler
	Category *CategoryHandler
	Booking  *BookingHandler
	Review   *ReviewHandler
	Record   *RecordHandler
}
