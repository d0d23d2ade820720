package middleware

import (
	"github.com/gin-gonic/gin"

	"event-prep-engine/internal/model"
)

const scopeKey = "scope"

// Scope headers identify the calling household and device. A reverse
// proxy or mobile client sets them; absent headers fall back to the
// configured defaults so a single-household deployment works unconfigured.
const (
	HeaderHouseholdID = "X-Household-ID"
	HeaderUserID      = "X-User-ID"
	HeaderDeviceID    = "X-Device-ID"
)

// Scope extracts the caller's scope from request headers and stores it
// in the gin context for downstream handlers.
func (m Middleware) Scope(defaultHouseholdID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sc := model.Scope{
			HouseholdID: c.GetHeader(HeaderHouseholdID),
			UserID:      c.GetHeader(HeaderUserID),
			DeviceID:    c.GetHeader(HeaderDeviceID),
		}
		if sc.HouseholdID == "" {
			sc.HouseholdID = defaultHouseholdID
		}
		c.Set(scopeKey, sc)
		c.Next()
	}
}

// GetScope returns the scope stored by the Scope middleware. A zero
// scope is returned when the middleware did not run.
func GetScope(c *gin.Context) model.Scope {
	v, ok := c.Get(scopeKey)
	if !ok {
		return model.Scope{}
	}
	sc, ok := v.(model.Scope)
	if !ok {
		return model.Scope{}
	}
	return sc
}
