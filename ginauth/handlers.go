package ginauth

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authflow/errors"
	"github.com/skillsenselab/authflow/strategy"
)

// LoginHandler starts an authentication flow: it asks the strategy for its
// entry action (for OIDC, the authorization redirect) and writes it out.
func LoginHandler(s strategy.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		act, err := s.Action(c.Request.Context())
		if err != nil {
			RespondWithError(c, err)
			return
		}
		writeAction(c, act)
	}
}

// CallbackHandler completes a flow: it binds the provider's callback
// parameters (query on GET, form or JSON body on POST) into a payload,
// runs Authenticate, and writes the outcome.
//
// A request the strategy declines (no payload it recognizes) produces
// 204 No Content rather than an error, so hosts can chain strategies.
func CallbackHandler(s strategy.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload strategy.Payload
		if err := c.ShouldBind(&payload); err != nil {
			RespondWithError(c, errors.InvalidInput("payload", err.Error()))
			return
		}

		outcome, err := s.Authenticate(c.Request.Context(), &strategy.Request{Payload: &payload})
		if err != nil {
			RespondWithError(c, err)
			return
		}
		writeOutcome(c, outcome)
	}
}

// Mount registers the login and callback routes for a strategy on the
// given router. Callbacks are accepted on both GET (query parameters, the
// authorization code redirect) and POST (form or JSON body, e.g. refresh
// grants driven by a client).
func Mount(r gin.IRouter, s strategy.Strategy) {
	r.GET("/login", LoginHandler(s))
	r.GET("/callback", CallbackHandler(s))
	r.POST("/callback", CallbackHandler(s))
}
