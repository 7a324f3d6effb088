package ginauth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authflow/errors"
	"github.com/skillsenselab/authflow/strategy"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError derives the HTTP status and structured body from err.
// AppErrors map to their own status; anything else becomes a generic 500.
func RespondWithError(c *gin.Context, err error) {
	appErr := errors.Wrap(err)
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}

// writeOutcome maps a strategy outcome onto an HTTP response: a declined
// (nil) outcome becomes 204, an action becomes its HTTP form, and a result
// becomes a 200 envelope.
func writeOutcome(c *gin.Context, outcome *strategy.Outcome) {
	if outcome == nil {
		c.Status(http.StatusNoContent)
		return
	}
	if outcome.Action != nil {
		writeAction(c, outcome.Action)
		return
	}
	c.JSON(http.StatusOK, DataResponse{Data: outcome.Result})
}

// writeAction writes a strategy action: redirects become 302s, anything
// else is returned as data for the client to interpret.
func writeAction(c *gin.Context, act *strategy.Action) {
	if act != nil && act.Type == strategy.ActionRedirect {
		c.Redirect(http.StatusFound, act.URL)
		return
	}
	c.JSON(http.StatusOK, DataResponse{Data: act})
}
