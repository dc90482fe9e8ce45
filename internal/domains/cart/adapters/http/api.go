// Package http exposes the cart service over gin. It is a thin dispatch
// layer: session resolution, payload mapping, and status codes live here,
// the semantics live in the application package.
package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartmapper "github.com/drdrak3/silvershop-core/internal/domains/cart/adapters/http/mapper"
	cartapp "github.com/drdrak3/silvershop-core/internal/domains/cart/application"
	cartports "github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
	sharederrors "github.com/drdrak3/silvershop-core/internal/shared/errors"
)

// SessionCookie names the cookie carrying the cart session key.
const SessionCookie = "cart_session"

const sessionCookieMaxAge = 14 * 24 * 60 * 60

// CartAPI wires HTTP transport with the cart service.
type CartAPI struct {
	service   cartports.Service
	responder *sharederrors.ChainedResponder
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{
		service:   service,
		responder: sharederrors.NewChainedResponder("", CartErrorMapper),
	}
}

// CartErrorMapper translates cart application errors into problem details.
func CartErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, cartapp.ErrNotFound), errors.Is(err, cartapp.ErrNoOrder), errors.Is(err, cartapp.ErrNoCartFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, cartapp.ErrNotPurchasable):
		return sharederrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, cartapp.ErrHookAborted):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, cartapp.ErrInvalidState):
		return sharederrors.ErrConflict.WithDetail(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}

type mutationPayload struct {
	Class    string            `json:"class"`
	ID       int64             `json:"id" binding:"required"`
	Quantity int               `json:"quantity"`
	Filter   map[string]string `json:"filter"`
}

// Get /cart
// Returns the session's current cart, empty when none is bound.
func (api *CartAPI) GetCart(c *gin.Context) {
	session := api.session(c)
	view, err := api.service.Cart(c.Request.Context(), session)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(view))
}

// Post /cart/add
// Adds quantity of a purchasable, creating the cart on first use.
func (api *CartAPI) Add(c *gin.Context) {
	payload, ok := api.bindMutation(c)
	if !ok {
		return
	}
	session := api.session(c)
	out, err := api.service.Add(c.Request.Context(), session, payload.Class, payload.ID, payload.Quantity, payload.Filter)
	api.respondOutcome(c, out, err)
}

// Post /cart/remove
// Subtracts quantity from the matching item; omitted quantity removes it.
func (api *CartAPI) Remove(c *gin.Context) {
	payload, ok := api.bindMutation(c)
	if !ok {
		return
	}
	session := api.session(c)
	out, err := api.service.Remove(c.Request.Context(), session, payload.Class, payload.ID, payload.Quantity, payload.Filter)
	api.respondOutcome(c, out, err)
}

// Post /cart/removeall
// Removes the matching item entirely regardless of quantity.
func (api *CartAPI) RemoveAll(c *gin.Context) {
	payload, ok := api.bindMutation(c)
	if !ok {
		return
	}
	session := api.session(c)
	out, err := api.service.Remove(c.Request.Context(), session, payload.Class, payload.ID, 0, payload.Filter)
	api.respondOutcome(c, out, err)
}

// Post /cart/setquantity
// Overwrites the matching item's quantity; zero removes it.
func (api *CartAPI) SetQuantity(c *gin.Context) {
	payload, ok := api.bindMutation(c)
	if !ok {
		return
	}
	session := api.session(c)
	out, err := api.service.SetQuantity(c.Request.Context(), session, payload.Class, payload.ID, payload.Quantity, payload.Filter)
	api.respondOutcome(c, out, err)
}

// Post /cart/clear
// Empties the session's cart binding.
func (api *CartAPI) Clear(c *gin.Context) {
	session := api.session(c)
	out, err := api.service.Clear(c.Request.Context(), session)
	api.respondOutcome(c, out, err)
}

// Post /cart/archive
// Records a placed bound order into session history and clears the binding.
func (api *CartAPI) Archive(c *gin.Context) {
	var payload struct {
		OrderID int64 `json:"orderId"`
	}
	// The body is optional; an absent one archives whatever is bound.
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		api.responder.BadRequest(c, err.Error())
		return
	}
	session := api.session(c)
	out, err := api.service.Archive(c.Request.Context(), session, payload.OrderID)
	api.respondOutcome(c, out, err)
}

// Get /cart/history
// Lists the session's archived order IDs, oldest first.
func (api *CartAPI) History(c *gin.Context) {
	session := api.session(c)
	ids, err := api.service.History(c.Request.Context(), session)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	c.JSON(http.StatusOK, gin.H{"orderIds": ids})
}

func (api *CartAPI) bindMutation(c *gin.Context) (mutationPayload, bool) {
	var payload mutationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return payload, false
	}
	return payload, true
}

// respondOutcome renders the one-message result channel. Operation-level
// failures are part of the contract, so they ship as a normal outcome body
// with a 4xx status rather than a bare problem document.
func (api *CartAPI) respondOutcome(c *gin.Context, out *cartports.Outcome, err error) {
	if err != nil {
		status := sharederrors.HTTPStatusFromError(err)
		if problem, ok := CartErrorMapper(err); ok {
			status = problem.Status
		}
		if out != nil && out.Message != "" {
			c.JSON(status, cartmapper.FromOutcome(out))
			return
		}
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromOutcome(out))
}

// session returns the request's cart session key, minting a cookie-backed
// key on first contact.
func (api *CartAPI) session(c *gin.Context) string {
	if key, err := c.Cookie(SessionCookie); err == nil && key != "" {
		return key
	}
	key := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, key, sessionCookieMaxAge, "/", "", false, true)
	return key
}
