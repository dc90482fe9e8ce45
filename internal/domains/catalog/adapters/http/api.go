// Package http exposes catalog management over gin.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/drdrak3/silvershop-core/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/drdrak3/silvershop-core/internal/domains/catalog/application"
	catalogdomain "github.com/drdrak3/silvershop-core/internal/domains/catalog/domain"
	catalogports "github.com/drdrak3/silvershop-core/internal/domains/catalog/ports"
	sharederrors "github.com/drdrak3/silvershop-core/internal/shared/errors"
)

// CatalogAPI wires HTTP transport with the catalog service.
type CatalogAPI struct {
	service   *catalogapp.Service
	responder *sharederrors.ChainedResponder
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service *catalogapp.Service) CatalogAPI {
	return CatalogAPI{
		service:   service,
		responder: sharederrors.NewChainedResponder("", CatalogErrorMapper),
	}
}

// CatalogErrorMapper translates catalog errors into problem details.
func CatalogErrorMapper(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return sharederrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogdomain.ErrInvalidTitle), errors.Is(err, catalogdomain.ErrInvalidPrice):
		return sharederrors.ErrUnprocessable.WithDetail(err.Error()), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}

// Post /products
func (api *CatalogAPI) AddProduct(c *gin.Context) {
	var payload catalogmapper.Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, err.Error())
		return
	}
	product, err := api.service.AddProduct(c.Request.Context(), catalogmapper.ToDomain(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomain(product))
}

// Get /products/:id
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	id, ok := api.productID(c)
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomain(product))
}

// Delete /products/:id
func (api *CatalogAPI) DeleteProduct(c *gin.Context) {
	id, ok := api.productID(c)
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), id); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /products
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainList(products))
}

func (api *CatalogAPI) productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		api.responder.BadRequest(c, "invalid product id")
		return 0, false
	}
	return id, true
}
