package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	carthttp "github.com/drdrak3/silvershop-core/internal/domains/cart/adapters/http"
	cataloghttp "github.com/drdrak3/silvershop-core/internal/domains/catalog/adapters/http"
)

// NewRouter assembles the gin engine with the cart and catalog routes.
func NewRouter(cartAPI carthttp.CartAPI, catalogAPI cataloghttp.CatalogAPI) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cart := router.Group("/cart")
	{
		cart.GET("", cartAPI.GetCart)
		cart.POST("/add", cartAPI.Add)
		cart.POST("/remove", cartAPI.Remove)
		cart.POST("/removeall", cartAPI.RemoveAll)
		cart.POST("/setquantity", cartAPI.SetQuantity)
		cart.POST("/clear", cartAPI.Clear)
		cart.POST("/archive", cartAPI.Archive)
		cart.GET("/history", cartAPI.History)
	}

	products := router.Group("/products")
	{
		products.POST("", catalogAPI.AddProduct)
		products.GET("", catalogAPI.ListProducts)
		products.GET("/:id", catalogAPI.GetProduct)
		products.DELETE("/:id", catalogAPI.DeleteProduct)
	}

	return router
}
