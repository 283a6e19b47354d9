// Package httpapi exposes the shop services over REST. The member and order
// endpoints come in versions: v1 returns raw entity views, later versions
// return purpose-built DTOs, and the simple-order versions step through the
// three read strategies.
package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/application"
	apperrors "github.com/bookshop-labs/go-bookshop-api/internal/shared/errors"
)

// API bundles the shop handlers and their dependencies.
type API struct {
	members *application.MemberService
	items   *application.ItemService
	orders  *application.OrderService
	respond *apperrors.ChainedResponder
	logger  *slog.Logger
}

func NewAPI(
	members *application.MemberService,
	items *application.ItemService,
	orders *application.OrderService,
	logger *slog.Logger,
) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		members: members,
		items:   items,
		orders:  orders,
		respond: apperrors.NewChainedResponder("", problemFromError),
		logger:  logger,
	}
}

// Register wires the routes onto the router.
func (a *API) Register(r gin.IRouter) {
	api := r.Group("/api")

	api.POST("/v1/members", a.createMemberV1)
	api.GET("/v1/members", a.listMembersV1)
	api.POST("/v2/members", a.createMemberV2)
	api.GET("/v2/members", a.listMembersV2)
	api.PUT("/v2/members/:id", a.updateMemberV2)

	api.POST("/v1/items", a.createItem)
	api.GET("/v1/items", a.listItems)
	api.PUT("/v1/items/:id", a.updateItem)

	api.POST("/v1/orders", a.createOrder)
	api.POST("/v1/orders/:id/cancel", a.cancelOrder)
	api.GET("/v1/orders", a.listOrdersV1)
	api.GET("/v2/orders", a.listOrdersV2)
	api.GET("/v3/orders", a.listOrdersV3)
	api.GET("/v1/simple-orders", a.listSimpleOrdersV1)
	api.GET("/v2/simple-orders", a.listSimpleOrdersV2)
	api.GET("/v3/simple-orders", a.listSimpleOrdersV3)
	api.GET("/v4/simple-orders", a.listSimpleOrdersV4)
}
