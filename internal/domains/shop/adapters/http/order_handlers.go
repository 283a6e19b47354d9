package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/adapters/http/mapper"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
)

// orderFilter reads the optional search predicates from the query string.
func orderFilter(c *gin.Context) storage.OrderFilter {
	return storage.OrderFilter{
		Status:     c.Query("status"),
		MemberName: c.Query("memberName"),
	}
}

type createOrderRequest struct {
	MemberID int64 `json:"memberId" binding:"required"`
	ItemID   int64 `json:"itemId" binding:"required"`
	Count    int   `json:"count" binding:"required"`
}

func (a *API) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.respond.BadRequest(c, err.Error())
		return
	}
	id, err := a.orders.PlaceOrder(c.Request.Context(), req.MemberID, req.ItemID, req.Count)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	a.logger.Info("order placed", slog.Int64("order_id", id), slog.Int64("member_id", req.MemberID))
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (a *API) cancelOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		a.respond.BadRequest(c, "invalid order id")
		return
	}
	if err := a.orders.CancelOrder(c.Request.Context(), id); err != nil {
		a.respond.RespondError(c, err)
		return
	}
	a.logger.Info("order cancelled", slog.Int64("order_id", id))
	c.Status(http.StatusNoContent)
}

// listOrdersV1 walks each order's lazy associations one query at a time and
// returns raw entity views.
func (a *API) listOrdersV1(c *gin.Context) {
	orders, err := a.orders.ListOrders(c.Request.Context(), orderFilter(c), true)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	views, err := mapper.FromRawOrders(c.Request.Context(), orders)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// listOrdersV2 maps to DTOs but still loads lazily underneath, one query per
// association per order.
func (a *API) listOrdersV2(c *gin.Context) {
	orders, err := a.orders.ListOrders(c.Request.Context(), orderFilter(c), true)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	dtos, err := mapper.FromOrders(c.Request.Context(), orders)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos)
}

// listOrdersV3 materializes the whole aggregate in a single joined read.
func (a *API) listOrdersV3(c *gin.Context) {
	orders, err := a.orders.ListOrdersWithItems(c.Request.Context(), orderFilter(c))
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	dtos, err := mapper.FromOrders(c.Request.Context(), orders)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos)
}

func (a *API) listSimpleOrdersV1(c *gin.Context) {
	orders, err := a.orders.ListOrders(c.Request.Context(), orderFilter(c), false)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	views, err := mapper.FromRawOrders(c.Request.Context(), orders)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (a *API) listSimpleOrdersV2(c *gin.Context) {
	orders, err := a.orders.ListOrders(c.Request.Context(), orderFilter(c), false)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	dtos, err := mapper.FromSimpleOrders(c.Request.Context(), orders)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.Result{Data: dtos})
}

// listSimpleOrdersV3 reads orders with member and delivery joined in one
// query.
func (a *API) listSimpleOrdersV3(c *gin.Context) {
	orders, err := a.orders.ListOrdersWithMemberDelivery(c.Request.Context(), orderFilter(c))
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	dtos, err := mapper.FromSimpleOrders(c.Request.Context(), orders)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.Result{Data: dtos})
}

// listSimpleOrdersV4 projects straight into the response shape, skipping
// entities entirely.
func (a *API) listSimpleOrdersV4(c *gin.Context) {
	summaries, err := a.orders.ListOrderSummaries(c.Request.Context(), orderFilter(c))
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.Result{Data: mapper.FromSummaries(summaries)})
}
