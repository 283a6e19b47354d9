package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
)

type createBookRequest struct {
	Name          string `json:"name" binding:"required"`
	Price         int    `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
}

type bookResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         int    `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
}

func bookFromItem(item *domain.Item) bookResponse {
	return bookResponse{
		ID:            item.ID,
		Name:          item.Name,
		Price:         item.Price,
		StockQuantity: item.StockQuantity,
		Author:        item.Author,
		ISBN:          item.ISBN,
	}
}

func (a *API) createItem(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.respond.BadRequest(c, err.Error())
		return
	}
	book, err := domain.NewBook(req.Name, req.Price, req.StockQuantity, req.Author, req.ISBN)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	id, err := a.items.SaveItem(c.Request.Context(), book)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (a *API) listItems(c *gin.Context) {
	items, err := a.items.FindItems(c.Request.Context())
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	out := make([]bookResponse, 0, len(items))
	for _, item := range items {
		out = append(out, bookFromItem(item))
	}
	c.JSON(http.StatusOK, out)
}

type updateBookRequest struct {
	Name          string `json:"name" binding:"required"`
	Price         int    `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
}

// updateItem changes the book fields through a load-and-mutate transaction
// rather than reattaching a client-supplied entity.
func (a *API) updateItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		a.respond.BadRequest(c, "invalid item id")
		return
	}
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.respond.BadRequest(c, err.Error())
		return
	}
	if err := a.items.UpdateItem(c.Request.Context(), id, req.Name, req.Price, req.StockQuantity); err != nil {
		a.respond.RespondError(c, err)
		return
	}
	item, err := a.items.FindOne(c.Request.Context(), id)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookFromItem(item))
}
