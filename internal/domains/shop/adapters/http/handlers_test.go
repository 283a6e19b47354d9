package httpapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httpapi "github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/adapters/http"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/adapters/memory"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/application"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/seed"
)

func newTestRouter(t *testing.T, seeded bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	members := application.NewMemberService(store)
	items := application.NewItemService(store)
	orders := application.NewOrderService(store)
	if seeded {
		require.NoError(t, seed.Run(context.Background(), seed.Services{
			Members: members,
			Items:   items,
			Orders:  orders,
		}))
	}
	router := gin.New()
	httpapi.NewAPI(members, items, orders, nil).Register(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateMemberV2(t *testing.T) {
	router := newTestRouter(t, false)

	rec := doJSON(t, router, http.MethodPost, "/api/v2/members",
		`{"name":"userA","address":{"city":"Seoul","street":"Gangnam","zipcode":"15640"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotZero(t, resp.ID)
}

func TestCreateMemberV2_MissingName(t *testing.T) {
	router := newTestRouter(t, false)

	rec := doJSON(t, router, http.MethodPost, "/api/v2/members", `{"address":{"city":"Seoul"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestCreateMember_DuplicateName(t *testing.T) {
	router := newTestRouter(t, false)

	first := doJSON(t, router, http.MethodPost, "/api/v2/members", `{"name":"userA"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := doJSON(t, router, http.MethodPost, "/api/v2/members", `{"name":"userA"}`)
	require.Equal(t, http.StatusConflict, second.Code)
}

func TestListMembersV2_Envelope(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doJSON(t, router, http.MethodGet, "/api/v2/members", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
		Data  []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	require.Equal(t, "userA", resp.Data[0].Name)
	require.Equal(t, "userB", resp.Data[1].Name)
}

func TestUpdateMemberV2(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doJSON(t, router, http.MethodPut, "/api/v2/members/1", `{"name":"userA2"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.ID)
	require.Equal(t, "userA2", resp.Name)
}

func TestUpdateMemberV2_Missing(t *testing.T) {
	router := newTestRouter(t, false)

	rec := doJSON(t, router, http.MethodPut, "/api/v2/members/42", `{"name":"nobody"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrdersV3_FullDtos(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doJSON(t, router, http.MethodGet, "/api/v3/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []struct {
		OrderID     int64  `json:"orderId"`
		Name        string `json:"name"`
		OrderStatus string `json:"orderStatus"`
		Address     struct {
			City string `json:"city"`
		} `json:"address"`
		OrderItems []struct {
			ItemName   string `json:"itemName"`
			OrderPrice int    `json:"orderPrice"`
			Count      int    `json:"count"`
		} `json:"orderItems"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	require.Equal(t, "userA", orders[0].Name)
	require.Equal(t, "ORDER", orders[0].OrderStatus)
	require.Equal(t, "Seoul", orders[0].Address.City)
	require.Len(t, orders[0].OrderItems, 2)
	require.Equal(t, "JPA1 BOOK", orders[0].OrderItems[0].ItemName)
	require.Equal(t, 1, orders[0].OrderItems[0].Count)
	require.Equal(t, "userB", orders[1].Name)
	require.Len(t, orders[1].OrderItems, 2)
}

func TestListSimpleOrders_StrategiesAgree(t *testing.T) {
	router := newTestRouter(t, true)

	type simpleOrder struct {
		OrderID     int64  `json:"orderId"`
		Name        string `json:"name"`
		OrderStatus string `json:"orderStatus"`
	}
	type envelope struct {
		Data []simpleOrder `json:"data"`
	}

	var results []envelope
	for _, version := range []string{"v2", "v3", "v4"} {
		rec := doJSON(t, router, http.MethodGet, "/api/"+version+"/simple-orders", "")
		require.Equal(t, http.StatusOK, rec.Code, version)
		var resp envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		results = append(results, resp)
	}

	require.Equal(t, results[0], results[1])
	require.Equal(t, results[0], results[2])
	require.Len(t, results[0].Data, 2)
	require.Equal(t, "userA", results[0].Data[0].Name)
	require.Equal(t, "userB", results[0].Data[1].Name)
}

func TestOrderFilter_Query(t *testing.T) {
	router := newTestRouter(t, true)

	rec := doJSON(t, router, http.MethodGet, "/api/v4/simple-orders?memberName=userB", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, "userB", resp.Data[0].Name)
}

func TestPlaceAndCancelOrder(t *testing.T) {
	router := newTestRouter(t, false)

	rec := doJSON(t, router, http.MethodPost, "/api/v2/members", `{"name":"userA"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/v1/items",
		`{"name":"JPA1 BOOK","price":10000,"stockQuantity":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/orders", `{"memberId":1,"itemId":1,"count":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var placed struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", placed.ID), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Cancelling again violates the business rule.
	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", placed.ID), "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	router := newTestRouter(t, false)

	doJSON(t, router, http.MethodPost, "/api/v2/members", `{"name":"userA"}`)
	doJSON(t, router, http.MethodPost, "/api/v1/items", `{"name":"JPA1 BOOK","price":10000,"stockQuantity":2}`)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/orders", `{"memberId":1,"itemId":1,"count":3}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
