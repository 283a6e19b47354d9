package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/adapters/http/mapper"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/domain"
)

// createMemberV1Request mirrors the member entity, address included.
type createMemberV1Request struct {
	Name    string         `json:"name"`
	Address domain.Address `json:"address"`
}

func (a *API) createMemberV1(c *gin.Context) {
	var req createMemberV1Request
	if err := c.ShouldBindJSON(&req); err != nil {
		a.respond.BadRequest(c, err.Error())
		return
	}
	member, err := domain.NewMember(req.Name, req.Address)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	id, err := a.members.Join(c.Request.Context(), member)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// createMemberV2Request accepts only the fields the API contract names, so
// entity changes cannot leak into the wire format.
type createMemberV2Request struct {
	Name    string         `json:"name" binding:"required"`
	Address domain.Address `json:"address"`
}

func (a *API) createMemberV2(c *gin.Context) {
	var req createMemberV2Request
	if err := c.ShouldBindJSON(&req); err != nil {
		a.respond.BadRequest(c, err.Error())
		return
	}
	member, err := domain.NewMember(req.Name, req.Address)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	id, err := a.members.Join(c.Request.Context(), member)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type updateMemberRequest struct {
	Name string `json:"name" binding:"required"`
}

// updateMemberV2 renames a member, then reads the member back in a separate
// transaction for the response body.
func (a *API) updateMemberV2(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		a.respond.BadRequest(c, "invalid member id")
		return
	}
	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.respond.BadRequest(c, err.Error())
		return
	}
	if _, err := a.members.UpdateName(c.Request.Context(), id, req.Name); err != nil {
		a.respond.RespondError(c, err)
		return
	}
	member, err := a.members.FindOne(c.Request.Context(), id)
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": member.ID, "name": member.Name})
}

func (a *API) listMembersV1(c *gin.Context) {
	members, err := a.members.FindMembers(c.Request.Context())
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromMembers(members))
}

func (a *API) listMembersV2(c *gin.Context) {
	members, err := a.members.FindMembers(c.Request.Context())
	if err != nil {
		a.respond.RespondError(c, err)
		return
	}
	data := mapper.FromMembersDto(members)
	c.JSON(http.StatusOK, mapper.CountedResult{Count: len(data), Data: data})
}
