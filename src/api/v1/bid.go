package v1

import (
	"github.com/ProjectsTask/EasySwapBase/errcode"
	"github.com/ProjectsTask/EasySwapBase/xhttp"
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// PlaceBidHandler 对挂单出价, 一口价直接成交, 拍卖进入抬价流程
func PlaceBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.PlaceBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller, _ = normalizeAddress(req.Caller)
		req.CollectionAddr, _ = normalizeAddress(req.CollectionAddr)

		res, err := svcCtx.Engine.PlaceBid(c.Request.Context(), &req)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// AcceptBidHandler 卖家结算到期拍卖
func AcceptBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.AcceptBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller, _ = normalizeAddress(req.Caller)
		req.CollectionAddr, _ = normalizeAddress(req.CollectionAddr)

		res, err := svcCtx.Engine.AcceptBid(c.Request.Context(), &req)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// GetBidHandler 查询某买家对某 token 的出价存档
func GetBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collection, okc := normalizeAddress(c.Query("collection_address"))
		bidder, okb := normalizeAddress(c.Query("bidder"))
		tokenID := c.Query("token_id")
		if !okc || !okb || tokenID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := svcCtx.Engine.GetBid(c.Request.Context(), collection, tokenID, bidder)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// ListBidsByItemHandler 查询某 token 的出价存档列表
func ListBidsByItemHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collection, ok := normalizeAddress(c.Query("collection_address"))
		tokenID := c.Query("token_id")
		if !ok || tokenID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := svcCtx.Engine.ListBidsByItem(c.Request.Context(),
			collection, tokenID, c.Query("start_after"), queryLimit(c))
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// ListBidsByBidderHandler 查询某买家的出价存档列表
func ListBidsByBidderHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		bidder, ok := normalizeAddress(c.Query("bidder"))
		if !ok {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := svcCtx.Engine.ListBidsByBidder(c.Request.Context(),
			bidder, c.Query("start_after"), queryLimit(c))
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}
