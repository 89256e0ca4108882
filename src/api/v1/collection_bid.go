package v1

import (
	"github.com/ProjectsTask/EasySwapBase/errcode"
	"github.com/ProjectsTask/EasySwapBase/xhttp"
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// PlaceCollectionBidHandler 创建集合级限价单
func PlaceCollectionBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.PlaceCollectionBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller, _ = normalizeAddress(req.Caller)
		req.CollectionAddr, _ = normalizeAddress(req.CollectionAddr)

		res, err := svcCtx.Engine.PlaceCollectionBid(c.Request.Context(), &req)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// RemoveCollectionBidHandler 撤销集合级限价单并退款
func RemoveCollectionBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.RemoveCollectionBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller, _ = normalizeAddress(req.Caller)
		req.CollectionAddr, _ = normalizeAddress(req.CollectionAddr)

		res, err := svcCtx.Engine.RemoveCollectionBid(c.Request.Context(), &req)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// AcceptCollectionBidHandler 卖家用具体 token 吃掉集合级限价单
func AcceptCollectionBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.AcceptCollectionBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller, _ = normalizeAddress(req.Caller)
		req.CollectionAddr, _ = normalizeAddress(req.CollectionAddr)
		req.Bidder, _ = normalizeAddress(req.Bidder)

		res, err := svcCtx.Engine.AcceptCollectionBid(c.Request.Context(), &req)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// GetCollectionBidHandler 查询某买家在某集合下的限价单
func GetCollectionBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collection, okc := normalizeAddress(c.Query("collection_address"))
		bidder, okb := normalizeAddress(c.Query("bidder"))
		if !okc || !okb {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := svcCtx.Engine.GetCollectionBid(c.Request.Context(), collection, bidder)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}
