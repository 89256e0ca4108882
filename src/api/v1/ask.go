package v1

import (
	"strconv"

	"github.com/ProjectsTask/EasySwapBase/errcode"
	"github.com/ProjectsTask/EasySwapBase/xhttp"
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// CreateAskHandler 创建挂单
func CreateAskHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateAskReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller, _ = normalizeAddress(req.Caller)
		req.CollectionAddr, _ = normalizeAddress(req.CollectionAddr)
		if req.FundsRecipient != "" {
			req.FundsRecipient, _ = normalizeAddress(req.FundsRecipient)
		}

		res, err := svcCtx.Engine.CreateAsk(c.Request.Context(), &req)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// RemoveAskHandler 撤销挂单
func RemoveAskHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.RemoveAskReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller, _ = normalizeAddress(req.Caller)
		req.CollectionAddr, _ = normalizeAddress(req.CollectionAddr)

		res, err := svcCtx.Engine.RemoveAsk(c.Request.Context(), &req)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// UpdateAskPriceHandler 修改挂单价格
func UpdateAskPriceHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.UpdateAskPriceReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller, _ = normalizeAddress(req.Caller)
		req.CollectionAddr, _ = normalizeAddress(req.CollectionAddr)

		res, err := svcCtx.Engine.UpdateAskPrice(c.Request.Context(), &req)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// GetAskHandler 查询单个挂单
func GetAskHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collection, ok := normalizeAddress(c.Query("collection_address"))
		tokenID := c.Query("token_id")
		if !ok || tokenID == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := svcCtx.Engine.GetAsk(c.Request.Context(), collection, tokenID)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// ListAsksByCollectionHandler 按集合分页查询挂单
func ListAsksByCollectionHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collection, ok := normalizeAddress(c.Query("collection_address"))
		if !ok {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := svcCtx.Engine.ListAsksByCollection(c.Request.Context(),
			collection, c.Query("start_after"), queryLimit(c))
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// ListAsksBySellerHandler 按卖家分页查询挂单
func ListAsksBySellerHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller, ok := normalizeAddress(c.Query("seller"))
		if !ok {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := svcCtx.Engine.ListAsksBySeller(c.Request.Context(),
			seller, c.Query("start_after"), queryLimit(c))
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// AskCountHandler 查询某集合下的挂单总数
func AskCountHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		collection, ok := normalizeAddress(c.Query("collection_address"))
		if !ok {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		count, err := svcCtx.Engine.AskCount(c.Request.Context(), collection)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, gin.H{"count": count})
	}
}

// ListedCollectionsHandler 查询当前有挂单的集合列表
func ListedCollectionsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svcCtx.Engine.ListedCollections(c.Request.Context(),
			c.Query("start_after"), queryLimit(c))
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

func queryLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return limit
}
