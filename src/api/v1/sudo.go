package v1

import (
	"strings"

	"github.com/ProjectsTask/EasySwapBase/errcode"
	"github.com/ProjectsTask/EasySwapBase/xhttp"
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
	types "github.com/ProjectsTask/EasySwapMarket/src/types/v1"
)

// UpdateParamsHandler 运营方修改全局参数
func UpdateParamsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.UpdateParamsReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller, _ = normalizeAddress(req.Caller)
		for i, op := range req.Operators {
			normalized, ok := normalizeAddress(op)
			if !ok {
				xhttp.Error(c, errcode.ErrInvalidParams)
				return
			}
			req.Operators[i] = normalized
		}

		res, err := svcCtx.Engine.UpdateParams(c.Request.Context(), &req)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// AddHookHandler 注册事件订阅地址
func AddHookHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.HookReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller, _ = normalizeAddress(req.Caller)

		res, err := svcCtx.Engine.AddHook(c.Request.Context(), &req)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// RemoveHookHandler 移除事件订阅地址
func RemoveHookHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.HookReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}
		req.Caller, _ = normalizeAddress(req.Caller)

		res, err := svcCtx.Engine.RemoveHook(c.Request.Context(), &req)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// ListHooksHandler 查询某事件族的订阅地址
func ListHooksHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		family := c.Query("family")
		if family == "" {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := svcCtx.Engine.ListHooks(c.Request.Context(), family)
		if err != nil {
			errReply(c, err)
			return
		}
		okResult(c, res)
	}
}

// GetParamsHandler 查询全局参数, 走 Redis 缓存
func GetParamsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := svcCtx.Dao.GetParamsCached(c.Request.Context())
		if err != nil {
			errReply(c, err)
			return
		}

		var operators []string
		if params.Operators != "" {
			operators = strings.Split(params.Operators, ",")
		}
		okResult(c, types.SudoParams{
			Denom:        params.Denom,
			AskExpiryMin: params.AskExpiryMin,
			AskExpiryMax: params.AskExpiryMax,
			BidExpiryMin: params.BidExpiryMin,
			BidExpiryMax: params.BidExpiryMax,
			MinPrice:     params.MinPrice,
			ListingFee:   params.ListingFee,
			Operators:    operators,
		})
	}
}
