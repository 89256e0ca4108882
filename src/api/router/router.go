package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasySwapMarket/src/api/middleware"
	v1 "github.com/ProjectsTask/EasySwapMarket/src/api/v1"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	gin.ForceConsoleColor()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RecoverMiddleware())
	r.Use(middleware.RLog())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-CSRF-Token", "Authorization", "AccessToken", "Token"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Access-Control-Allow-Origin", "Access-Control-Allow-Headers", "X-GW-Error-Code", "X-GW-Error-Message"},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))
	loadV1(r, svcCtx)

	return r
}

// loadV1 挂载 v1 版本的动作/查询/特权路由
func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	api := r.Group("/api/v1")

	// 动作路由: 每个动作返回有序副作用消息列表 + 事件属性
	asks := api.Group("/asks")
	{
		asks.POST("/create", v1.CreateAskHandler(svcCtx))
		asks.POST("/remove", v1.RemoveAskHandler(svcCtx))
		asks.POST("/update-price", v1.UpdateAskPriceHandler(svcCtx))
		asks.GET("/single", v1.GetAskHandler(svcCtx))
		asks.GET("/by-collection", v1.ListAsksByCollectionHandler(svcCtx))
		asks.GET("/by-seller", v1.ListAsksBySellerHandler(svcCtx))
		asks.GET("/count", v1.AskCountHandler(svcCtx))
	}

	bids := api.Group("/bids")
	{
		bids.POST("/place", v1.PlaceBidHandler(svcCtx))
		bids.POST("/accept", v1.AcceptBidHandler(svcCtx))
		bids.GET("/single", v1.GetBidHandler(svcCtx))
		bids.GET("/by-item", v1.ListBidsByItemHandler(svcCtx))
		bids.GET("/by-bidder", v1.ListBidsByBidderHandler(svcCtx))
	}

	collectionBids := api.Group("/collection-bids")
	{
		collectionBids.POST("/place", v1.PlaceCollectionBidHandler(svcCtx))
		collectionBids.POST("/remove", v1.RemoveCollectionBidHandler(svcCtx))
		collectionBids.POST("/accept", v1.AcceptCollectionBidHandler(svcCtx))
		collectionBids.GET("/single", v1.GetCollectionBidHandler(svcCtx))
	}

	api.GET("/collections/listed", v1.ListedCollectionsHandler(svcCtx))

	// 特权路由: 运营方身份在引擎内按参数表校验
	sudo := api.Group("/sudo")
	{
		sudo.POST("/params", v1.UpdateParamsHandler(svcCtx))
		sudo.POST("/hooks/add", v1.AddHookHandler(svcCtx))
		sudo.POST("/hooks/remove", v1.RemoveHookHandler(svcCtx))
	}

	api.GET("/params", v1.GetParamsHandler(svcCtx))
	api.GET("/hooks", v1.ListHooksHandler(svcCtx))
}
