package routers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"CafeBackend/cart"
	"CafeBackend/handlers"
	"CafeBackend/middleware"
	"CafeBackend/session"
	"CafeBackend/store"
	"CafeBackend/theme"
)

// 路由所需的相依資源
type Deps struct {
	Store      store.Store
	Carts      cart.Store
	Sessions   session.Store
	Themes     theme.Cache
	SeedSource string
	SessionTTL time.Duration
}

func SetupRouters(deps Deps) *gin.Engine {
	//建立Gin路由器
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	})
	err := router.SetTrustedProxies(nil)
	if err != nil {
		return nil
	}

	//設定商品圖片靜態資源路徑
	router.Static("/uploads", "./uploads")

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	////無須權限，使用中間件檢查是否登入
	router.Use(middleware.AuthMiddleware(deps.Sessions))
	{
		//查詢商品列表(僅上架中)
		router.GET("/api/v1/products", func(context *gin.Context) {
			handlers.GetProductListHandler(context, deps.Store)
		})
		//查詢商品詳細資料
		router.GET("/api/v1/products/:productID", func(context *gin.Context) {
			handlers.GetProductDataHandler(context, deps.Store)
		})
		//查詢站台主題
		router.GET("/api/v1/theme", func(context *gin.Context) {
			handlers.GetThemeHandler(context, deps.Store, deps.Themes)
		})
		//註冊帳號
		router.POST("/api/v1/register", func(context *gin.Context) {
			handlers.RegisterHandler(context, deps.Store)
		})
		//登入帳號
		router.POST("/api/v1/login", func(context *gin.Context) {
			handlers.LoginHandler(context, deps.Store, deps.Sessions, deps.SessionTTL)
		})
		//新增商品至購物車
		router.POST("/api/v1/carts/add", func(context *gin.Context) {
			handlers.AddToCartHandler(context, deps.Store, deps.Carts)
		})
		//更新購物車商品數量(小於等於0時移除)
		router.POST("/api/v1/carts/update", func(context *gin.Context) {
			handlers.UpdateCartItemQuantityHandler(context, deps.Carts)
		})
		//刪除購物車商品
		router.DELETE("/api/v1/carts/:itemID", func(context *gin.Context) {
			handlers.DeleteCartItemHandler(context, deps.Carts)
		})
		//查詢購物車商品
		router.GET("/api/v1/carts", func(context *gin.Context) {
			handlers.GetCartHandler(context, deps.Carts)
		})
		//清除購物車商品
		router.DELETE("/api/v1/carts", func(context *gin.Context) {
			handlers.ClearCartHandler(context, deps.Carts)
		})

		////需要登入，使用中間件檢查是否登入
		loginRequired := router.Group("/api/v1/user")
		loginRequired.Use(middleware.CheckLoginMiddleware())
		{
			//查詢使用者資料
			loginRequired.GET("/profile", func(context *gin.Context) {
				handlers.GetUserProfileHandler(context)
			})
			//合併匿名和使用者購物車(登入或註冊後呼叫)
			loginRequired.POST("/carts/merge", func(context *gin.Context) {
				handlers.MergeCartHandler(context, deps.Carts)
			})
			//結帳：送出訂單並清空購物車
			loginRequired.POST("/orders", func(context *gin.Context) {
				handlers.SendOrderHandler(context, deps.Store, deps.Carts)
			})
			//查詢訂單列表
			loginRequired.GET("/orders", func(context *gin.Context) {
				handlers.GetOrderListHandler(context, deps.Store)
			})
			//查詢訂單詳細資訊
			loginRequired.GET("/orders/:orderID", func(context *gin.Context) {
				handlers.GetOrderDataHandler(context, deps.Store)
			})
			//清除訂單紀錄
			loginRequired.DELETE("/orders", func(context *gin.Context) {
				handlers.ClearOrderHistoryHandler(context, deps.Store)
			})
			//登出
			loginRequired.POST("/logout", func(context *gin.Context) {
				handlers.LogOutHandler(context, deps.Sessions)
			})
		}

		////需要admin身分，使用中間件檢查是否登入及admin權限
		adminRequired := router.Group("/api/v1/admin")
		adminRequired.Use(middleware.CheckLoginMiddleware(), middleware.CheckAdminPermissionMiddleware())
		{
			//查詢使用者列表
			adminRequired.GET("/users", func(context *gin.Context) {
				handlers.GetUserListHandler(context, deps.Store)
			})
			//變更使用者角色
			adminRequired.PATCH("/users/:userID/role", func(context *gin.Context) {
				handlers.ChangeUserRoleHandler(context, deps.Store)
			})
			//封鎖或解除封鎖使用者
			adminRequired.PATCH("/users/:userID/blocked", func(context *gin.Context) {
				handlers.ChangeUserBlockedHandler(context, deps.Store)
			})
			//刪除使用者
			adminRequired.DELETE("/users/:userID", func(context *gin.Context) {
				handlers.DeleteUserHandler(context, deps.Store)
			})
			//上傳商品圖片
			adminRequired.POST("/image", func(context *gin.Context) {
				handlers.UploadImageHandler(context)
			})
			//查詢商品完整列表(包含已下架)
			adminRequired.GET("/products", func(context *gin.Context) {
				handlers.GetAdminProductListHandler(context, deps.Store)
			})
			//查詢商品完整資料
			adminRequired.GET("/products/:productID", func(context *gin.Context) {
				handlers.GetProductAllDataHandler(context, deps.Store)
			})
			//新增商品
			adminRequired.POST("/products", func(context *gin.Context) {
				handlers.CreateProductHandler(context, deps.Store)
			})
			//修改商品
			adminRequired.PATCH("/products/:productID", func(context *gin.Context) {
				handlers.UpdateProductHandler(context, deps.Store)
			})
			//切換商品上下架
			adminRequired.PATCH("/products/:productID/availability", func(context *gin.Context) {
				handlers.ToggleAvailabilityHandler(context, deps.Store)
			})
			//刪除商品
			adminRequired.DELETE("/products/:productID", func(context *gin.Context) {
				handlers.DeleteProductHandler(context, deps.Store)
			})
			//更新站台主題
			adminRequired.PUT("/theme", func(context *gin.Context) {
				handlers.UpdateThemeHandler(context, deps.Store, deps.Themes)
			})
			//重設主題為預設值
			adminRequired.POST("/theme/reset", func(context *gin.Context) {
				handlers.ResetThemeHandler(context, deps.Store, deps.Themes, deps.SeedSource)
			})
			//查詢全站訂單
			adminRequired.GET("/orders", func(context *gin.Context) {
				handlers.GetAllOrdersHandler(context, deps.Store)
			})
		}
	}

	return router
}
