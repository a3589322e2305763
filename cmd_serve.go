package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"CafeBackend/cart"
	"CafeBackend/config"
	"CafeBackend/jwt"
	"CafeBackend/models"
	"CafeBackend/routers"
	"CafeBackend/seed"
	"CafeBackend/session"
	"CafeBackend/store"
	"CafeBackend/theme"
)

// cafe serve — 初始化資料庫並啟動HTTP伺服器
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "啟動HTTP伺服器",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("讀取設定檔失敗: %w", err)
		}

		jwt.Configure(cfg.JWT.PrivateKey, cfg.JWT.PublicKey)

		rdb, err := config.SetupRedisConnection(cfg)
		if err != nil {
			return fmt.Errorf("無法連接到Redis: %w", err)
		}
		defer rdb.Close()

		st, err := setupStore(cfg, rdb)
		if err != nil {
			return err
		}

		sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
		themes := theme.NewRedis(rdb)

		//初始化資料庫，失敗時僅記錄錯誤並以現有或空白資料降級運作
		if err := seed.Initialize(context.Background(), st, themes, cfg.Seed.Source); err != nil {
			log.Printf("初始化資料庫失敗，以降級狀態繼續: %v\n", err)
		}

		//訂閱主題變更通知
		watchCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go themes.Watch(watchCtx, func(t models.Theme) {
			log.Printf("主題已更新: %s\n", t.SiteName)
		})

		router := routers.SetupRouters(routers.Deps{
			Store:      st,
			Carts:      cart.NewRedis(rdb, sessionTTL),
			Sessions:   session.NewRedis(rdb, sessionTTL),
			Themes:     themes,
			SeedSource: cfg.Seed.Source,
			SessionTTL: sessionTTL,
		})

		return router.Run(cfg.Server.Addr)
	},
}

// 依設定選擇整份資料庫紀錄的儲存後端
func setupStore(cfg config.Config, rdb *redis.Client) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMySQL:
		db, err := config.SetupMySQLConnection(cfg)
		if err != nil {
			return nil, fmt.Errorf("無法連接到資料庫: %w", err)
		}
		return store.NewGorm(db)
	case config.BackendRedis:
		return store.NewRedis(rdb), nil
	default:
		return nil, fmt.Errorf("不支援的儲存後端: %s", cfg.Storage.Backend)
	}
}
