package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"CafeBackend/config"
	"CafeBackend/seed"
	"CafeBackend/theme"
)

const version = "1.0.0"

// cafe seed — 只執行預設資料文件合併，不啟動伺服器
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "讀取預設資料文件並合併進資料庫",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("讀取設定檔失敗: %w", err)
		}

		rdb, err := config.SetupRedisConnection(cfg)
		if err != nil {
			return fmt.Errorf("無法連接到Redis: %w", err)
		}
		defer rdb.Close()

		st, err := setupStore(cfg, rdb)
		if err != nil {
			return err
		}

		if err := seed.Initialize(context.Background(), st, theme.NewRedis(rdb), cfg.Seed.Source); err != nil {
			return err
		}

		fmt.Println("資料庫初始化完成")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "顯示版本",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cafe " + version)
	},
}
