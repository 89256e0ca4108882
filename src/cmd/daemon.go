package cmd

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ProjectsTask/EasySwapBase/logger/xzap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapMarket/src/api/router"
	"github.com/ProjectsTask/EasySwapMarket/src/app"
	"github.com/ProjectsTask/EasySwapMarket/src/config"
	"github.com/ProjectsTask/EasySwapMarket/src/service/svc"
)

// DaemonCmd 启动市场引擎 HTTP 服务
var DaemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "run easy swap market engine.",
	Long:  "run easy swap market engine.",
	Run: func(cmd *cobra.Command, args []string) {
		wg := &sync.WaitGroup{}
		wg.Add(1)

		ctx := context.Background()
		ctx, cancel := context.WithCancel(ctx)

		// 服务启动或运行过程中的错误通过该 chan 通知
		onSrvExit := make(chan error, 1)

		go func() {
			defer wg.Done()

			// 1. 读取配置
			cfg, err := config.UnmarshalCmdConfig()
			if err != nil {
				onSrvExit <- err
				return
			}

			// 2. 初始化服务上下文 (日志/Redis/MySQL/引擎)
			serverCtx, err := svc.NewServiceContext(cfg)
			if err != nil {
				onSrvExit <- err
				return
			}
			xzap.WithContext(ctx).Info("market server start", zap.Any("config", cfg))

			// 3. Pprof 按需开启
			if cfg.Monitor != nil && cfg.Monitor.PprofEnable {
				go func() {
					_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", cfg.Monitor.PprofPort), nil)
				}()
			}

			// 4. 组装路由并启动 HTTP 服务
			r := router.NewRouter(serverCtx)
			platform, err := app.NewPlatform(cfg, r, serverCtx)
			if err != nil {
				onSrvExit <- err
				return
			}
			platform.Start()
		}()

		onSignal := make(chan os.Signal, 1)
		signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-onSignal:
			cancel()
			xzap.WithContext(ctx).Info("Exit by signal", zap.String("signal", sig.String()))
		case err := <-onSrvExit:
			cancel()
			xzap.WithContext(ctx).Error("Exit by error", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(DaemonCmd)
}
