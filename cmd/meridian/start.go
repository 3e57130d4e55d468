package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridianchain/v1/internal/app"
)

// startCmd 启动查询节点并阻塞到收到退出信号
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "启动查询节点",
	RunE: func(cmd *cobra.Command, args []string) error {
		node := app.New(configPath)
		if err := node.Err(); err != nil {
			return fmt.Errorf("装配节点失败: %w", err)
		}

		startCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		if err := node.Start(startCtx); err != nil {
			return err
		}

		// 等待 SIGINT/SIGTERM
		sig := <-node.Wait()
		fmt.Printf("\n收到信号 %s，正在优雅关闭...\n", sig.Signal)

		stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelStop()
		return node.Stop(stopCtx)
	},
}
