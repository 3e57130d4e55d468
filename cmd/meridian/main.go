// meridian 账本查询节点入口
//
// 用法:
//
//	meridian start --config /etc/meridian/config.json
//	meridian version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "meridian",
	Short: "Meridian 账本查询节点",
	Long: `Meridian 版本化对象账本的只读查询节点。

对外暴露JSON-RPC 2.0接口，提供:
- 对象当前状态与历史版本查询
- 地址持有对象与动态字段索引
- 交易与检查点查询
- 合约包规范化与函数签名内省`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径 (默认使用内置配置)")
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}
