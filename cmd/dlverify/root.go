package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/dlverify/pkg/types"
)

// GlobalFlags 全局标志
type GlobalFlags struct {
	ConfigPath string // JSON 配置文件路径
	LogLevel   string // 覆盖配置中的日志级别
}

// newRootCmd 构造根命令
func newRootCmd() *cobra.Command {
	flags := &GlobalFlags{}

	rootCmd := &cobra.Command{
		Use:   "dlverify",
		Short: "动态加载验证库命令行工具",
		Long: `dlverify - 按代码哈希加载原生验证库并执行验证

支持的操作:
- 计算库数据的代码哈希
- 构造 RSA 验证所需的布局缓冲区
- 对库文件执行 SMT / RSA / secp256k1 验证

验证失败时以原生状态码作为进程退出码。`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "JSON 配置文件路径")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "日志级别: debug|info|warn|error (默认取配置文件)")

	rootCmd.AddCommand(newCodeHashCmd())
	rootCmd.AddCommand(newRSAInfoCmd())
	rootCmd.AddCommand(newSMTCmd(flags))
	rootCmd.AddCommand(newRSACmd(flags))
	rootCmd.AddCommand(newSecp256k1Cmd(flags))

	return rootCmd
}

// Execute 执行根命令
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 执行命令并返回进程退出码
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode 状态码错误使用状态码本身，其余错误为 1
func exitCode(err error) int {
	var code types.StatusCode
	if errors.As(err, &code) {
		return int(code)
	}
	return 1
}
