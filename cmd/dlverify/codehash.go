package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weisyn/dlverify/internal/core/dl"
	"github.com/weisyn/dlverify/pkg/lib/rsainfo"
	"github.com/weisyn/dlverify/pkg/types"
)

// newCodeHashCmd 计算库文件的代码哈希
func newCodeHashCmd() *cobra.Command {
	var expect string

	cmd := &cobra.Command{
		Use:   "codehash <file>",
		Short: "计算库数据的代码哈希",
		Long:  "计算库文件内容的 blake2b-256 代码哈希，即加载该库时使用的标识；指定 --expect 时校验是否一致",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("读取库文件: %w", err)
			}

			hash := dl.CodeHashOf(data)
			if expect != "" {
				want, err := types.ParseCodeHash(expect)
				if err != nil {
					return fmt.Errorf("参数 --expect 不是合法的代码哈希: %w", err)
				}
				if want != hash {
					return fmt.Errorf("代码哈希不一致: got=%s want=%s", hash, want)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&expect, "expect", "", "期望的代码哈希（十六进制）")
	return cmd
}

// newRSAInfoCmd 构造 RSA 布局缓冲区
func newRSAInfoCmd() *cobra.Command {
	var modulusHex, signatureHex string
	var exponent uint32

	cmd := &cobra.Command{
		Use:   "rsainfo",
		Short: "构造 RSA 布局缓冲区",
		Long:  "按 (n, e, sig) 构造 RSA 验证使用的布局缓冲区并以十六进制输出",
		RunE: func(cmd *cobra.Command, args []string) error {
			modulus, err := decodeHex("n", modulusHex)
			if err != nil {
				return err
			}
			signature, err := decodeHex("sig", signatureHex)
			if err != nil {
				return err
			}

			info, err := rsainfo.Encode(modulus, exponent, signature)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%x\n", info)
			return nil
		},
	}

	cmd.Flags().StringVar(&modulusHex, "n", "", "模数 n（大端十六进制）")
	cmd.Flags().Uint32Var(&exponent, "e", 65537, "公钥指数 e")
	cmd.Flags().StringVar(&signatureHex, "sig", "", "签名（十六进制，长度与 n 相同）")
	_ = cmd.MarkFlagRequired("n")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}
