package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	ifdl "github.com/weisyn/dlverify/pkg/interfaces/dl"
	logiface "github.com/weisyn/dlverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/dlverify/pkg/lib/libsecp256k1"
	"github.com/weisyn/dlverify/pkg/lib/librsa"
	"github.com/weisyn/dlverify/pkg/lib/libsmt"
)

// newSMTCmd SMT 证明验证
func newSMTCmd(flags *GlobalFlags) *cobra.Command {
	var libPath, rootHex, keysHex, valuesHex, proofHex string

	cmd := &cobra.Command{
		Use:   "smt",
		Short: "验证 SMT 证明",
		Long:  "使用库文件中的 ckb_smt_verify 验证 keys/values（32 字节分片拼接）在 root 下的证明",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := make(map[string][]byte, 4)
			for name, value := range map[string]string{"root": rootHex, "keys": keysHex, "values": valuesHex, "proof": proofHex} {
				data, err := decodeHex(name, value)
				if err != nil {
					return err
				}
				inputs[name] = data
			}

			return runWithLibrary(flags, libPath, func(ctx context.Context, lib ifdl.Library, logger logiface.Logger) error {
				if err := libsmt.Load(lib).Verify(ctx, inputs["root"], inputs["keys"], inputs["values"], inputs["proof"]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&libPath, "lib", "", "库文件路径")
	cmd.Flags().StringVar(&rootHex, "root", "", "SMT 根（32 字节十六进制）")
	cmd.Flags().StringVar(&keysHex, "keys", "", "键分片拼接（十六进制）")
	cmd.Flags().StringVar(&valuesHex, "values", "", "值分片拼接（十六进制）")
	cmd.Flags().StringVar(&proofHex, "proof", "", "证明（十六进制）")
	_ = cmd.MarkFlagRequired("lib")
	_ = cmd.MarkFlagRequired("root")
	return cmd
}

// newRSACmd RSA 签名验证
func newRSACmd(flags *GlobalFlags) *cobra.Command {
	var libPath, signatureHex, messageHex string

	cmd := &cobra.Command{
		Use:   "rsa",
		Short: "验证 RSA 签名",
		Long:  "使用库文件中的 validate_signature_rsa 验证签名，--sig 为 rsainfo 输出的布局缓冲区；成功时输出公钥哈希",
		RunE: func(cmd *cobra.Command, args []string) error {
			signature, err := decodeHex("sig", signatureHex)
			if err != nil {
				return err
			}
			message, err := decodeHex("msg", messageHex)
			if err != nil {
				return err
			}

			return runWithLibrary(flags, libPath, func(ctx context.Context, lib ifdl.Library, logger logiface.Logger) error {
				rsa := librsa.Load(lib, librsa.WithLogger(logger))
				pubkeyHash, err := rsa.ValidateSignature(ctx, rsa.LoadPrefilledData(), signature, message)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), pubkeyHash)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&libPath, "lib", "", "库文件路径")
	cmd.Flags().StringVar(&signatureHex, "sig", "", "RSA 布局缓冲区（十六进制）")
	cmd.Flags().StringVar(&messageHex, "msg", "", "消息（十六进制）")
	_ = cmd.MarkFlagRequired("lib")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}

// newSecp256k1Cmd secp256k1 公钥恢复
func newSecp256k1Cmd(flags *GlobalFlags) *cobra.Command {
	var libPath, signatureHex, messageHex string

	cmd := &cobra.Command{
		Use:   "secp256k1",
		Short: "恢复 secp256k1 公钥",
		Long:  "加载预填充数据后使用 validate_signature_secp256k1 从签名恢复公钥并输出（65 字节十六进制）",
		RunE: func(cmd *cobra.Command, args []string) error {
			signature, err := decodeHex("sig", signatureHex)
			if err != nil {
				return err
			}
			message, err := decodeHex("msg", messageHex)
			if err != nil {
				return err
			}

			return runWithLibrary(flags, libPath, func(ctx context.Context, lib ifdl.Library, logger logiface.Logger) error {
				secp := libsecp256k1.Load(lib)
				prefilled, err := secp.LoadPrefilledData(ctx)
				if err != nil {
					return fmt.Errorf("加载预填充数据: %w", err)
				}
				pubkey, err := secp.RecoverPubkey(ctx, prefilled, signature, message)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), pubkey)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&libPath, "lib", "", "库文件路径")
	cmd.Flags().StringVar(&signatureHex, "sig", "", "签名（十六进制）")
	cmd.Flags().StringVar(&messageHex, "msg", "", "消息哈希（十六进制）")
	_ = cmd.MarkFlagRequired("lib")
	_ = cmd.MarkFlagRequired("sig")
	return cmd
}
