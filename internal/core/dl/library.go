package dl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tetratelabs/wazero/api"

	dlconfig "github.com/weisyn/dlverify/internal/config/dl"
	ifdl "github.com/weisyn/dlverify/pkg/interfaces/dl"
	"github.com/weisyn/dlverify/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/dlverify/pkg/types"
)

// 原生导出符号名
const (
	symbolLoadPrefilledData    = "load_prefilled_data"
	symbolValidateSecp256k1    = "validate_signature_secp256k1"
	symbolValidateSighashAll   = "validate_secp256k1_blake2b_sighash_all"
	symbolValidateSignatureRSA = "validate_signature_rsa"
	symbolCKBSMTVerify         = "ckb_smt_verify"
)

// library 已实例化的原生库
//
// 一个实例只有一块线性内存和一个暂存区，不可重入，所有外部调用经 mu 串行化。
type library struct {
	name     string
	codeHash types.CodeHash
	module   api.Module
	memory   api.Memory
	logger   log.Logger

	callTimeout time.Duration

	mu    sync.Mutex
	arena *arena
}

var _ ifdl.Library = (*library)(nil)

func newLibrary(name string, codeHash types.CodeHash, module api.Module, memory api.Memory, cfg *dlconfig.Config, logger log.Logger) *library {
	return &library{
		name:        name,
		codeHash:    codeHash,
		module:      module,
		memory:      memory,
		logger:      logger,
		callTimeout: cfg.GetCallTimeout(),
		arena:       newArena(cfg.GetScratchPages()),
	}
}

func (l *library) Name() string                     { return l.name }
func (l *library) CodeHash() types.CodeHash         { return l.codeHash }
func (l *library) Secp256k1() ifdl.Secp256k1Symbols { return secp256k1Symbols{l} }
func (l *library) RSA() ifdl.RSASymbols             { return rsaSymbols{l} }
func (l *library) SMT() ifdl.SMTSymbols             { return smtSymbols{l} }

// frame 一次外部调用的参数编组状态
//
// 编组过程中的第一个错误被记录在 err 中，后续操作全部跳过。
type frame struct {
	memory  api.Memory
	arena   *arena
	outputs []outputRegion
	cells   []lengthCell
	err     error
}

type outputRegion struct {
	ptr uint32
	buf []byte
}

type lengthCell struct {
	ptr   uint32
	value *uint64
}

// input 复制输入缓冲区；空缓冲区得到一块有效的零填充区域
func (f *frame) input(data []byte) uint64 {
	if f.err != nil {
		return 0
	}
	if len(data) == 0 {
		ptr, err := f.arena.allocateZeroed(f.memory, 0)
		f.err = err
		return uint64(ptr)
	}
	ptr, err := f.arena.allocate(f.memory, uint32(len(data)))
	if err != nil {
		f.err = err
		return 0
	}
	if !f.memory.Write(ptr, data) {
		f.err = fmt.Errorf("写入参数越界: ptr=%d size=%d", ptr, len(data))
		return 0
	}
	return uint64(ptr)
}

// nullableInput nil 编组为 NULL（0）
func (f *frame) nullableInput(data []byte) uint64 {
	if data == nil {
		return 0
	}
	return f.input(data)
}

// output 预留零填充的输出区域，调用结束后复制回 buf
func (f *frame) output(buf []byte) uint64 {
	if f.err != nil {
		return 0
	}
	ptr, err := f.arena.allocateZeroed(f.memory, uint32(len(buf)))
	if err != nil {
		f.err = err
		return 0
	}
	f.outputs = append(f.outputs, outputRegion{ptr: ptr, buf: buf})
	return uint64(ptr)
}

// length 编组 *uint64 长度参数（小端），调用结束后回写
func (f *frame) length(value *uint64) uint64 {
	if f.err != nil {
		return 0
	}
	ptr, err := f.arena.allocate(f.memory, 8)
	if err != nil {
		f.err = err
		return 0
	}
	if !f.memory.WriteUint64Le(ptr, *value) {
		f.err = fmt.Errorf("写入长度参数越界: ptr=%d", ptr)
		return 0
	}
	f.cells = append(f.cells, lengthCell{ptr: ptr, value: value})
	return uint64(ptr)
}

// copyBack 将输出区域与长度参数复制回调用方
func (f *frame) copyBack() {
	for _, out := range f.outputs {
		data, ok := f.memory.Read(out.ptr, uint32(len(out.buf)))
		if !ok {
			f.err = fmt.Errorf("读取输出越界: ptr=%d size=%d", out.ptr, len(out.buf))
			return
		}
		copy(out.buf, data)
	}
	for _, cell := range f.cells {
		value, ok := f.memory.ReadUint64Le(cell.ptr)
		if !ok {
			f.err = fmt.Errorf("读取长度参数越界: ptr=%d", cell.ptr)
			return
		}
		*cell.value = value
	}
}

// call 执行一次外部调用
//
// marshal 按原生签名顺序返回参数。返回值为符号扩展后的原生状态码；
// 缺失符号返回 types.ErrSymbolNotFound，trap 或内存访问失败返回 types.ErrForeignCallFault。
func (l *library) call(ctx context.Context, symbol string, marshal func(f *frame) []uint64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.arena.reset()

	start := time.Now()

	fn := l.module.ExportedFunction(symbol)
	if fn == nil {
		if l.logger != nil {
			l.logger.Errorf("原生库未导出符号: lib=%s symbol=%s", l.name, symbol)
		}
		recordForeignCall(symbol, callResultFault, time.Since(start))
		return int64(types.ErrSymbolNotFound)
	}

	if l.memory == nil {
		return l.fault(symbol, start, "库未导出线性内存", ErrNoMemory)
	}

	f := &frame{memory: l.memory, arena: l.arena}
	params := marshal(f)
	if f.err != nil {
		return l.fault(symbol, start, "参数编组失败", f.err)
	}

	callCtx := ctx
	if l.callTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, l.callTimeout)
		defer cancel()
	}

	results, err := fn.Call(callCtx, params...)
	if err != nil {
		return l.fault(symbol, start, "外部调用失败", err)
	}
	if len(results) != 1 {
		return l.fault(symbol, start, "外部调用返回值数量异常", fmt.Errorf("got %d results", len(results)))
	}

	f.copyBack()
	if f.err != nil {
		return l.fault(symbol, start, "结果回写失败", f.err)
	}

	// wasm32 isize 为 i32，按有符号解释
	code := int64(int32(uint32(results[0])))
	if code == 0 {
		recordForeignCall(symbol, callResultOK, time.Since(start))
	} else {
		recordForeignCall(symbol, callResultStatus, time.Since(start))
	}
	return code
}

func (l *library) fault(symbol string, start time.Time, what string, err error) int64 {
	if l.logger != nil {
		l.logger.Errorf("%s: lib=%s symbol=%s err=%v", what, l.name, symbol, err)
	}
	recordForeignCall(symbol, callResultFault, time.Since(start))
	return int64(types.ErrForeignCallFault)
}

type secp256k1Symbols struct{ lib *library }

func (s secp256k1Symbols) LoadPrefilledData(ctx context.Context, data []byte, length *uint64) int64 {
	return s.lib.call(ctx, symbolLoadPrefilledData, func(f *frame) []uint64 {
		return []uint64{f.output(data), f.length(length)}
	})
}

func (s secp256k1Symbols) ValidateSignatureSecp256k1(ctx context.Context, prefilledData, signature, message, output []byte, outputLen *uint64) int64 {
	return s.lib.call(ctx, symbolValidateSecp256k1, func(f *frame) []uint64 {
		return []uint64{
			f.nullableInput(prefilledData),
			f.input(signature),
			uint64(len(signature)),
			f.input(message),
			uint64(len(message)),
			f.output(output),
			f.length(outputLen),
		}
	})
}

func (s secp256k1Symbols) ValidateSecp256k1Blake2bSighashAll(ctx context.Context, outputPublicKeyHash []byte) int64 {
	return s.lib.call(ctx, symbolValidateSighashAll, func(f *frame) []uint64 {
		return []uint64{f.output(outputPublicKeyHash)}
	})
}

type rsaSymbols struct{ lib *library }

func (s rsaSymbols) ValidateSignatureRSA(ctx context.Context, prefilledData, signature, message, output []byte, outputLen *uint64) int64 {
	return s.lib.call(ctx, symbolValidateSignatureRSA, func(f *frame) []uint64 {
		return []uint64{
			f.nullableInput(prefilledData),
			f.input(signature),
			uint64(len(signature)),
			f.input(message),
			uint64(len(message)),
			f.output(output),
			f.length(outputLen),
		}
	})
}

type smtSymbols struct{ lib *library }

func (s smtSymbols) CKBSMTVerify(ctx context.Context, root []byte, pairLen uint32, keys, values, proof []byte, proofLength uint32) int64 {
	return s.lib.call(ctx, symbolCKBSMTVerify, func(f *frame) []uint64 {
		return []uint64{
			f.input(root),
			uint64(pairLen),
			f.input(keys),
			f.input(values),
			f.input(proof),
			uint64(proofLength),
		}
	})
}
