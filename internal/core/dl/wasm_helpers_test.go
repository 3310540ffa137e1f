package dl

// 测试用的最小 wasm 模块构造器
//
// 真实的原生库由外部工具链产出，这里只需要能够把参数原样转发给宿主函数的
// 蹦床模块，以及若干异常形态的模块（无内存、无导出、trap）。

const (
	valI32 byte = 0x7f
	valI64 byte = 0x7e
)

var (
	sigSMT       = funcType{params: []byte{valI32, valI32, valI32, valI32, valI32, valI32}, result: valI32}
	sigValidate  = funcType{params: []byte{valI32, valI32, valI64, valI32, valI64, valI32, valI32}, result: valI32}
	sigPrefilled = funcType{params: []byte{valI32, valI32}, result: valI32}
	sigSighash   = funcType{params: []byte{valI32}, result: valI32}
)

type funcType struct {
	params []byte
	result byte
}

func uleb128(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func wasmName(s string) []byte {
	return append(uleb128(uint32(len(s))), s...)
}

func wasmVector(items [][]byte) []byte {
	out := uleb128(uint32(len(items)))
	for _, item := range items {
		out = append(out, item...)
	}
	return out
}

func wasmSection(id byte, payload []byte) []byte {
	out := []byte{id}
	out = append(out, uleb128(uint32(len(payload)))...)
	return append(out, payload...)
}

var wasmHeader = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// memorySection 一块初始 pages 页、无上限的内存
func memorySection(pages uint32) []byte {
	return wasmSection(0x05, append([]byte{0x01, 0x00}, uleb128(pages)...))
}

func exportEntry(name string, kind byte, index uint32) []byte {
	out := wasmName(name)
	out = append(out, kind)
	return append(out, uleb128(index)...)
}

// trampolineExport 导出名 → 宿主导入名
type trampolineExport struct {
	export string
	host   string
	sig    funcType
}

// buildTrampolineModule 每个导出函数把全部参数转发给同签名的 env 导入
func buildTrampolineModule(exports []trampolineExport) []byte {
	var typeItems, imports, funcs, exportItems, bodies [][]byte

	for i, e := range exports {
		t := []byte{0x60}
		t = append(t, uleb128(uint32(len(e.sig.params)))...)
		t = append(t, e.sig.params...)
		t = append(t, 0x01, e.sig.result)
		typeItems = append(typeItems, t)

		imp := wasmName("env")
		imp = append(imp, wasmName(e.host)...)
		imp = append(imp, 0x00)
		imp = append(imp, uleb128(uint32(i))...)
		imports = append(imports, imp)

		funcs = append(funcs, uleb128(uint32(i)))
	}

	exportItems = append(exportItems, exportEntry("memory", 0x02, 0))
	for i, e := range exports {
		// 导入函数占据索引 [0, n)，本地函数从 n 开始
		exportItems = append(exportItems, exportEntry(e.export, 0x00, uint32(len(exports)+i)))

		body := []byte{0x00} // 无局部变量
		for p := range e.sig.params {
			body = append(body, 0x20)
			body = append(body, uleb128(uint32(p))...)
		}
		body = append(body, 0x10)
		body = append(body, uleb128(uint32(i))...)
		body = append(body, 0x0b)
		bodies = append(bodies, append(uleb128(uint32(len(body))), body...))
	}

	module := append([]byte{}, wasmHeader...)
	module = append(module, wasmSection(0x01, wasmVector(typeItems))...)
	module = append(module, wasmSection(0x02, wasmVector(imports))...)
	module = append(module, wasmSection(0x03, wasmVector(funcs))...)
	module = append(module, memorySection(1)...)
	module = append(module, wasmSection(0x07, wasmVector(exportItems))...)
	module = append(module, wasmSection(0x0a, wasmVector(bodies))...)
	return module
}

// buildMemoryOnlyModule 只导出内存，没有任何函数
func buildMemoryOnlyModule() []byte {
	return buildNamedMemoryModule("memory")
}

// buildNamedMemoryModule 以指定名称导出内存
func buildNamedMemoryModule(name string) []byte {
	module := append([]byte{}, wasmHeader...)
	module = append(module, memorySection(1)...)
	return append(module, wasmSection(0x07, wasmVector([][]byte{exportEntry(name, 0x02, 0)}))...)
}

// buildEmptyModule 既无内存也无导出
func buildEmptyModule() []byte {
	return append([]byte{}, wasmHeader...)
}

// buildTrapModule 导出的 ckb_smt_verify 直接执行 unreachable
func buildTrapModule() []byte {
	return buildSMTStubModule([]byte{0x00, 0x00, 0x0b}, true) // 无局部变量; unreachable; end
}

// buildNoMemorySMTModule 导出返回 0 的 ckb_smt_verify，但不声明内存
func buildNoMemorySMTModule() []byte {
	return buildSMTStubModule([]byte{0x00, 0x41, 0x00, 0x0b}, false) // 无局部变量; i32.const 0; end
}

// buildSMTStubModule 只含一个本地函数 ckb_smt_verify 的模块
func buildSMTStubModule(body []byte, withMemory bool) []byte {
	t := []byte{0x60}
	t = append(t, uleb128(uint32(len(sigSMT.params)))...)
	t = append(t, sigSMT.params...)
	t = append(t, 0x01, sigSMT.result)

	exportItems := [][]byte{exportEntry(symbolCKBSMTVerify, 0x00, 0)}

	module := append([]byte{}, wasmHeader...)
	module = append(module, wasmSection(0x01, wasmVector([][]byte{t}))...)
	module = append(module, wasmSection(0x03, wasmVector([][]byte{{0x00}}))...)
	if withMemory {
		module = append(module, memorySection(1)...)
		exportItems = append(exportItems, exportEntry("memory", 0x02, 0))
	}
	module = append(module, wasmSection(0x07, wasmVector(exportItems))...)
	module = append(module, wasmSection(0x0a, wasmVector([][]byte{append(uleb128(uint32(len(body))), body...)}))...)
	return module
}
