package dl

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

const wasmPageSize = 65536

// arena 外部调用参数的暂存区
//
// 暂存区是在宿主侧通过 memory.grow 追加到线性内存末尾的页，原生库自身的分配器
// 在其之后增长，因此两者不会重叠。每次调用从 base 开始按 8 字节对齐向上分配，
// 调用结束后 reset 回到 base。
//
// 当剩余空间不足时：若暂存区仍位于内存末尾则原地扩展；若原生库在此期间扩容过
// 内存，则在新的末尾重新申请一段区域。已分配的指针在一次调用内始终有效。
type arena struct {
	base         uint32 // 当前区域起始地址
	top          uint32 // 下一个可分配地址
	end          uint32 // 当前区域结束地址（不含）
	initialPages uint32 // 首次申请的页数
}

func newArena(initialPages uint32) *arena {
	if initialPages == 0 {
		initialPages = 1
	}
	return &arena{initialPages: initialPages}
}

// allocate 分配 size 字节，内容未定义
//
// 零大小分配按 8 字节处理，保证返回的指针指向有效区域。
func (a *arena) allocate(memory api.Memory, size uint32) (uint32, error) {
	if size == 0 {
		size = 8
	}
	if size > ^uint32(0)-7 {
		return 0, fmt.Errorf("暂存区分配过大: %d bytes", size)
	}
	alignedSize := (size + 7) &^ uint32(7)

	if a.end == 0 || uint64(a.top)+uint64(alignedSize) > uint64(a.end) {
		if err := a.reserve(memory, alignedSize); err != nil {
			return 0, err
		}
	}

	ptr := a.top
	a.top += alignedSize
	return ptr, nil
}

// allocateZeroed 分配并清零
func (a *arena) allocateZeroed(memory api.Memory, size uint32) (uint32, error) {
	ptr, err := a.allocate(memory, size)
	if err != nil {
		return 0, err
	}
	if size == 0 {
		size = 8
	}
	if !memory.Write(ptr, make([]byte, size)) {
		return 0, fmt.Errorf("暂存区清零越界: ptr=%d size=%d memSize=%d", ptr, size, memory.Size())
	}
	return ptr, nil
}

// reserve 保证至少还有 need 字节可用
func (a *arena) reserve(memory api.Memory, need uint32) error {
	memSize := memory.Size()

	// 暂存区仍在内存末尾：原地扩展
	if a.end != 0 && a.end == memSize {
		missing := uint64(a.top) + uint64(need) - uint64(a.end)
		pages := uint32((missing + wasmPageSize - 1) / wasmPageSize)
		if _, ok := memory.Grow(pages); !ok {
			return fmt.Errorf("暂存区扩容失败: 需要 %d 页, 当前 %d 页", pages, memSize/wasmPageSize)
		}
		a.end = memory.Size()
		return nil
	}

	// 首次使用或原生库扩容过内存：在新的末尾申请区域
	pages := uint32((uint64(need) + wasmPageSize - 1) / wasmPageSize)
	if pages < a.initialPages {
		pages = a.initialPages
	}
	previousPages, ok := memory.Grow(pages)
	if !ok {
		return fmt.Errorf("暂存区申请失败: 需要 %d 页, 当前 %d 页", pages, memSize/wasmPageSize)
	}

	a.base = previousPages * wasmPageSize
	a.top = a.base
	a.end = memory.Size()
	return nil
}

// reset 释放本次调用的全部分配
func (a *arena) reset() {
	a.top = a.base
}
