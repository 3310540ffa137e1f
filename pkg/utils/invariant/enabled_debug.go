//go:build !release

package invariant

// Enabled 断言是否生效
const Enabled = true
