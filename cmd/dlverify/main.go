// dlverify 动态加载验证库的开发者命令行工具
//
// 用于离线检查库数据的代码哈希、构造 RSA 布局缓冲区，以及直接对库文件执行
// SMT / RSA / secp256k1 验证。验证失败时进程退出码即原生状态码。
package main

func main() {
	Execute()
}
