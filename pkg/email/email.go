// Package email 定义上游解析器产出的 DKIM 邮件结构
//
// 邮件与 DKIM 头的解析不属于本模块；这里只描述验证层消费的形状：
// 一组按顺序排列的可签名消息（已规范化）和一组按相同顺序排列的 DKIM-Signature 头。
package email

// DKIMHeader 已解析的 DKIM-Signature 头
type DKIMHeader struct {
	Version   uint8  // v=
	Algorithm string // a=，例如 rsa-sha256
	SDID      string // d=
	Selector  string // s=
	Signature []byte // b=，已 base64 解码
}

// Email 预解析的邮件
type Email struct {
	DKIMHeaders []DKIMHeader

	dkimMessages []string
}

// New 由上游解析结果构造邮件
//
// messages[i] 是按 DKIMHeaders[i] 的规范化规则生成的待签名消息。
func New(messages []string, headers []DKIMHeader) *Email {
	return &Email{
		DKIMHeaders:  headers,
		dkimMessages: messages,
	}
}

// DKIMMessages 返回每个 DKIM 头对应的待签名消息
func (e *Email) DKIMMessages() []string {
	if e == nil {
		return nil
	}
	return e.dkimMessages
}
