package librsa

import (
	"context"

	"github.com/weisyn/dlverify/pkg/email"
	"github.com/weisyn/dlverify/pkg/lib/rsainfo"
	"github.com/weisyn/dlverify/pkg/types"
)

// VerifyDKIMSignature 用公钥 (e, n) 匹配邮件中的 DKIM 签名
//
// 待签名消息与 DKIM 头按顺序两两配对，配对数取两者中较短的长度，多出的元素被忽略。
// 任意一对验证通过即返回成功，后续候选不再尝试；单个候选的失败（布局编码失败或
// 原生验证失败）不会中断扫描。全部失败时返回 types.ErrDKIMNotFound。
func (l *LibRSA) VerifyDKIMSignature(ctx context.Context, mail *email.Email, exponent uint32, modulus []byte) error {
	if mail == nil {
		return types.ErrDKIMNotFound
	}

	messages := mail.DKIMMessages()
	pairs := len(messages)
	if len(mail.DKIMHeaders) < pairs {
		pairs = len(mail.DKIMHeaders)
	}

	prefilledData := l.LoadPrefilledData()
	for i := 0; i < pairs; i++ {
		header := &mail.DKIMHeaders[i]

		info, err := rsainfo.Encode(modulus, exponent, header.Signature)
		if err != nil {
			l.debugf("DKIM 候选 %d 编码失败: selector=%s sdid=%s err=%v", i, header.Selector, header.SDID, err)
			continue
		}

		if _, err := l.ValidateSignature(ctx, prefilledData, info, []byte(messages[i])); err != nil {
			l.debugf("DKIM 候选 %d 验证失败: selector=%s sdid=%s err=%v", i, header.Selector, header.SDID, err)
			continue
		}

		l.debugf("DKIM 候选 %d 验证通过: selector=%s sdid=%s", i, header.Selector, header.SDID)
		return nil
	}

	return types.ErrDKIMNotFound
}

func (l *LibRSA) debugf(format string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Debugf(format, args...)
	}
}
