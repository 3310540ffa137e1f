package librsa

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weisyn/dlverify/internal/testutil"
	"github.com/weisyn/dlverify/pkg/email"
	"github.com/weisyn/dlverify/pkg/lib/rsainfo"
	"github.com/weisyn/dlverify/pkg/types"
)

const testExponent = 65537

var testModulus = bytes.Repeat([]byte{0xC3}, 256)

func header(selector string, sig []byte) email.DKIMHeader {
	return email.DKIMHeader{
		Version:   1,
		Algorithm: "rsa-sha256",
		SDID:      "example.com",
		Selector:  selector,
		Signature: sig,
	}
}

func sig(b byte) []byte {
	return bytes.Repeat([]byte{b}, len(testModulus))
}

// acceptMessage 只接受指定消息
func acceptMessage(want string) func(signature, message []byte) int64 {
	return func(_, message []byte) int64 {
		if string(message) == want {
			return 0
		}
		return 3
	}
}

// TestVerifyDKIMSignature_ShortCircuit 三个候选中只有第二个通过：成功且不尝试第三个
func TestVerifyDKIMSignature_ShortCircuit(t *testing.T) {
	f := &fakeRSA{verdict: acceptMessage("msg-1")}
	lib := newLib(f)

	mail := email.New(
		[]string{"msg-0", "msg-1", "msg-2"},
		[]email.DKIMHeader{header("s0", sig(0xA0)), header("s1", sig(0xA1)), header("s2", sig(0xA2))},
	)

	err := lib.VerifyDKIMSignature(context.Background(), mail, testExponent, testModulus)
	require.NoError(t, err)

	require.Len(t, f.calls, 2, "第三个候选不应被尝试")
	assert.Equal(t, []byte("msg-0"), f.calls[0].message)
	assert.Equal(t, []byte("msg-1"), f.calls[1].message)

	// 签名参数是按 (n, e, header.Signature) 编码的布局缓冲区
	want, err := rsainfo.Encode(testModulus, testExponent, sig(0xA1))
	require.NoError(t, err)
	assert.Equal(t, want, f.calls[1].signature)
	assert.Equal(t, uint32(testExponent), binary.LittleEndian.Uint32(f.calls[1].signature[8:12]))
	for _, c := range f.calls {
		assert.True(t, c.prefilledNil)
		assert.True(t, c.outputWasZero)
	}
}

func TestVerifyDKIMSignature_FirstMatch(t *testing.T) {
	f := &fakeRSA{}
	lib := newLib(f)

	mail := email.New(
		[]string{"a", "b"},
		[]email.DKIMHeader{header("s0", sig(1)), header("s1", sig(2))},
	)

	require.NoError(t, lib.VerifyDKIMSignature(context.Background(), mail, testExponent, testModulus))
	assert.Len(t, f.calls, 1)
}

// TestVerifyDKIMSignature_NoMatch 全部候选失败时只报告耗尽
func TestVerifyDKIMSignature_NoMatch(t *testing.T) {
	f := &fakeRSA{verdict: func(_, _ []byte) int64 { return 77 }}
	lib := newLib(f)

	mail := email.New(
		[]string{"a", "b", "c"},
		[]email.DKIMHeader{header("s0", sig(1)), header("s1", sig(2)), header("s2", sig(3))},
	)

	err := lib.VerifyDKIMSignature(context.Background(), mail, testExponent, testModulus)
	assert.Equal(t, types.ErrDKIMNotFound, err)
	assert.Equal(t, int32(1), types.CodeOf(err))
	assert.Len(t, f.calls, 3)
}

// TestVerifyDKIMSignature_EncodeFailureSkipsCandidate 长度不符的候选被跳过，不中断扫描
func TestVerifyDKIMSignature_EncodeFailureSkipsCandidate(t *testing.T) {
	logger := &testutil.BehavioralMockLogger{}
	f := &fakeRSA{}
	lib := newLib(f, WithLogger(logger))

	mail := email.New(
		[]string{"bad", "good"},
		[]email.DKIMHeader{header("s0", []byte{1, 2, 3}), header("s1", sig(9))},
	)

	require.NoError(t, lib.VerifyDKIMSignature(context.Background(), mail, testExponent, testModulus))
	require.Len(t, f.calls, 1, "编码失败的候选不应到达原生调用")
	assert.Equal(t, []byte("good"), f.calls[0].message)

	logs := logger.GetLogs()
	require.Len(t, logs, 2)
	assert.Contains(t, logs[0], "编码失败")
	assert.Contains(t, logs[1], "验证通过")
}

func TestVerifyDKIMSignature_AllEncodeFailures(t *testing.T) {
	f := &fakeRSA{}
	lib := newLib(f)

	mail := email.New([]string{"a"}, []email.DKIMHeader{header("s0", []byte{1})})

	err := lib.VerifyDKIMSignature(context.Background(), mail, testExponent, testModulus)
	assert.Equal(t, types.ErrDKIMNotFound, err)
	assert.Empty(t, f.calls)
}

// TestVerifyDKIMSignature_ZipTruncation 两个序列长度不同时按较短者截断
func TestVerifyDKIMSignature_ZipTruncation(t *testing.T) {
	t.Run("消息多于签名头", func(t *testing.T) {
		f := &fakeRSA{verdict: acceptMessage("extra")}
		lib := newLib(f)

		mail := email.New(
			[]string{"m0", "extra"},
			[]email.DKIMHeader{header("s0", sig(1))},
		)

		err := lib.VerifyDKIMSignature(context.Background(), mail, testExponent, testModulus)
		assert.Equal(t, types.ErrDKIMNotFound, err, "多出的消息不参与匹配")
		assert.Len(t, f.calls, 1)
	})

	t.Run("签名头多于消息", func(t *testing.T) {
		f := &fakeRSA{}
		lib := newLib(f)

		mail := email.New(nil, []email.DKIMHeader{header("s0", sig(1)), header("s1", sig(2))})

		err := lib.VerifyDKIMSignature(context.Background(), mail, testExponent, testModulus)
		assert.Equal(t, types.ErrDKIMNotFound, err)
		assert.Empty(t, f.calls)
	})
}

func TestVerifyDKIMSignature_NilEmail(t *testing.T) {
	f := &fakeRSA{}
	lib := newLib(f)

	assert.Equal(t, types.ErrDKIMNotFound, lib.VerifyDKIMSignature(context.Background(), nil, testExponent, testModulus))
	assert.Empty(t, f.calls)
}
