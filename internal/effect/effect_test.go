package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalPayload(t *testing.T) {
	e := New(KindBankSend, 7, BankSend{
		To:     "0x1000000000000000000000000000000000000001",
		Denom:  "uusd",
		Amount: 50,
	})

	payload, err := e.MarshalPayload()
	require.NoError(t, err)
	assert.JSONEq(t, `{"to":"0x1000000000000000000000000000000000000001","denom":"uusd","amount":50}`, payload)
	assert.Equal(t, KindBankSend, e.Kind)
	assert.Equal(t, int64(7), e.ProjectId)
}
