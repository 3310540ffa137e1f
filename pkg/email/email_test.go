package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDKIMMessages(t *testing.T) {
	headers := []DKIMHeader{{Version: 1, Algorithm: "rsa-sha256", SDID: "example.com", Selector: "s1"}}
	mail := New([]string{"canonical"}, headers)

	assert.Equal(t, []string{"canonical"}, mail.DKIMMessages())
	assert.Equal(t, headers, mail.DKIMHeaders)

	var missing *Email
	assert.Nil(t, missing.DKIMMessages())
}
