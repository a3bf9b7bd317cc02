package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-journal/internal/auth"
)

func TestPrintToken(t *testing.T) {
	j := auth.JWT{Secret: []byte("test-secret"), Issuer: "stock-journal", TokenTTL: time.Hour}

	t.Run("prints a verifiable token", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, printToken(&out, j, []string{"user-1"}))

		token := strings.SplitN(out.String(), "\n", 2)[0]
		claims, err := j.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID())
	})

	t.Run("requires exactly one user id", func(t *testing.T) {
		assert.Error(t, printToken(&bytes.Buffer{}, j, nil))
		assert.Error(t, printToken(&bytes.Buffer{}, j, []string{"a", "b"}))
		assert.Error(t, printToken(&bytes.Buffer{}, j, []string{""}))
	})
}
