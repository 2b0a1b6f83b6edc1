package dbutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinalizeRewritesLimit(t *testing.T) {
	query, args := Finalize("SELECT id FROM companies WHERE industry=? LIMIT ?,?", []interface{}{"it", 20, 10})
	require.Equal(t, "SELECT id FROM companies WHERE industry=$1 LIMIT $2 OFFSET $3", query)
	require.Equal(t, []interface{}{"it", 10, 20}, args)
}

func TestFinalizeWithoutLimit(t *testing.T) {
	query, args := Finalize("DELETE FROM offices WHERE id=?", []interface{}{"o1"})
	require.Equal(t, "DELETE FROM offices WHERE id=$1", query)
	require.Equal(t, []interface{}{"o1"}, args)
}

func TestJSONColumns(t *testing.T) {
	require.Equal(t, "[]", EncodeJSON([]string(nil), "[]"))
	require.Equal(t, `["seo","web"]`, EncodeJSON([]string{"seo", "web"}, "[]"))

	var out []string
	require.NoError(t, DecodeJSON(`["a"]`, &out))
	require.Equal(t, []string{"a"}, out)
	require.NoError(t, DecodeJSON("", &out))
	require.Error(t, DecodeJSON("{", &out))
}
