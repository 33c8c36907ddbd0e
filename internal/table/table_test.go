package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableAlignment(t *testing.T) {
	tb := New("ID", "Variant", "Draws").AlignRight(0, 2)
	tb.Row("28", "improved/closed/inside/pseudocode", "70112")
	tb.Row("3", "baseline", "9")
	tb.Row("7") /* Short rows are padded. */
	require.Equal(t, 3, tb.Len())

	var b strings.Builder
	_, err := tb.WriteTo(&b)
	require.NoError(t, err)
	require.Equal(t, ""+
		"ID  Variant                            Draws\n"+
		"────────────────────────────────────────────\n"+
		"28  improved/closed/inside/pseudocode  70112\n"+
		" 3  baseline                               9\n"+
		" 7                                          \n", b.String())
}

func TestTableWideRunes(t *testing.T) {
	tb := New("名前", "x")
	tb.Row("a", "1")
	head, _ := tb.Header()
	require.Equal(t, "名前  x\n", head)
	require.Equal(t, "a     1\n", tb.Body())
}
