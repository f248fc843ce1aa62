package spotlight

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type named struct{ name string }

func label(n named) string { return n.name }

func TestFind(t *testing.T) {
	items := []named{{"Dosen Tetap"}, {"Tenaga Ahli"}, {"Asisten Ahli"}, {"Lektor"}}

	require.Equal(t, items, Find("  ", items, label))
	// closer names rank first
	require.Equal(t, []named{{"Tenaga Ahli"}, {"Asisten Ahli"}}, Find("ahli", items, label))
	require.Equal(t, []named{{"Lektor"}}, Find("LEK", items, label))
	require.Empty(t, Find("zzz", items, label))
}

func TestFind_EqualRanksKeepInputOrder(t *testing.T) {
	items := []named{{"Ahli B"}, {"Ahli A"}, {"Lektor"}}
	require.Equal(t, []named{{"Ahli B"}, {"Ahli A"}}, Find("ahli", items, label))
}
