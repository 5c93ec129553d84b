package enum

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("create a enum of string", func(t *testing.T) {
		type EnumString string

		bar := New(EnumString("bar"))
		require.Equal(t, bar, EnumString("bar"))

		v, err := ToEnum[EnumString]("bar")
		require.NoError(t, err)
		require.Equal(t, v, bar)

		_, err = ToEnum[EnumString]("Bar")
		require.Error(t, err)
	})

	t.Run("unknown enum type", func(t *testing.T) {
		type NeverRegistered string

		_, err := ToEnum[NeverRegistered]("foo")
		require.Error(t, err)
	})

	t.Run("list values", func(t *testing.T) {
		type Color string

		New(Color("red"))
		New(Color("blue"))

		values := Values[Color]()
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
		require.Equal(t, []Color{"blue", "red"}, values)
	})
}
