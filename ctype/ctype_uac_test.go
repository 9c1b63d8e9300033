package ctype

import "testing"

import "github.com/stretchr/testify/require"

var standardInts = []*CType{Bool8, Int8, UInt8, Int16, UInt16, Int32, UInt32, Int64, UInt64}

func TestUsualArithmeticConversionIsCommutative(t *testing.T) {
	for _, a := range standardInts {
		for _, b := range standardInts {
			got := UsualArithmeticConversion(a, b)
			swapped := UsualArithmeticConversion(b, a)
			require.Truef(t, got.Compatible(swapped),
				"UAC(%s,%s)=%s but UAC(%s,%s)=%s", a, b, got, b, a, swapped)
		}
	}
}

func TestUsualArithmeticConversionFixedPoint(t *testing.T) {
	for _, a := range standardInts {
		got := UsualArithmeticConversion(a, a)
		want := Promote(a)
		require.Truef(t, got.Compatible(want), "arith_conv(%s,%s) = %s, want %s", a, a, got, want)
	}
}

func TestUsualArithmeticConversionTable(t *testing.T) {
	cases := []struct {
		a, b, want *CType
	}{
		{Int32, Int64, Int64},
		{Int32, UInt32, UInt32},
		{Int8, Int16, Int32},
		{UInt8, Int8, Int32},
		{Int64, UInt64, UInt64},
		{Bool8, Int32, Int32},
	}
	for _, c := range cases {
		got := UsualArithmeticConversion(c.a, c.b)
		require.Truef(t, got.Compatible(c.want), "UAC(%s,%s) = %s, want %s", c.a, c.b, got, c.want)
	}
}

func TestPromoteWidensSubIntTypes(t *testing.T) {
	require.True(t, Promote(Bool8).Compatible(Int32))
	require.True(t, Promote(Int8).Compatible(Int32))
	require.True(t, Promote(UInt16).Compatible(Int32))
	require.True(t, Promote(Int64).Compatible(Int64))
	require.True(t, Promote(UInt64).Compatible(UInt64))
}
