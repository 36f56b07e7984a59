package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Rank-1 views are the only algorithm sources.
var (
	_ Source[float32] = View[float32]{}
	_ Source[float32] = ConstView[float32]{}
)

func TestDataTypeOf(t *testing.T) {
	type celsius float64

	assert.Equal(t, Float32, DataTypeOf[float32]())
	assert.Equal(t, Float64, DataTypeOf[float64]())
	assert.Equal(t, Float64, DataTypeOf[celsius]())
	assert.Equal(t, Int32, DataTypeOf[int32]())
	assert.Equal(t, Int64, DataTypeOf[int64]())
	assert.Equal(t, Uint8, DataTypeOf[uint8]())
	assert.Equal(t, Bool, DataTypeOf[bool]())
	assert.Equal(t, 8, DataTypeOf[int64]().Size())
	assert.Equal(t, "uint8", Uint8.String())
}

func TestLayoutStrides(t *testing.T) {
	tests := []struct {
		layout Layout
		shape  Shape
		want   []int
	}{
		{LayoutRight, Shape{3, 4}, []int{4, 1}},
		{LayoutLeft, Shape{3, 4}, []int{1, 3}},
		{LayoutRight, Shape{2, 3, 4}, []int{12, 4, 1}},
		{LayoutLeft, Shape{2, 3, 4}, []int{1, 2, 6}},
		{LayoutRight, Shape{}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.layout.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.layout.Strides(tt.shape))
		})
	}
}

func TestShape(t *testing.T) {
	assert.Equal(t, 12, Shape{3, 4}.NumElements())
	assert.Equal(t, 0, Shape{3, 0}.NumElements())
	require.NoError(t, Shape{0}.Validate())
	require.Error(t, Shape{2, -1}.Validate())
	assert.True(t, Shape{1, 2}.Equal(Shape{1, 2}))
	assert.False(t, Shape{1, 2}.Equal(Shape{2, 1}))
	assert.False(t, Shape{1}.Equal(Shape{1, 1}))
}

func TestWrapSharesStorage(t *testing.T) {
	data := []int32{1, 2, 3}
	v := Wrap("w", data)

	v.Set(1, 20)
	assert.Equal(t, int32(20), data[1])
	assert.Equal(t, 3, v.Extent())
	assert.Equal(t, 1, v.Rank())
	assert.Equal(t, LayoutRight, v.Layout())
	assert.Equal(t, Int32, v.DType())
	assert.Equal(t, "w", v.Label())
}

func TestSubview(t *testing.T) {
	v := Wrap("v", []float64{0, 1, 2, 3, 4, 5})
	sub := Subview(v, 2, 5)

	assert.Equal(t, []float64{2, 3, 4}, sub.ToSlice())
	assert.Equal(t, 3, sub.Begin().Distance(sub.End()))
	assert.Panics(t, func() { Subview(v, 4, 7) })
	assert.Panics(t, func() { Subview(v, 3, 2) })
}

func TestStrided(t *testing.T) {
	data := []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8}

	v, err := Strided("every-third", data, 1, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 4, 7}, v.ToSlice())
	assert.Equal(t, LayoutStride, v.Layout())
	require.NoError(t, CheckAdmissible[uint8](v))

	_, err = Strided("too-long", data, 1, 4, 3)
	require.ErrorIs(t, err, ErrNotAdmissible)

	_, err = Strided("zero-stride", data, 0, 2, 0)
	require.ErrorIs(t, err, ErrNotAdmissible)
}

func TestMatrixRowsAndCols(t *testing.T) {
	for _, layout := range []Layout{LayoutRight, LayoutLeft} {
		t.Run(layout.String(), func(t *testing.T) {
			m, err := NewMatrix[int64]("m", 3, 4, layout)
			require.NoError(t, err)
			for i := 0; i < 3; i++ {
				for j := 0; j < 4; j++ {
					m.Set(i, j, int64(10*i+j))
				}
			}

			assert.Equal(t, []int64{10, 11, 12, 13}, m.Row(1).ToSlice())
			assert.Equal(t, []int64{2, 12, 22}, m.Col(2).ToSlice())
			require.NoError(t, CheckAdmissible[int64](m.Row(2)))
			require.NoError(t, CheckAdmissible[int64](m.Col(3)))

			if layout == LayoutRight {
				assert.Equal(t, LayoutRight, m.Row(0).Layout())
				assert.Equal(t, LayoutStride, m.Col(0).Layout())
			} else {
				assert.Equal(t, LayoutStride, m.Row(0).Layout())
				assert.Equal(t, LayoutLeft, m.Col(0).Layout())
			}
		})
	}

	_, err := NewMatrix[int64]("bad", 2, 2, LayoutStride)
	require.ErrorIs(t, err, ErrNotAdmissible)
}

func TestConstView(t *testing.T) {
	v := Wrap("v", []bool{true, false, true})
	c := v.Const()

	assert.Equal(t, 3, c.Extent())
	assert.Equal(t, false, c.At(1))
	assert.Equal(t, v.ToSlice(), c.ToSlice())
	assert.Equal(t, 3, Cbegin[bool](c).Distance(Cend[bool](c)))
}
