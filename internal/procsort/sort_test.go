package procsort

import (
	"testing"

	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/proctree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pidsOf(samples []metrics.ProcessSample) []int32 {
	out := make([]int32, len(samples))
	for i, s := range samples {
		out[i] = s.PID
	}
	return out
}

func TestSort_CPUAscendingKeepsTieOrder(t *testing.T) {
	in := []metrics.ProcessSample{
		{PID: 3, CPUPercent: 5.0},
		{PID: 4, CPUPercent: 1.0},
		{PID: 5, CPUPercent: 1.0},
	}

	out := Sort(in, Spec{Column: ByCPU, Direction: Ascending})

	assert.Equal(t, []int32{4, 5, 3}, pidsOf(out))
	// Input untouched
	assert.Equal(t, []int32{3, 4, 5}, pidsOf(in))
}

func TestSort_Columns(t *testing.T) {
	in := []metrics.ProcessSample{
		{PID: 30, Name: "zsh", MemoryPercent: 2.0, CPUPercent: 0.5},
		{PID: 2, Name: "Xorg", MemoryPercent: 9.5, CPUPercent: 3.0},
		{PID: 100, Name: "bash", MemoryPercent: 0.1, CPUPercent: 12.0},
	}

	tests := []struct {
		name string
		spec Spec
		want []int32
	}{
		{"pid asc numeric", Spec{ByPID, Ascending}, []int32{2, 30, 100}},
		{"pid desc numeric", Spec{ByPID, Descending}, []int32{100, 30, 2}},
		{"name case-sensitive", Spec{ByName, Ascending}, []int32{2, 100, 30}},
		{"memory desc", Spec{ByMemory, Descending}, []int32{2, 30, 100}},
		{"cpu asc", Spec{ByCPU, Ascending}, []int32{30, 2, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pidsOf(Sort(in, tt.spec)))
		})
	}
}

func TestSort_StableBothDirections(t *testing.T) {
	in := []metrics.ProcessSample{
		{PID: 7, Name: "a", MemoryPercent: 1},
		{PID: 3, Name: "b", MemoryPercent: 2},
		{PID: 9, Name: "c", MemoryPercent: 1},
		{PID: 1, Name: "d", MemoryPercent: 2},
		{PID: 5, Name: "e", MemoryPercent: 1},
	}

	asc := Sort(in, Spec{ByMemory, Ascending})
	assert.Equal(t, []int32{7, 9, 5, 3, 1}, pidsOf(asc))

	desc := Sort(in, Spec{ByMemory, Descending})
	assert.Equal(t, []int32{3, 1, 7, 9, 5}, pidsOf(desc))
}

func TestSort_Empty(t *testing.T) {
	assert.Empty(t, Sort(nil, DefaultSpec()))
}

func TestSpec_Toggle(t *testing.T) {
	s := DefaultSpec()
	assert.Equal(t, Spec{ByPID, Ascending}, s)

	s = s.Toggle(ByPID)
	assert.Equal(t, Spec{ByPID, Descending}, s)

	s = s.Toggle(ByCPU)
	assert.Equal(t, Spec{ByCPU, Ascending}, s, "new column starts ascending")

	s = s.Toggle(ByCPU)
	s = s.Toggle(ByCPU)
	assert.Equal(t, Spec{ByCPU, Ascending}, s, "double toggle round-trips")
}

func TestSpec_ToggleRoundTripOrdering(t *testing.T) {
	in := []metrics.ProcessSample{
		{PID: 1, CPUPercent: 3},
		{PID: 2, CPUPercent: 1},
		{PID: 3, CPUPercent: 2},
	}
	s := Spec{ByCPU, Ascending}
	first := Sort(in, s)
	s = s.Toggle(ByCPU).Toggle(ByCPU)
	assert.Equal(t, pidsOf(first), pidsOf(Sort(in, s)))
}

func TestSpec_Indicator(t *testing.T) {
	assert.Equal(t, "▲", Spec{ByName, Ascending}.Indicator())
	assert.Equal(t, "▼", Spec{ByName, Descending}.Indicator())
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		in      string
		want    Column
		wantErr bool
	}{
		{"pid", ByPID, false},
		{"Name", ByName, false},
		{"memory", ByMemory, false},
		{"mem", ByMemory, false},
		{" CPU ", ByCPU, false},
		{"user", ByPID, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColumn(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Column {
	t.Helper()
	c, err := ParseColumn(s)
	require.NoError(t, err)
	return c
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, Descending, d)

	d, err = ParseDirection("Ascending")
	require.NoError(t, err)
	assert.Equal(t, Ascending, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestSortTree_ChildrenStayWithParent(t *testing.T) {
	samples := []metrics.ProcessSample{
		{PID: 1, PPID: 0, CPUPercent: 1},
		{PID: 2, PPID: 0, CPUPercent: 9},
		{PID: 10, PPID: 1, CPUPercent: 50},
		{PID: 11, PPID: 1, CPUPercent: 5},
		{PID: 20, PPID: 2, CPUPercent: 0},
	}
	tree := proctree.Build(samples, true)

	sorted := SortTree(tree, Spec{ByCPU, Descending})

	assert.Equal(t, []int32{2, 1}, pidsOf(sorted.Roots))
	assert.Equal(t, []int32{10, 11}, pidsOf(sorted.ChildrenOf(1)))
	assert.Equal(t, []int32{20}, pidsOf(sorted.ChildrenOf(2)))
	assert.Equal(t, tree.Len(), sorted.Len())

	// Original tree untouched
	assert.Equal(t, []int32{1, 2}, pidsOf(tree.Roots))
}
