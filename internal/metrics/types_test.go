package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	gone := errors.New("process not found")

	tests := []struct {
		name        string
		reads       []ProcessRead
		wantPIDs    []int32
		wantDropped int
	}{
		{
			name:        "empty input",
			reads:       nil,
			wantPIDs:    []int32{},
			wantDropped: 0,
		},
		{
			name: "all readable keeps enumeration order",
			reads: []ProcessRead{
				{Sample: ProcessSample{PID: 9}},
				{Sample: ProcessSample{PID: 3}},
				{Sample: ProcessSample{PID: 5}},
			},
			wantPIDs:    []int32{9, 3, 5},
			wantDropped: 0,
		},
		{
			name: "failed reads are dropped",
			reads: []ProcessRead{
				{Sample: ProcessSample{PID: 1}},
				{Err: gone},
				{Sample: ProcessSample{PID: 7}},
				{Err: gone},
			},
			wantPIDs:    []int32{1, 7},
			wantDropped: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, dropped := Filter(tt.reads)

			pids := make([]int32, 0, len(samples))
			for _, s := range samples {
				pids = append(pids, s.PID)
			}
			assert.Equal(t, tt.wantPIDs, pids)
			assert.Equal(t, tt.wantDropped, dropped)
		})
	}
}

func TestSystemSnapshot_NetMB(t *testing.T) {
	s := SystemSnapshot{
		NetBytesSent: 3 * 1024 * 1024,
		NetBytesRecv: 512 * 1024,
	}
	assert.InDelta(t, 3.0, s.NetSentMB(), 1e-9)
	assert.InDelta(t, 0.5, s.NetRecvMB(), 1e-9)
}

func TestNewGopsutilProvider_Defaults(t *testing.T) {
	p := NewGopsutilProvider("", nil)
	assert.Equal(t, "/", p.diskPath)
	assert.Equal(t, DefaultCPUWindow, p.cpuWindow)
	assert.NotNil(t, p.log)
	assert.NotNil(t, p.tracked)
}
