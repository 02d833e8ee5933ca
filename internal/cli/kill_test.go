package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	ptesting "github.com/rileyhilliard/sysmon/internal/procctl/testing"
)

func TestParsePID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int32
		wantErr bool
	}{
		{arg: "4242", want: 4242},
		{arg: "1", want: 1},
		{arg: "0", wantErr: true},
		{arg: "-5", wantErr: true},
		{arg: "abc", wantErr: true},
		{arg: "99999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parsePID(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunKill(t *testing.T) {
	term := ptesting.NewFakeTerminator()
	term.AddChild(10, 11)
	term.AddChild(11, 12)

	var out bytes.Buffer
	report := runKill(context.Background(), &out, term, logger.NewBufferLogger(), 10)

	assert.Equal(t, []int32{12, 11, 10}, term.Calls)
	assert.Empty(t, report.Warnings)
	assert.Contains(t, out.String(), "terminated pid 10 (3 processes)")
	assert.NotContains(t, out.String(), "Warning")
}

func TestRunKill_PartialFailure(t *testing.T) {
	term := ptesting.NewFakeTerminator()
	term.AddChild(10, 11)
	term.AddChild(10, 12)
	term.FailPIDs[11] = assert.AnError
	log := logger.NewBufferLogger()

	var out bytes.Buffer
	report := runKill(context.Background(), &out, term, log, 10)

	assert.Equal(t, []int32{11, 12, 10}, term.Calls)
	assert.False(t, term.Alive(10))
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, int32(11), report.Warnings[0].PID)
	assert.Contains(t, out.String(), "terminated 2 of 3 processes for pid 10, 1 warning")
	assert.Contains(t, out.String(), "Warning")
	assert.True(t, log.HasLevel("warn"))
}
