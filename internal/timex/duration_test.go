package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", in: `"300ms"`, want: 300 * time.Millisecond},
		{name: "hours", in: `"720h"`, want: 720 * time.Hour},
		{name: "nanoseconds", in: `2000000000`, want: 2 * time.Second},
		{name: "bad string", in: `"soon"`, wantErr: true},
		{name: "bool", in: `true`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration)
		})
	}
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 2 * time.Second})
	require.NoError(t, err)
	assert.JSONEq(t, `"2s"`, string(b))
}
