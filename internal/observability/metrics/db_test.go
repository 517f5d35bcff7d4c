package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestDBPoolConnections_TracksStates(t *testing.T) {
	DBPoolConnections.WithLabelValues(PoolStateAcquired).Set(3)
	DBPoolConnections.WithLabelValues(PoolStateIdle).Set(2)
	DBPoolConnections.WithLabelValues(PoolStateMax).Set(25)
	DBPoolConnections.WithLabelValues(PoolStateTotal).Set(5)

	cases := []struct {
		state string
		want  float64
	}{
		{PoolStateAcquired, 3},
		{PoolStateIdle, 2},
		{PoolStateMax, 25},
		{PoolStateTotal, 5},
	}

	for _, tc := range cases {
		if got := testutil.ToFloat64(DBPoolConnections.WithLabelValues(tc.state)); got != tc.want {
			t.Errorf("state %q = %v, want %v", tc.state, got, tc.want)
		}
	}
}

func TestDBQueryErrors_CountsByLabels(t *testing.T) {
	counter := DBQueryErrors.WithLabelValues("save user", "users", "23505")
	before := testutil.ToFloat64(counter)

	counter.Inc()

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("expected counter to advance by 1, got %v from %v", got, before)
	}
}
