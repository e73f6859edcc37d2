package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(_ context.Context, n int) (int, error) {
	return n * n, nil
}

func makeInputs(n int) []int {
	in := make([]int, n)
	for i := 0; i < n; i++ {
		in[i] = i
	}
	return in
}

func TestParallel_OrderPreservation(t *testing.T) {
	results := Parallel(context.Background(), Items(makeInputs(200)), 8, square)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult[int, int]) error {
		require.NoError(t, r.Err)
		assert.Equal(t, r.Input*r.Input, r.Output)
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 200)
	for i, seq := range collected {
		assert.Equal(t, i, seq, "result %d out of order", i)
	}
}

func TestParallel_SingleWorker(t *testing.T) {
	results := Parallel(context.Background(), Items(makeInputs(50)), 1, square)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult[int, int]) error {
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 50)
	for i, seq := range collected {
		assert.Equal(t, i, seq)
	}
}

func TestParallel_DefaultWorkers(t *testing.T) {
	results := Parallel(context.Background(), Items(makeInputs(10)), 0, square)

	count := 0
	require.NoError(t, OrderedCollect(results, func(r WorkResult[int, int]) error {
		count++
		return nil
	}))
	assert.Equal(t, 10, count)
}

func TestParallel_EmptyInput(t *testing.T) {
	results := Parallel(context.Background(), Items[int](nil), 4, square)

	count := 0
	err := OrderedCollect(results, func(r WorkResult[int, int]) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestParallel_JobErrorsAreReported(t *testing.T) {
	fail := func(_ context.Context, n int) (int, error) {
		if n%2 == 1 {
			return 0, fmt.Errorf("odd %d", n)
		}
		return n, nil
	}

	results := Parallel(context.Background(), Items(makeInputs(6)), 3, fail)

	var errs int
	require.NoError(t, OrderedCollect(results, func(r WorkResult[int, int]) error {
		if r.Err != nil {
			errs++
		}
		return nil
	}))
	assert.Equal(t, 3, errs)
}

func TestParallel_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	fn := func(_ context.Context, n int) (int, error) {
		called = true
		return n, nil
	}

	results := Parallel(ctx, Items(makeInputs(5)), 2, fn)
	require.NoError(t, OrderedCollect(results, func(r WorkResult[int, int]) error {
		assert.True(t, errors.Is(r.Err, context.Canceled))
		return nil
	}))
	assert.False(t, called)
}

func TestOrderedCollect_EarlyError(t *testing.T) {
	results := Parallel(context.Background(), Items(makeInputs(100)), 4, square)

	count := 0
	err := OrderedCollect(results, func(r WorkResult[int, int]) error {
		count++
		if count == 5 {
			return fmt.Errorf("stop at 5")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 5, count)
}
