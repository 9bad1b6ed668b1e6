package instance_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/knapsack/instance"
)

func TestParse_BudgetFirst(t *testing.T) {
	src := "50\n# cost value\n10 60\n20 100\n\n30 120\n"
	p, err := instance.Parse(strings.NewReader(src), instance.FormatBudgetFirst)
	require.NoError(t, err)
	require.False(t, p.HasOptimum)
	require.Equal(t, int64(50), p.Instance.Budget())
	require.Equal(t, []instance.Item{
		{Value: 60, Cost: 10},
		{Value: 100, Cost: 20},
		{Value: 120, Cost: 30},
	}, p.Instance.Items())
}

func TestParse_BudgetFirst_DanglingCost(t *testing.T) {
	_, err := instance.Parse(strings.NewReader("50\n10 60\n20\n"), instance.FormatBudgetFirst)
	require.ErrorIs(t, err, instance.ErrMalformed)
}

func TestParse_Counted_WithSolutionVector(t *testing.T) {
	// value cost pairs, then the taken flags of an optimal selection.
	src := "3 50\n60 10\n100 20\n120 30\n0 1 1\n"
	p, err := instance.Parse(strings.NewReader(src), instance.FormatCounted)
	require.NoError(t, err)
	require.True(t, p.HasOptimum)
	require.Equal(t, int64(220), p.Optimum)
	require.Equal(t, instance.Item{Value: 100, Cost: 20}, p.Instance.At(1))
}

func TestParse_Counted_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"missing items", "3 50\n60 10\n", instance.ErrCountMismatch},
		{"short solution vector", "2 5\n1 1\n2 2\n1\n", instance.ErrCountMismatch},
		{"bad flag", "1 5\n1 1\n2\n", instance.ErrMalformed},
		{"garbage", "2 x\n", instance.ErrMalformed},
		{"negative count", "-1 5\n", instance.ErrMalformed},
		{"huge count", "9000000000000000000 10\n1 1\n", instance.ErrCountMismatch},
		{"negative budget", "0 -5\n", instance.ErrNegativeBudget},
		{"empty", "", instance.ErrMalformed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := instance.Parse(strings.NewReader(tc.src), instance.FormatCounted)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse_Unbounded(t *testing.T) {
	// cost value pairs, then the known optimum.
	src := "2 17\n5 10\n7 13\n30\n"
	p, err := instance.Parse(strings.NewReader(src), instance.FormatUnbounded)
	require.NoError(t, err)
	require.True(t, p.HasOptimum)
	require.Equal(t, int64(30), p.Optimum)
	require.Equal(t, instance.Item{Value: 10, Cost: 5}, p.Instance.At(0))
	require.Equal(t, instance.Item{Value: 13, Cost: 7}, p.Instance.At(1))
}

func TestParse_Unbounded_HugeCount(t *testing.T) {
	_, err := instance.Parse(strings.NewReader("9000000000000000000 17\n5 10\n"), instance.FormatUnbounded)
	require.ErrorIs(t, err, instance.ErrCountMismatch)
}

func TestParse_YAML(t *testing.T) {
	src := "budget: 17\nitems:\n  - {value: 10, cost: 5}\noptimum: 30\n"
	p, err := instance.Parse(strings.NewReader(src), instance.FormatYAML)
	require.NoError(t, err)
	require.Equal(t, int64(17), p.Instance.Budget())
	require.Equal(t, int64(30), p.Optimum)

	_, err = instance.Parse(strings.NewReader("budget: 1\nweight: 3\n"), instance.FormatYAML)
	require.ErrorIs(t, err, instance.ErrMalformed)
}

func TestWrite_RoundTrip(t *testing.T) {
	inst := instance.MustNew(17, instance.Item{Value: 10, Cost: 5}, instance.Item{Value: 3, Cost: 2})
	for _, f := range []instance.Format{
		instance.FormatBudgetFirst,
		instance.FormatCounted,
		instance.FormatUnbounded,
		instance.FormatYAML,
	} {
		t.Run(f.String(), func(t *testing.T) {
			in := &instance.Parsed{Instance: inst, Optimum: 34, HasOptimum: true}
			var buf bytes.Buffer
			require.NoError(t, instance.Write(&buf, in, f))

			out, err := instance.Parse(&buf, f)
			require.NoError(t, err)
			require.Equal(t, inst.Budget(), out.Instance.Budget())
			require.Equal(t, inst.Items(), out.Instance.Items())
			if f == instance.FormatUnbounded || f == instance.FormatYAML {
				require.Equal(t, int64(34), out.Optimum)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]instance.Format{
		"tp":        instance.FormatBudgetFirst,
		"classic":   instance.FormatCounted,
		"UNBOUNDED": instance.FormatUnbounded,
		"yml":       instance.FormatYAML,
	} {
		got, err := instance.ParseFormat(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := instance.ParseFormat("csv")
	require.ErrorIs(t, err, instance.ErrUnknownFormat)
}

func TestDetectFormat(t *testing.T) {
	require.Equal(t, instance.FormatYAML, instance.DetectFormat("a/b.yaml"))
	require.Equal(t, instance.FormatUnbounded, instance.DetectFormat("x.ukp"))
	require.Equal(t, instance.FormatCounted, instance.DetectFormat("x.KP"))
	require.Equal(t, instance.FormatBudgetFirst, instance.DetectFormat("sac0"))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sac")
	require.NoError(t, os.WriteFile(path, []byte("10\n5 6\n"), 0o600))

	p, err := instance.ParseFile(path, instance.FormatBudgetFirst)
	require.NoError(t, err)
	require.Equal(t, 1, p.Instance.Len())

	_, err = instance.ParseFile(filepath.Join(dir, "missing"), instance.FormatBudgetFirst)
	require.ErrorIs(t, err, os.ErrNotExist)
}
