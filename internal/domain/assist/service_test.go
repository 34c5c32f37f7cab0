package assist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karobar/internal/core/types"
)

type fakeGenerator struct {
	instructions string
	input        string
	output       string
	err          error
	calls        int
}

func (g *fakeGenerator) Generate(_ context.Context, instructions, input string) (string, error) {
	g.calls++
	g.instructions = instructions
	g.input = input
	if g.err != nil {
		return "", g.err
	}
	return g.output, nil
}

func TestTaskDescription(t *testing.T) {
	gen := &fakeGenerator{output: "  Bilal, truck se saman utaro aur godam mein rakho.  "}
	svc := NewService(gen)

	out, err := svc.TaskDescription(context.Background(), "unload truck, stack godam", "male")
	require.NoError(t, err)

	assert.Equal(t, "Bilal, truck se saman utaro aur godam mein rakho.", out)
	assert.Contains(t, gen.input, "unload truck")
	assert.Contains(t, gen.input, "male")
	assert.Contains(t, gen.instructions, "Roman Urdu")
}

func TestTaskDescription_InvalidGender(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewService(gen)

	_, err := svc.TaskDescription(context.Background(), "unload truck", "other")
	require.Error(t, err)
	assert.Zero(t, gen.calls)
}

func TestTaskDescription_EmptyPrompt(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewService(gen)

	_, err := svc.TaskDescription(context.Background(), "   ", "female")
	require.Error(t, err)
	assert.Zero(t, gen.calls)
}

func TestPlanItems(t *testing.T) {
	gen := &fakeGenerator{output: "Aaj yeh items le kar jao: 10 carton soap, 5 carton powder."}
	svc := NewService(gen)

	out, err := svc.PlanItems(context.Background(), "soap 10, powder 5")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Aaj yeh items"))
	assert.Contains(t, gen.input, "soap 10")
}

func TestPlanItems_GeneratorFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream timeout")}
	svc := NewService(gen)

	_, err := svc.PlanItems(context.Background(), "soap 10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream timeout")
}

func TestFinancialSummary(t *testing.T) {
	gen := &fakeGenerator{output: "Is mahine business profit mein hai."}
	svc := NewService(gen)

	out, err := svc.FinancialSummary(context.Background(), FinancialInput{
		PeriodLabel:   "2026-08-01 to 2026-08-31",
		TotalRevenue:  types.MustMoney("50000"),
		TotalExpenses: types.MustMoney("30000"),
		NetResult:     types.MustMoney("20000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Is mahine business profit mein hai.", out)
	assert.Contains(t, gen.input, "50000")
	assert.Contains(t, gen.input, "2026-08-01 to 2026-08-31")
}

func TestDetectAnomaly_Flagged(t *testing.T) {
	gen := &fakeGenerator{output: "ANOMALY: Sale recorded 40km outside the assigned route at 02:30."}
	svc := NewService(gen)

	result, err := svc.DetectAnomaly(context.Background(), AnomalyInput{
		SalesmanName:    "Imran",
		SaleDate:        "2026-08-28",
		SaleTime:        "02:30",
		CustomerName:    "Khan Karyana",
		Location:        "31.5204,74.3587",
		ProductsSold:    "soap x20",
		TotalSaleAmount: types.MustMoney("4800"),
	})
	require.NoError(t, err)

	assert.True(t, result.AnomalyDetected)
	assert.Equal(t, "Sale recorded 40km outside the assigned route at 02:30.", result.Description)
	assert.Contains(t, gen.input, "Imran")
	assert.Contains(t, gen.input, "31.5204,74.3587")
	assert.Contains(t, gen.input, "4800")
}

func TestDetectAnomaly_Clean(t *testing.T) {
	gen := &fakeGenerator{output: "OK: No anomalies detected."}
	svc := NewService(gen)

	result, err := svc.DetectAnomaly(context.Background(), AnomalyInput{
		SalesmanName: "Imran",
		Location:     "city market route",
	})
	require.NoError(t, err)

	assert.False(t, result.AnomalyDetected)
	assert.Equal(t, "No anomalies detected.", result.Description)
}

func TestDetectAnomaly_UnexpectedVerdictFormat(t *testing.T) {
	gen := &fakeGenerator{output: "The data looks odd but I cannot say why."}
	svc := NewService(gen)

	result, err := svc.DetectAnomaly(context.Background(), AnomalyInput{
		SalesmanName: "Imran",
		Location:     "city market route",
	})
	require.NoError(t, err)

	assert.True(t, result.AnomalyDetected)
	assert.Equal(t, "The data looks odd but I cannot say why.", result.Description)
}

func TestDetectAnomaly_MissingLocation(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewService(gen)

	_, err := svc.DetectAnomaly(context.Background(), AnomalyInput{SalesmanName: "Imran"})
	require.Error(t, err)
	assert.Zero(t, gen.calls)
}
