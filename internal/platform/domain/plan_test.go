package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultPlans(t *testing.T) {
	t.Parallel()

	plans := DefaultPlans("", "")
	require.Len(t, plans, 2)

	pro := plans[PlanKeyPro]
	require.Equal(t, 29, pro.MonthlyPrice)
	require.True(t, pro.NotConfigured())

	ent := plans[PlanKeyEnterprise]
	require.Equal(t, 99, ent.MonthlyPrice)
	require.True(t, ent.NotConfigured())
}

func TestPlanNotConfigured(t *testing.T) {
	t.Parallel()

	require.True(t, Plan{PriceID: ""}.NotConfigured())
	require.True(t, Plan{PriceID: "price_mock_pro"}.NotConfigured())
	require.False(t, Plan{PriceID: "price_1QxYzAbCdEf"}.NotConfigured())

	plans := DefaultPlans("price_1Pro", "price_1Ent")
	require.False(t, plans[PlanKeyPro].NotConfigured())
	require.False(t, plans[PlanKeyEnterprise].NotConfigured())
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	require.Equal(t, ThemeDark, ParseTheme("dark"))
	require.Equal(t, ThemeLight, ParseTheme("light"))
	require.Equal(t, ThemeLight, ParseTheme("solarized"))
	require.Equal(t, ThemeLight, ThemeDark.Toggle())
	require.Equal(t, ThemeDark, ThemeLight.Toggle())
}
