package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{
		CategoryPowerTools, CategoryHandTools, CategoryGardenTools,
		CategoryCleaning, CategoryAutomotive, CategoryMeasuring, CategoryOther,
	} {
		require.True(t, c.Valid(), "category %q", c)
	}
	require.False(t, Category("").Valid())
	require.False(t, Category("power tools").Valid()) // case sensitive
	require.False(t, Category("Electronics").Valid())
}

func TestConditionValid(t *testing.T) {
	for _, c := range []Condition{
		ConditionExcellent, ConditionVeryGood, ConditionGood, ConditionFair,
	} {
		require.True(t, c.Valid(), "condition %q", c)
	}
	require.False(t, Condition("").Valid())
	require.False(t, Condition("Broken").Valid())
}
