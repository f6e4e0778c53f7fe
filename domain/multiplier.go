package domain

import "github.com/shopspring/decimal"

// =============================================================================
// MULTIPLIER TABLE - Tier level to point multiplier
// =============================================================================

// TierLevel bounds. Level 0 means no tier.
const (
	MinTierLevel = 0
	MaxTierLevel = 10
)

// MultiplierTable maps a tier level (0-10) to the factor applied to the base
// per-task point unit. The table is consulted with the worker's tier at the
// moment a transition is settled; editing the table never rescores past
// settlements.
type MultiplierTable map[int]decimal.Decimal

// DefaultMultipliers returns the stock table: levels 0-1 earn the base unit,
// level 10 earns ten times it.
func DefaultMultipliers() MultiplierTable {
	return MultiplierTable{
		0:  decimal.NewFromInt(1),
		1:  decimal.NewFromInt(1),
		2:  decimal.RequireFromString("1.2"),
		3:  decimal.RequireFromString("1.3"),
		4:  decimal.RequireFromString("1.5"),
		5:  decimal.NewFromInt(2),
		6:  decimal.RequireFromString("2.5"),
		7:  decimal.NewFromInt(3),
		8:  decimal.NewFromInt(4),
		9:  decimal.NewFromInt(5),
		10: decimal.NewFromInt(10),
	}
}

// Lookup returns the multiplier for a tier level, falling back to 1 when the
// level is absent from the table.
func (t MultiplierTable) Lookup(level int) decimal.Decimal {
	if m, ok := t[level]; ok && m.IsPositive() {
		return m
	}
	return decimal.NewFromInt(1)
}

// Validate rejects tables with out-of-range levels or non-positive factors.
func (t MultiplierTable) Validate() error {
	for level, m := range t {
		if level < MinTierLevel || level > MaxTierLevel {
			return ErrTierOutOfRange
		}
		if !m.IsPositive() {
			return ErrInvalidMultiplier
		}
	}
	return nil
}

// Clone returns an independent copy.
func (t MultiplierTable) Clone() MultiplierTable {
	out := make(MultiplierTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
