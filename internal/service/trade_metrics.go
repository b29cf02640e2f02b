package service

import (
	"math"

	"github.com/tradelog/trade-journal-backend/internal/model"
)

// RoundingPrecision is the factor used to round monetary values to two
// decimal places.
const RoundingPrecision = 100.0

// Weights of the three stop tiers in the blended open-risk estimate. The
// full stop dominates; the 33% tier counts more than the 66% tier because a
// partial exit there leaves more of the position at risk.
const (
	fullStopWeight = 0.50
	stop33Weight   = 0.33
	stop66Weight   = 0.17
	stop33Fraction = 0.33
	stop66Fraction = 0.66
)

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*RoundingPrecision) / RoundingPrecision
}

// weightedAverageCost returns the share-weighted mean cost after adding
// newShares at newPrice to an existing position.
func weightedAverageCost(oldAvgCost, oldShares, newPrice, newShares float64) float64 {
	totalShares := oldShares + newShares
	if totalShares == 0 {
		return 0
	}
	return (oldAvgCost*oldShares + newPrice*newShares) / totalShares
}

// stopLevels derives the two intermediate stop levels at 33% and 66% of the
// distance from entry to the full stop. Works for both directions because
// the distance is signed.
func stopLevels(entryPrice, stopLoss float64) (stop33, stop66 float64) {
	distance := stopLoss - entryPrice
	return entryPrice + stop33Fraction*distance, entryPrice + stop66Fraction*distance
}

// openRiskPct blends the risk percentages of the three stop tiers into a
// single position-sizing signal: 50% weight on the full stop, 33% on the
// 33% tier, 17% on the 66% tier. This is a heuristic, not a probability
// model.
func openRiskPct(entryPrice, stopLoss float64) float64 {
	if entryPrice == 0 {
		return 0
	}
	stop33, stop66 := stopLevels(entryPrice, stopLoss)

	riskPct := func(stop float64) float64 {
		return math.Abs(entryPrice-stop) / entryPrice * 100
	}

	return fullStopWeight*riskPct(stopLoss) +
		stop33Weight*riskPct(stop33) +
		stop66Weight*riskPct(stop66)
}

// unrealizedPnl computes the open P&L of a position at the given price,
// inverting the sign for shorts.
func unrealizedPnl(direction model.Direction, avgCost, currentPrice, shares float64) float64 {
	if direction == model.DirectionShort {
		return (avgCost - currentPrice) * shares
	}
	return (currentPrice - avgCost) * shares
}

// realizedLotPnl computes the P&L realized by selling shares at sellPrice
// against the position's average cost.
func realizedLotPnl(direction model.Direction, avgCost, sellPrice, shares float64) float64 {
	if direction == model.DirectionShort {
		return (avgCost - sellPrice) * shares
	}
	return (sellPrice - avgCost) * shares
}

// Excursions holds MAE/MFE in the three forms the journal reports.
type Excursions struct {
	MAEDollars float64
	MAEPercent float64
	MAER       float64
	MFEDollars float64
	MFEPercent float64
	MFER       float64
}

// computeExcursions derives MAE/MFE from the highest and lowest price seen
// over the trade's lifetime. For longs the low is adverse and the high
// favorable; shorts invert. R-multiples divide the per-share move by the
// initial stop distance and are zero when no stop was set.
func computeExcursions(direction model.Direction, entryPrice, stopLoss, high, low, shares float64) Excursions {
	var adverse, favorable float64
	if direction == model.DirectionShort {
		adverse = high - entryPrice
		favorable = entryPrice - low
	} else {
		adverse = entryPrice - low
		favorable = high - entryPrice
	}

	// A move that never went against (or for) the position counts as zero,
	// not negative.
	adverse = math.Max(0, adverse)
	favorable = math.Max(0, favorable)

	stopDistance := math.Abs(entryPrice - stopLoss)

	exc := Excursions{
		MAEDollars: round2(adverse * shares),
		MFEDollars: round2(favorable * shares),
	}
	if entryPrice != 0 {
		exc.MAEPercent = round2(adverse / entryPrice * 100)
		exc.MFEPercent = round2(favorable / entryPrice * 100)
	}
	if stopDistance != 0 {
		exc.MAER = round2(adverse / stopDistance)
		exc.MFER = round2(favorable / stopDistance)
	}

	return exc
}
