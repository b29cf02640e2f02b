package service

import (
	"github.com/tradelog/trade-journal-backend/internal/model"
)

// CalculateDrawdownMetrics scans the user's snapshot sequence once with a
// running high-watermark. Capital above the watermark advances it and closes
// any open drawdown period as recovered; capital below it opens a period or
// deepens the current one. A period still open at the end of the scan is
// reported unrecovered.
func (s *CapitalService) CalculateDrawdownMetrics(userID string) (model.DrawdownMetrics, error) {
	changes, err := s.capitalRepo.ListByUser(userID)
	if err != nil {
		return model.DrawdownMetrics{}, err
	}
	if len(changes) == 0 {
		return model.DrawdownMetrics{Periods: []model.DrawdownPeriod{}}, nil
	}

	watermark := changes[0].Amount
	metrics := model.DrawdownMetrics{Periods: []model.DrawdownPeriod{}}

	var open *model.DrawdownPeriod
	for _, change := range changes[1:] {
		capital := change.Amount

		if capital > watermark {
			if open != nil {
				open.Recovered = true
				open.RecoveryDate = change.Date
				open.RecoveryCapital = capital
				metrics.Periods = append(metrics.Periods, *open)
				open = nil
			}
			watermark = capital
			metrics.CurrentDrawdown = 0
			continue
		}

		if capital < watermark {
			if open == nil {
				open = &model.DrawdownPeriod{
					StartDate:     change.Date,
					StartCapital:  watermark,
					LowestCapital: capital,
					LowestDate:    change.Date,
				}
			} else if capital < open.LowestCapital {
				open.LowestCapital = capital
				open.LowestDate = change.Date
			}
			open.DrawdownPct = round2(drawdownPct(watermark, open.LowestCapital))
			metrics.CurrentDrawdown = round2(drawdownPct(watermark, capital))
			if open.DrawdownPct > metrics.MaxDrawdown {
				metrics.MaxDrawdown = open.DrawdownPct
			}
			continue
		}

		// Back at the watermark exactly: the gap is gone but the period
		// only closes as recovered once capital exceeds the watermark.
		metrics.CurrentDrawdown = 0
	}

	if open != nil {
		metrics.Periods = append(metrics.Periods, *open)
	}

	return metrics, nil
}

// drawdownPct is the percentage gap of capital below the watermark. A
// non-positive watermark gives the gap no meaningful base, so it reads as
// zero.
func drawdownPct(watermark, capital float64) float64 {
	if watermark <= 0 {
		return 0
	}
	return (watermark - capital) / watermark * 100
}
