package network

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/jibarix/map-viz/domain/core"
)

// Stats summarizes the filtered transaction set for the network tab's
// statistics cards.
type Stats struct {
	Transactions   int     `json:"transactions"`
	TotalValue     float64 `json:"total_value"`
	AvgTransaction float64 `json:"avg_transaction"`

	UniqueSellers     int `json:"unique_sellers"`
	UniqueBuyers      int `json:"unique_buyers"`
	TotalParticipants int `json:"total_participants"`
	DualRole          int `json:"dual_role"`      // appear as both seller and buyer
	RepeatSellers     int `json:"repeat_sellers"` // sold more than once
	RepeatBuyers      int `json:"repeat_buyers"`
}

// Summarize computes participant and value statistics over the full
// filtered transaction set (pre-sampling).
func Summarize(txs []Transaction) (*Stats, error) {
	if len(txs) == 0 {
		return nil, core.InsufficientData("network transactions", 0, 1)
	}

	sellerCounts := make(map[string]int)
	buyerCounts := make(map[string]int)
	amounts := make([]float64, len(txs))
	for i, tx := range txs {
		sellerCounts[tx.Seller]++
		buyerCounts[tx.Buyer]++
		amounts[i] = tx.Amount
	}

	s := &Stats{Transactions: len(txs), UniqueSellers: len(sellerCounts), UniqueBuyers: len(buyerCounts)}
	s.TotalValue, _ = stats.Sum(amounts)
	s.AvgTransaction, _ = stats.Mean(amounts)

	participants := make(map[string]bool)
	for name, n := range sellerCounts {
		participants[name] = true
		if n > 1 {
			s.RepeatSellers++
		}
	}
	for name, n := range buyerCounts {
		participants[name] = true
		if n > 1 {
			s.RepeatBuyers++
		}
		if sellerCounts[name] > 0 {
			s.DualRole++
		}
	}
	s.TotalParticipants = len(participants)
	return s, nil
}

// Participant is one row of a top-buyers or top-sellers table.
type Participant struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
}

// Participants holds the four top-participant tables.
type Participants struct {
	SellersByCount []Participant `json:"sellers_by_count"`
	SellersByValue []Participant `json:"sellers_by_value"`
	BuyersByCount  []Participant `json:"buyers_by_count"`
	BuyersByValue  []Participant `json:"buyers_by_value"`
}

// TopParticipants derives the top-N participant tables by transaction
// count and by total value, for each role.
func TopParticipants(txs []Transaction, n int) (*Participants, error) {
	if len(txs) == 0 {
		return nil, core.InsufficientData("network transactions", 0, 1)
	}
	if n <= 0 {
		n = 10
	}

	sellers := accumulate(txs, func(t Transaction) string { return t.Seller })
	buyers := accumulate(txs, func(t Transaction) string { return t.Buyer })

	return &Participants{
		SellersByCount: topN(sellers, n, byCount),
		SellersByValue: topN(sellers, n, byValue),
		BuyersByCount:  topN(buyers, n, byCount),
		BuyersByValue:  topN(buyers, n, byValue),
	}, nil
}

func accumulate(txs []Transaction, key func(Transaction) string) map[string]*Participant {
	acc := make(map[string]*Participant)
	for _, tx := range txs {
		name := key(tx)
		p := acc[name]
		if p == nil {
			p = &Participant{Name: name}
			acc[name] = p
		}
		p.Count++
		p.TotalValue += tx.Amount
	}
	return acc
}

type rankBy int

const (
	byCount rankBy = iota
	byValue
)

func topN(acc map[string]*Participant, n int, rank rankBy) []Participant {
	all := make([]Participant, 0, len(acc))
	for _, p := range acc {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool {
		switch rank {
		case byValue:
			if all[i].TotalValue != all[j].TotalValue {
				return all[i].TotalValue > all[j].TotalValue
			}
		default:
			if all[i].Count != all[j].Count {
				return all[i].Count > all[j].Count
			}
		}
		return all[i].Name < all[j].Name
	})
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}
