package network

import (
	"github.com/jibarix/map-viz/domain/core"
)

// DefaultFlowTopN is how many top sellers and buyers keep their own
// identity in the flow diagram.
const DefaultFlowTopN = 5

// Labels for the aggregate buckets participants fall into when they
// are outside the top sets.
const (
	OtherSellers = "Other Sellers"
	OtherBuyers  = "Other Buyers"
)

// FlowLink is one weighted seller-to-buyer flow, referencing Flow.Nodes
// by index.
type FlowLink struct {
	Source int     `json:"source"`
	Target int     `json:"target"`
	Value  float64 `json:"value"`
}

// Flow is the Sankey-style aggregate: a deduplicated node list and
// weighted links between node indexes.
type Flow struct {
	Nodes []string   `json:"nodes"`
	Links []FlowLink `json:"links"`
}

// FlowAggregate independently selects the top-N sellers and buyers by
// transaction count, relabels everyone else as the "Other" bucket for
// their role, and aggregates total sale amount per (seller, buyer)
// pair. Only transactions touching a top participant contribute.
func FlowAggregate(txs []Transaction, topN int) (*Flow, error) {
	if len(txs) == 0 {
		return nil, core.InsufficientData("flow transactions", 0, 1)
	}
	if topN <= 0 {
		topN = DefaultFlowTopN
	}

	topSellers := topByCount(txs, func(t Transaction) string { return t.Seller }, topN)
	topBuyers := topByCount(txs, func(t Transaction) string { return t.Buyer }, topN)

	type pair struct{ seller, buyer string }
	totals := make(map[pair]float64)
	var order []pair
	for _, tx := range txs {
		if !topSellers[tx.Seller] && !topBuyers[tx.Buyer] {
			continue
		}
		p := pair{tx.Seller, tx.Buyer}
		if !topSellers[tx.Seller] {
			p.seller = OtherSellers
		}
		if !topBuyers[tx.Buyer] {
			p.buyer = OtherBuyers
		}
		if _, seen := totals[p]; !seen {
			order = append(order, p)
		}
		totals[p] += tx.Amount
	}
	if len(order) == 0 {
		return nil, core.InsufficientData("flow pairs", 0, 1)
	}

	flow := &Flow{}
	nodeIdx := make(map[string]int)
	addNode := func(name string) int {
		if i, ok := nodeIdx[name]; ok {
			return i
		}
		nodeIdx[name] = len(flow.Nodes)
		flow.Nodes = append(flow.Nodes, name)
		return nodeIdx[name]
	}

	for _, p := range order {
		flow.Links = append(flow.Links, FlowLink{
			Source: addNode(p.seller),
			Target: addNode(p.buyer),
			Value:  totals[p],
		})
	}
	return flow, nil
}
