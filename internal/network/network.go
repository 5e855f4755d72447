// Package network builds the buyer/seller transaction graph, its
// summary statistics and the Sankey flow aggregate. The graph is a
// per-request visualization artifact: it is rebuilt from a filtered,
// capped sample of the table on every call and never persisted.
package network

import (
	"log"
	"sort"
	"strings"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

// DefaultMinAmount is the transaction floor for network construction.
// Deliberately looser than the clean-stage valid-sale threshold; the
// discrepancy is observed behavior, kept configurable.
const DefaultMinAmount = 1000

// DefaultMaxNodes caps the rendered graph size.
const DefaultMaxNodes = 50

// Transaction is one seller-to-buyer transfer with normalized names.
type Transaction struct {
	Seller string
	Buyer  string
	Amount float64
}

// Node is one participant in the rendered graph.
type Node struct {
	Name           string  `json:"name"`
	Role           string  `json:"role"` // "seller", "buyer" or "both"
	TotalSales     float64 `json:"total_sales"`
	TotalPurchases float64 `json:"total_purchases"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
}

// Edge aggregates all sampled transactions for one ordered
// (seller, buyer) pair.
type Edge struct {
	Seller     string  `json:"seller"`
	Buyer      string  `json:"buyer"`
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
}

// Graph is the directed participant graph with layout positions.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// TransactionsFrom extracts network-eligible transactions: both party
// names non-blank and amount at or above minAmount. Names are
// uppercased and trimmed - exact string equality is the sole identity
// matching strategy, no fuzzy matching.
func TransactionsFrom(t *property.Table, minAmount float64) ([]Transaction, error) {
	if !t.Caps.HasParties || !t.Caps.HasSaleAmount {
		return nil, core.MissingColumns(property.ColSellerName, property.ColBuyerName, property.ColSaleAmount)
	}
	if minAmount <= 0 {
		minAmount = DefaultMinAmount
	}

	var txs []Transaction
	for _, r := range t.Records {
		if !r.HasParties() || property.IsMissing(r.SaleAmount) || r.SaleAmount < minAmount {
			continue
		}
		txs = append(txs, Transaction{
			Seller: strings.ToUpper(strings.TrimSpace(r.SellerName)),
			Buyer:  strings.ToUpper(strings.TrimSpace(r.BuyerName)),
			Amount: r.SaleAmount,
		})
	}
	if len(txs) == 0 {
		return nil, core.InsufficientData("network transactions", 0, 1)
	}
	log.Printf("[Network] Prepared %d records for network analysis", len(txs))
	return txs, nil
}

// Build constructs the directed graph from the transactions, sampling
// toward the highest-volume participants when the set exceeds
// maxNodes, then laying nodes out with a seeded force-directed layout.
func Build(txs []Transaction, maxNodes int) (*Graph, error) {
	if len(txs) == 0 {
		return nil, core.InsufficientData("network transactions", 0, 1)
	}
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}

	sample := txs
	if len(txs) > maxNodes {
		// Focus on major participants: union of top sellers and top
		// buyers by transaction count, then truncate.
		topSellers := topByCount(txs, func(t Transaction) string { return t.Seller }, maxNodes/2)
		topBuyers := topByCount(txs, func(t Transaction) string { return t.Buyer }, maxNodes/2)
		sample = sample[:0:0]
		for _, tx := range txs {
			if topSellers[tx.Seller] || topBuyers[tx.Buyer] {
				sample = append(sample, tx)
			}
			if len(sample) == maxNodes {
				break
			}
		}
	}
	if len(sample) == 0 {
		return nil, core.InsufficientData("sampled network transactions", 0, 1)
	}

	g := &Graph{}
	nodeIdx := make(map[string]int)
	edgeIdx := make(map[[2]string]int)
	sellers := make(map[string]bool)
	buyers := make(map[string]bool)

	addNode := func(name string) int {
		if i, ok := nodeIdx[name]; ok {
			return i
		}
		nodeIdx[name] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Node{Name: name})
		return nodeIdx[name]
	}

	for _, tx := range sample {
		si := addNode(tx.Seller)
		bi := addNode(tx.Buyer)
		sellers[tx.Seller] = true
		buyers[tx.Buyer] = true
		g.Nodes[si].TotalSales += tx.Amount
		g.Nodes[bi].TotalPurchases += tx.Amount

		key := [2]string{tx.Seller, tx.Buyer}
		if ei, ok := edgeIdx[key]; ok {
			g.Edges[ei].Count++
			g.Edges[ei].TotalValue += tx.Amount
		} else {
			edgeIdx[key] = len(g.Edges)
			g.Edges = append(g.Edges, Edge{Seller: tx.Seller, Buyer: tx.Buyer, Count: 1, TotalValue: tx.Amount})
		}
	}

	// Role classification over the sampled set only.
	for i := range g.Nodes {
		name := g.Nodes[i].Name
		switch {
		case sellers[name] && buyers[name]:
			g.Nodes[i].Role = "both"
		case sellers[name]:
			g.Nodes[i].Role = "seller"
		default:
			g.Nodes[i].Role = "buyer"
		}
	}

	assignPositions(g, layoutSeed)
	return g, nil
}

// topByCount returns the n most frequent keys as a membership set.
// Ties break lexicographically so sampling is deterministic.
func topByCount(txs []Transaction, key func(Transaction) string, n int) map[string]bool {
	counts := make(map[string]int)
	for _, tx := range txs {
		counts[key(tx)]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if n > len(names) {
		n = len(names)
	}
	top := make(map[string]bool, n)
	for _, name := range names[:n] {
		top[name] = true
	}
	return top
}
