package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

func txTable(recs ...property.Record) *property.Table {
	return &property.Table{
		Records: recs,
		Caps:    property.Capabilities{HasParties: true, HasSaleAmount: true},
	}
}

func TestTransactionsFromNormalizesNames(t *testing.T) {
	table := txTable(
		property.Record{SellerName: "  alice llc ", BuyerName: "Bob Inc", SaleAmount: 5000},
		property.Record{SellerName: "ALICE LLC", BuyerName: "bob inc", SaleAmount: 7000},
	)

	txs, err := TransactionsFrom(table, 1000)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "ALICE LLC", txs[0].Seller)
	assert.Equal(t, "BOB INC", txs[0].Buyer)
	assert.Equal(t, txs[0].Seller, txs[1].Seller, "case and whitespace variants collapse")
}

func TestTransactionsFromFilters(t *testing.T) {
	table := txTable(
		property.Record{SellerName: "A", BuyerName: "B", SaleAmount: 500},
		property.Record{SellerName: "A", BuyerName: "", SaleAmount: 5000},
		property.Record{SellerName: "A", BuyerName: "B", SaleAmount: property.Missing()},
		property.Record{SellerName: "A", BuyerName: "B", SaleAmount: 1000},
	)

	txs, err := TransactionsFrom(table, 1000)
	require.NoError(t, err)

	// Below-floor, one-sided and missing-amount rows drop; the floor
	// itself is inclusive.
	require.Len(t, txs, 1)
	assert.Equal(t, 1000.0, txs[0].Amount)
}

func TestTransactionsFromMissingColumns(t *testing.T) {
	table := &property.Table{Caps: property.Capabilities{HasSaleAmount: true}}
	_, err := TransactionsFrom(table, 1000)
	require.Error(t, err)
	assert.True(t, core.IsNoData(err))
}

func TestBuildAggregatesEdges(t *testing.T) {
	txs := []Transaction{
		{Seller: "A", Buyer: "B", Amount: 10000},
		{Seller: "A", Buyer: "B", Amount: 20000},
		{Seller: "B", Buyer: "A", Amount: 5000},
	}

	g, err := Build(txs, 50)
	require.NoError(t, err)

	require.Len(t, g.Nodes, 2)
	for _, n := range g.Nodes {
		assert.Equal(t, "both", n.Role)
	}

	require.Len(t, g.Edges, 2)
	ab := g.Edges[0]
	assert.Equal(t, "A", ab.Seller)
	assert.Equal(t, "B", ab.Buyer)
	assert.Equal(t, 2, ab.Count)
	assert.InDelta(t, 30000, ab.TotalValue, 1e-9)

	ba := g.Edges[1]
	assert.Equal(t, 1, ba.Count)
	assert.InDelta(t, 5000, ba.TotalValue, 1e-9)
}

func TestBuildNodeTotals(t *testing.T) {
	txs := []Transaction{
		{Seller: "A", Buyer: "B", Amount: 10000},
		{Seller: "A", Buyer: "C", Amount: 20000},
	}

	g, err := Build(txs, 50)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 3)

	a := g.Nodes[0]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, "seller", a.Role)
	assert.InDelta(t, 30000, a.TotalSales, 1e-9)
	assert.InDelta(t, 0, a.TotalPurchases, 1e-9)
}

func TestBuildLayoutIsDeterministic(t *testing.T) {
	txs := []Transaction{
		{Seller: "A", Buyer: "B", Amount: 10000},
		{Seller: "B", Buyer: "C", Amount: 20000},
		{Seller: "C", Buyer: "A", Amount: 30000},
	}

	g1, err := Build(txs, 50)
	require.NoError(t, err)
	g2, err := Build(txs, 50)
	require.NoError(t, err)

	for i := range g1.Nodes {
		assert.Equal(t, g1.Nodes[i].X, g2.Nodes[i].X)
		assert.Equal(t, g1.Nodes[i].Y, g2.Nodes[i].Y)
	}
}

func TestBuildSamplesLargeSets(t *testing.T) {
	// 60 one-off transactions between unique parties exceed the node
	// cap; the sample keeps at most maxNodes transactions.
	var txs []Transaction
	for i := 0; i < 60; i++ {
		txs = append(txs, Transaction{
			Seller: "S" + string(rune('A'+i%26)) + string(rune('A'+i/26)),
			Buyer:  "B" + string(rune('A'+i%26)) + string(rune('A'+i/26)),
			Amount: 10000,
		})
	}

	g, err := Build(txs, 10)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(g.Nodes), 2*10)
	assert.NotEmpty(t, g.Nodes)
}

func TestFlowAggregate(t *testing.T) {
	txs := []Transaction{
		{Seller: "A", Buyer: "X", Amount: 10000},
		{Seller: "A", Buyer: "X", Amount: 5000},
		{Seller: "B", Buyer: "Y", Amount: 7000},
	}

	flow, err := FlowAggregate(txs, 5)
	require.NoError(t, err)

	// Everyone is inside the top sets; no "Other" buckets appear.
	assert.ElementsMatch(t, []string{"A", "B", "X", "Y"}, flow.Nodes)
	require.Len(t, flow.Links, 2)
	assert.InDelta(t, 15000, flow.Links[0].Value, 1e-9)
}

func TestFlowAggregateRelabelsOthers(t *testing.T) {
	// Top-1 on each side: A sells most, X buys most. The remaining
	// parties collapse into the Other buckets.
	txs := []Transaction{
		{Seller: "A", Buyer: "X", Amount: 1000},
		{Seller: "A", Buyer: "X", Amount: 1000},
		{Seller: "B", Buyer: "X", Amount: 2000},
		{Seller: "A", Buyer: "Y", Amount: 3000},
	}

	flow, err := FlowAggregate(txs, 1)
	require.NoError(t, err)

	assert.Contains(t, flow.Nodes, OtherSellers)
	assert.Contains(t, flow.Nodes, OtherBuyers)

	value := func(seller, buyer string) float64 {
		for _, l := range flow.Links {
			if flow.Nodes[l.Source] == seller && flow.Nodes[l.Target] == buyer {
				return l.Value
			}
		}
		return -1
	}
	assert.InDelta(t, 2000, value("A", "X"), 1e-9)
	assert.InDelta(t, 2000, value(OtherSellers, "X"), 1e-9)
	assert.InDelta(t, 3000, value("A", OtherBuyers), 1e-9)
}
