package main

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"text/tabwriter"

	"gocorrnet/adapters/stats/senses"
	"gocorrnet/domain/core"
	"gocorrnet/domain/network"
	"gocorrnet/domain/stats"

	centrality "gonum.org/v1/gonum/graph/network"
)

// writeMethod prints the description of the correlation test
func writeMethod(w io.Writer, method stats.CorrelationMethod) error {
	sense, err := senses.ForMethod(method)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %s\n\n", method, sense.Description())
	return nil
}

// writeTable prints up to limit rows; limit <= 0 prints all of them
func writeTable(w io.Writer, table *stats.PairwiseStatTable, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"feature_i", "feature_j", "r", "p"}
	if table.HasAdjusted() {
		header = append(header, string(stats.ColumnPAdjusted))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	rows := table.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for _, row := range rows {
		fields := []string{string(row.FeatureI), string(row.FeatureJ), formatStat(row.R), formatStat(row.P)}
		if table.HasAdjusted() {
			fields = append(fields, formatStat(row.PAdjusted))
		}
		fmt.Fprintln(tw, strings.Join(fields, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(rows) < table.Len() {
		fmt.Fprintf(w, "... %d more rows\n", table.Len()-len(rows))
	}
	return nil
}

// hub is a feature ranked by betweenness centrality
type hub struct {
	feature     core.FeatureID
	betweenness float64
}

// topHubs returns up to k features with the highest betweenness, ties
// broken by feature ID
func topHubs(g *network.Graph, k int) []hub {
	if k <= 0 {
		return nil
	}
	var hubs []hub
	for nodeID, score := range centrality.Betweenness(g.Undirected()) {
		if feature, ok := g.Label(nodeID); ok {
			hubs = append(hubs, hub{feature: feature, betweenness: score})
		}
	}
	slices.SortFunc(hubs, func(a, b hub) int {
		if c := cmp.Compare(b.betweenness, a.betweenness); c != 0 {
			return c
		}
		return strings.Compare(string(a.feature), string(b.feature))
	})
	return hubs[:min(k, len(hubs))]
}

// writeNetwork prints the graph summary, its components, the top hubs
// and the edge list
func writeNetwork(w io.Writer, g *network.Graph, hubs int) error {
	s := g.Summary()
	fmt.Fprintf(w, "nodes=%d edges=%d density=%.4f components=%d max_degree=%d\n",
		s.Nodes, s.Edges, s.Density, s.Components, s.MaxDegree)

	for i, component := range g.Components() {
		members := make([]string, len(component))
		for j, id := range component {
			members[j] = string(id)
		}
		fmt.Fprintf(w, "component %d: %s\n", i+1, strings.Join(members, " "))
	}
	for _, h := range topHubs(g, hubs) {
		fmt.Fprintf(w, "hub %s betweenness=%.4g\n", h.feature, h.betweenness)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "source\ttarget")
	for _, edge := range g.Edges() {
		fmt.Fprintf(tw, "%s\t%s\n", edge.A, edge.B)
	}
	return tw.Flush()
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4g", v)
}
