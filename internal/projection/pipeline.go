package projection

import (
	"fmt"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/mitchellh/hashstructure/v2"
)

// Inputs is an immutable snapshot of everything the balance depends on.
// Slices are treated as read-only once handed to a Pipeline.
type Inputs struct {
	ProjectID    string
	Budget       domain.DetailedBudget
	Occurrences  []domain.Occurrence
	Venues       []domain.Venue
	Tasks        []domain.Task
	Activities   []domain.Activity
	Sessions     []domain.SaleSession
	Transactions []domain.SalesTransaction
	Offerings    []domain.TicketOffering
	Labels       map[string]string
}

type inputKey int

const (
	inProject inputKey = iota
	inBudget
	inOccurrences
	inVenues
	inTasks
	inActivities
	inSessions
	inTransactions
	inOfferings
	inLabels
	numInputs
)

// Node names, as reported by Runs.
const (
	NodeVenue   = "venue"
	NodeTickets = "tickets"
	NodeSales   = "sales"
	NodeActuals = "actuals"
	NodeBalance = "balance"
)

type node struct {
	name    string
	inputs  []inputKey
	after   []*node
	seen    []uint64
	version uint64
	runs    int
	compute func(p *Pipeline)
}

// stale reports whether any declared input or upstream node changed since the
// last run, and returns the versions to record once the node has run.
func (n *node) stale(p *Pipeline) (bool, []uint64) {
	cur := make([]uint64, 0, len(n.inputs)+len(n.after))
	for _, k := range n.inputs {
		cur = append(cur, p.versions[k])
	}
	for _, up := range n.after {
		cur = append(cur, up.version)
	}
	if n.runs == 0 || len(cur) != len(n.seen) {
		return true, cur
	}
	for i := range cur {
		if cur[i] != n.seen[i] {
			return true, cur
		}
	}
	return false, cur
}

// Pipeline is the computation graph raw entities → stream aggregators →
// balance. Update records a new input snapshot; only nodes whose declared
// inputs actually changed are recomputed on the next Summary call.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	opts VenueOptions

	in           Inputs
	fingerprints [numInputs]uint64
	versions     [numInputs]uint64
	updates      int

	venue   VenueCost
	tickets TicketStats
	sales   SalesSummary
	actuals Actuals
	summary BalanceSummary

	order []*node
}

// NewPipeline builds an empty pipeline. opts governs venue costing.
func NewPipeline(opts VenueOptions) *Pipeline {
	p := &Pipeline{opts: opts}

	venue := &node{name: NodeVenue, inputs: []inputKey{inProject, inOccurrences, inVenues}, compute: func(p *Pipeline) {
		p.venue = ProjectVenueCost(p.in.ProjectID, p.in.Occurrences, p.in.Venues, p.opts)
	}}
	tickets := &node{name: NodeTickets, inputs: []inputKey{inProject, inOccurrences, inVenues, inOfferings}, compute: func(p *Pipeline) {
		p.tickets = AggregateTickets(p.in.ProjectID, p.in.Occurrences, p.in.Venues, p.in.Offerings)
	}}
	sales := &node{name: NodeSales, inputs: []inputKey{inProject, inOccurrences, inSessions, inTransactions}, compute: func(p *Pipeline) {
		p.sales = AggregateSales(p.in.ProjectID, p.in.Occurrences, p.in.Sessions, p.in.Transactions)
	}}
	actuals := &node{name: NodeActuals, inputs: []inputKey{inTasks, inActivities}, compute: func(p *Pipeline) {
		p.actuals = ComputeActuals(p.in.Tasks, p.in.Activities)
	}}
	balance := &node{
		name:   NodeBalance,
		inputs: []inputKey{inBudget, inLabels},
		after:  []*node{venue, tickets, sales, actuals},
		compute: func(p *Pipeline) {
			p.summary = ComputeBalance(p.in.Budget, Streams{
				Venue:   p.venue,
				Tickets: p.tickets,
				Sales:   p.sales,
				Actuals: p.actuals,
			}, p.in.Labels)
		},
	}

	p.order = []*node{venue, tickets, sales, actuals, balance}
	return p
}

// Update replaces the input snapshot. It returns true when at least one input
// differs from the previous snapshot.
func (p *Pipeline) Update(in Inputs) (bool, error) {
	parts := [numInputs]interface{}{
		inProject:      in.ProjectID,
		inBudget:       in.Budget,
		inOccurrences:  in.Occurrences,
		inVenues:       in.Venues,
		inTasks:        in.Tasks,
		inActivities:   in.Activities,
		inSessions:     in.Sessions,
		inTransactions: in.Transactions,
		inOfferings:    in.Offerings,
		inLabels:       in.Labels,
	}

	var next [numInputs]uint64
	for k, v := range parts {
		h, err := fingerprint(v)
		if err != nil {
			return false, fmt.Errorf("fingerprinting input %d: %w", k, err)
		}
		next[k] = h
	}

	changed := p.updates == 0
	for k := range next {
		if p.updates == 0 || next[k] != p.fingerprints[k] {
			p.versions[k]++
			changed = true
		}
	}
	p.fingerprints = next
	p.in = in
	p.updates++
	return changed, nil
}

// Summary returns the balance for the current snapshot, recomputing only the
// nodes whose inputs changed.
func (p *Pipeline) Summary() BalanceSummary {
	if p.updates == 0 {
		return ComputeBalance(domain.DetailedBudget{}, EmptyStreams(), nil)
	}
	for _, n := range p.order {
		stale, cur := n.stale(p)
		if !stale {
			continue
		}
		n.compute(p)
		n.seen = cur
		n.version++
		n.runs++
	}
	return p.summary
}

// Runs returns how many times each node has been computed.
func (p *Pipeline) Runs() map[string]int {
	out := make(map[string]int, len(p.order))
	for _, n := range p.order {
		out[n.name] = n.runs
	}
	return out
}

func fingerprint(v interface{}) (uint64, error) {
	return hashstructure.Hash(v, hashstructure.FormatV2, &hashstructure.HashOptions{
		UseStringer: true,
	})
}
