package scenario

import (
	"agebounds/domain/core"
	"agebounds/domain/prognosis"
	"agebounds/ports"
)

// Name identifies an outcome pair under test
type Name string

const (
	Symptomatic Name = "symptomatic"
	Severe      Name = "severe"
)

// Scenario pairs two outcome channels with the probability column that
// should explain their ratio
type Scenario struct {
	Name     Name
	Channels ports.ChannelPair
	Column   prognosis.TableName
}

// Select maps a scenario name to its channels and column, and derives the
// probability view trials must run with. The base set is never modified.
//
// For "severe" the symptomatic column is forced to 1.0 in the view, so every
// infection is symptomatic and severity is measured conditional on symptom
// onset rather than on infection.
func Select(name string, base prognosis.Set) (Scenario, prognosis.Set, error) {
	switch Name(name) {
	case Symptomatic:
		return Scenario{
			Name: Symptomatic,
			Channels: ports.ChannelPair{
				Numerator:   ports.ChannelSymptomatic,
				Denominator: ports.ChannelInfections,
			},
			Column: prognosis.SymptomaticProbs,
		}, base, nil

	case Severe:
		view, err := base.WithConstant(prognosis.SymptomaticProbs, 1.0)
		if err != nil {
			return Scenario{}, prognosis.Set{}, err
		}
		return Scenario{
			Name: Severe,
			Channels: ports.ChannelPair{
				Numerator:   ports.ChannelSevere,
				Denominator: ports.ChannelSymptomatic,
			},
			Column: prognosis.SevereProbs,
		}, view, nil

	default:
		return Scenario{}, prognosis.Set{}, core.NewUnknownScenarioError(name)
	}
}
