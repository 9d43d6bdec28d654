package analytics

import (
	"github.com/vizsprints/analytics-service/internal/domain"
)

// DefaultFunnelStages is the expected user journey, in order.
var DefaultFunnelStages = []string{
	domain.EventSignupSuccess,
	domain.EventViewDashboard,
	domain.EventStartProject,
	domain.EventCompleteTask,
	domain.EventInviteUser,
}

// FunnelStage holds conversion figures for one stage of the journey.
// Stages use "ever reached" semantics: a user counts at a stage if they
// ever produced that event, with no ordering constraint against earlier
// stages, so Users is not guaranteed to be non-increasing.
type FunnelStage struct {
	Stage                  string
	Users                  int
	ConversionFromTotal    float64
	ConversionFromPrevious float64
	DropOff                float64
}

// VariantStage is the per-variant funnel row: conversion is measured
// against the variant's own population.
type VariantStage struct {
	Stage          string
	Users          int
	ConversionRate float64
}

// VariantFunnel is one experiment arm's funnel plus engagement rollups.
// TotalEvents only counts events whose user exists in the roster.
type VariantFunnel struct {
	TotalUsers       int
	TotalEvents      int
	AvgEventsPerUser float64
	Funnel           []VariantStage
}

// ComputeFunnel measures each stage against the whole roster. Stage zero's
// conversion-from-previous is 100 by convention; later stages divide by the
// previous stage's count, or report 0 when that count is zero.
func ComputeFunnel(events []domain.Event, users []domain.User, stages []string) []FunnelStage {
	if len(stages) == 0 {
		stages = DefaultFunnelStages
	}

	reached := distinctUsersByStage(events, stages)
	totalUsers := len(users)

	funnel := make([]FunnelStage, 0, len(stages))
	for i, stage := range stages {
		count := len(reached[stage])

		fromTotal := 0.0
		if totalUsers > 0 {
			fromTotal = float64(count) / float64(totalUsers) * 100
		}

		fromPrevious := 100.0
		if i > 0 {
			prev := funnel[i-1].Users
			fromPrevious = 0
			if prev > 0 {
				fromPrevious = float64(count) / float64(prev) * 100
			}
		}

		funnel = append(funnel, FunnelStage{
			Stage:                  stage,
			Users:                  count,
			ConversionFromTotal:    round2(fromTotal),
			ConversionFromPrevious: round2(fromPrevious),
			DropOff:                round2(100 - fromPrevious),
		})
	}
	return funnel
}

// ComputeVariantFunnels runs the funnel independently for each experiment
// arm, each against its own variant population as the total.
func ComputeVariantFunnels(events []domain.Event, users []domain.User, stages []string) map[domain.ABVariant]VariantFunnel {
	if len(stages) == 0 {
		stages = DefaultFunnelStages
	}

	variantOf := map[string]domain.ABVariant{}
	usersPerVariant := map[domain.ABVariant]int{}
	for _, u := range users {
		variantOf[u.UserID] = u.ABVariant
		usersPerVariant[u.ABVariant]++
	}

	eventsPerVariant := map[domain.ABVariant]int{}
	reached := map[domain.ABVariant]map[string]map[string]struct{}{}
	for _, ev := range events {
		variant, ok := variantOf[ev.UserID]
		if !ok {
			continue
		}
		eventsPerVariant[variant]++
		if reached[variant] == nil {
			reached[variant] = map[string]map[string]struct{}{}
		}
		if reached[variant][ev.EventName] == nil {
			reached[variant][ev.EventName] = map[string]struct{}{}
		}
		reached[variant][ev.EventName][ev.UserID] = struct{}{}
	}

	result := map[domain.ABVariant]VariantFunnel{}
	for _, variant := range []domain.ABVariant{domain.VariantA, domain.VariantB} {
		total := usersPerVariant[variant]

		vf := VariantFunnel{
			TotalUsers:  total,
			TotalEvents: eventsPerVariant[variant],
			Funnel:      make([]VariantStage, 0, len(stages)),
		}
		if total > 0 {
			vf.AvgEventsPerUser = round2(float64(vf.TotalEvents) / float64(total))
		}

		for _, stage := range stages {
			count := len(reached[variant][stage])
			rate := 0.0
			if total > 0 {
				rate = float64(count) / float64(total) * 100
			}
			vf.Funnel = append(vf.Funnel, VariantStage{
				Stage:          stage,
				Users:          count,
				ConversionRate: round2(rate),
			})
		}
		result[variant] = vf
	}
	return result
}

func distinctUsersByStage(events []domain.Event, stages []string) map[string]map[string]struct{} {
	wanted := map[string]struct{}{}
	for _, s := range stages {
		wanted[s] = struct{}{}
	}

	reached := map[string]map[string]struct{}{}
	for _, ev := range events {
		if _, ok := wanted[ev.EventName]; !ok {
			continue
		}
		if reached[ev.EventName] == nil {
			reached[ev.EventName] = map[string]struct{}{}
		}
		reached[ev.EventName][ev.UserID] = struct{}{}
	}
	return reached
}
