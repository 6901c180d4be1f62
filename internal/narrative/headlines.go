// Package narrative turns a state summary into flavor headlines.
package narrative

import (
	"fmt"
	"strings"
)

// tier is an adoption band with its headline templates. Each template takes
// the movement name and the adoption percentage.
type tier struct {
	floor     float64
	templates []string
}

var tiers = []tier{
	{0.75, []string{
		"%s is now simply how the world lives (%.0f%% adoption)",
		"Historians call it the %s era as adoption hits %.0f%%",
	}},
	{0.5, []string{
		"%s goes mainstream: %.0f%% of the world on board",
		"Governments scramble to respond to %s at %.0f%% adoption",
	}},
	{0.25, []string{
		"%s spreads across borders, reaching %.0f%%",
		"Brands rush to align with %s as adoption climbs to %.0f%%",
	}},
	{0.1, []string{
		"%s finds its footing with %.0f%% adoption",
		"Trend watchers flag %s at %.0f%%",
	}},
	{0, []string{
		"Fringe movement %s counts %.0f%% of the world",
		"Few have heard of %s (%.0f%% adoption)",
	}},
}

// Headlines is the default headline generator. It is deterministic: the
// same inputs always yield the same lines.
func Headlines(movementName string, globalAdoption float64, recentEvents string) []string {
	name := strings.TrimSpace(movementName)
	if name == "" {
		name = "The movement"
	}
	pct := globalAdoption * 100

	var t tier
	for _, t = range tiers {
		if globalAdoption >= t.floor {
			break
		}
	}

	out := make([]string, 0, len(t.templates)+3)
	for _, tmpl := range t.templates {
		out = append(out, fmt.Sprintf(tmpl, name, pct))
	}
	for _, ev := range strings.Split(recentEvents, ";") {
		ev = strings.TrimSpace(ev)
		if ev == "" {
			continue
		}
		out = append(out, fmt.Sprintf("Breaking: %s shakes up %s", ev, name))
		if len(out) >= len(t.templates)+3 {
			break
		}
	}
	return out
}
