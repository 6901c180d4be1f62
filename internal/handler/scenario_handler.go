package handler

import (
	"net/http"

	"github.com/freeeve/zeitgeist/pkg/culture"
)

// ScenarioHandler serves the seed data a client needs to start a game.
type ScenarioHandler struct {
	body scenarioResponse
}

type scenarioRegion struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	SubRegions []string `json:"sub_regions,omitempty"`
}

type scenarioRival struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Personality culture.Personality `json:"personality"`
	HomeRegion  string              `json:"home_region"`
}

type scenarioResponse struct {
	Name      string                  `json:"name"`
	Movements []culture.Movement      `json:"movements"`
	Items     []culture.EvolutionItem `json:"items"`
	Regions   []scenarioRegion        `json:"regions"`
	Rivals    []scenarioRival         `json:"rivals"`
}

// NewScenarioHandler creates a ScenarioHandler. Scheduled events are left
// out so they stay a surprise.
func NewScenarioHandler(sc *culture.Scenario) *ScenarioHandler {
	body := scenarioResponse{
		Name:      sc.Name,
		Movements: sc.Movements,
		Items:     sc.Catalog().Items(),
	}
	for _, c := range sc.Countries {
		reg := scenarioRegion{ID: c.ID, Name: c.Name}
		for _, sr := range c.SubRegions {
			reg.SubRegions = append(reg.SubRegions, sr.ID)
		}
		body.Regions = append(body.Regions, reg)
	}
	for _, rv := range sc.Rivals {
		body.Rivals = append(body.Rivals, scenarioRival{
			ID:          rv.ID,
			Name:        rv.Name,
			Personality: rv.Personality,
			HomeRegion:  rv.StartingRegionID,
		})
	}
	return &ScenarioHandler{body: body}
}

// GetScenario handles GET /api/v1/scenario
func (h *ScenarioHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.body)
}
