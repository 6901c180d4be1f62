package service

import (
	"strings"
	"time"

	"github.com/freeeve/zeitgeist/internal/model"
	"github.com/freeeve/zeitgeist/pkg/culture"
)

// BuildView flattens a snapshot into the client-facing view.
func BuildView(sessionID string, s *culture.GameState, now time.Time) *model.GameView {
	v := &model.GameView{
		SessionID:       sessionID,
		Turn:            s.Turn,
		Status:          s.Status,
		MovementID:      s.MovementID,
		MovementName:    s.MovementName,
		InfluencePoints: s.Player.InfluencePoints,
		EvolvedItems:    s.Player.EvolvedIDs(),
		GlobalAdoption:  s.GlobalAdoption(),
		PeakAdoption:    s.Player.MaxAdoptionEver,
		GameOver:        s.GameOver,
		RecentEvents:    s.RecentEvents,
		UpdatedAt:       now.UTC(),
	}
	if v.EvolvedItems == nil {
		v.EvolvedItems = []string{}
	}

	v.Countries = make([]culture.CountryView, 0, len(s.Countries))
	for _, c := range s.Countries {
		v.Countries = append(v.Countries, c.View())
	}

	v.Rivals = make([]model.RivalView, 0, len(s.Rivals))
	for _, rv := range s.Rivals {
		v.Rivals = append(v.Rivals, model.RivalView{
			ID:           rv.ID,
			Name:         rv.Name,
			Personality:  rv.Personality,
			Stance:       rv.Stance,
			GlobalShare:  s.RivalShare(rv.ID),
			EvolvedCount: len(rv.EvolvedItems),
		})
	}

	v.Events = make([]model.EventView, 0, len(s.Events))
	for _, ev := range s.Events {
		v.Events = append(v.Events, eventView(ev))
	}
	if ev := culture.AwaitingChoice(s.Events); ev != nil {
		ew := eventView(ev)
		v.AwaitingChoice = &ew
	}
	return v
}

func eventView(ev *culture.GlobalEvent) model.EventView {
	ew := model.EventView{
		ID:          ev.ID,
		Name:        ev.Name,
		Description: ev.Description,
		TurnStart:   ev.TurnStart,
		Duration:    ev.Duration,
		Status:      ev.Status,
		Chosen:      ev.ChosenOptionID,
	}
	for _, o := range ev.Options {
		ew.Options = append(ew.Options, model.OptionView{ID: o.ID, Label: o.Label})
	}
	return ew
}

func joinRecent(events []string) string {
	return strings.Join(events, "; ")
}
