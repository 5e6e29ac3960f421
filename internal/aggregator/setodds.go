package aggregator

import (
	"github.com/pable/vbscout/internal/decoder"
	"github.com/pable/vbscout/internal/model"
)

// DefaultOH1Rotations and DefaultOH2Rotations are the rotations in which each
// outside hitter is front row, labelled the way coaches read them.
var (
	DefaultOH1Rotations = []model.RotationLabel{
		{Rotation: model.RotationZ1, Label: "Rot 1"},
		{Rotation: model.RotationZ3, Label: "Rot 5"},
		{Rotation: model.RotationZ2, Label: "Rot 6"},
	}
	DefaultOH2Rotations = []model.RotationLabel{
		{Rotation: model.RotationZ6, Label: "Rot 2"},
		{Rotation: model.RotationZ5, Label: "Rot 3"},
		{Rotation: model.RotationZ4, Label: "Rot 4"},
	}
)

// SetOdds answers, per rotation: after an in-system reception, how often was
// the ball set to the outside hitter, split by whether player made the pass.
// Receptions outside rots, with an R- grade, or whose code does not decode are
// ignored. Rows follow the order of rots; Total sums them.
func SetOdds(player int, rots []model.RotationLabel, receptions []model.ReceptionEvent) model.SetOddsTable {
	table := model.SetOddsTable{Player: player, Total: model.SetOddsRow{Label: "Tot"}}
	for _, rl := range rots {
		row := model.SetOddsRow{Label: rl.Label, Rotation: rl.Rotation}
		for _, r := range receptions {
			if r.Rotation != rl.Rotation || !r.Grade.InSystem() || r.Code == "" {
				continue
			}
			p, ok := decoder.DecodeInSystem(r.Code)
			if !ok {
				continue
			}
			split := &row.Others
			if r.Passer == player {
				split = &row.Player
			}
			if p.SetPosition == model.PosOH {
				split.WasSet++
			} else {
				split.NotSet++
			}
		}
		table.Rows = append(table.Rows, row)
		table.Total.Add(row)
	}
	return table
}
