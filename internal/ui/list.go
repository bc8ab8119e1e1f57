package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/scout/internal/models"
	"github.com/desertthunder/scout/internal/shared"
)

var (
	_ list.Item = flaggedItem{}
	_ list.Item = highScoringItem{}
)

// flaggedItem wraps [models.FlaggedResult] to implement [list.Item].
type flaggedItem struct {
	flagged models.FlaggedResult
}

func (i flaggedItem) FilterValue() string { return i.flagged.Team }
func (i flaggedItem) Title() string {
	return fmt.Sprintf("%s vs %s", i.flagged.Team, i.flagged.Opponent)
}
func (i flaggedItem) Description() string {
	return fmt.Sprintf("Odds %s • %s", shared.FormatPrice(i.flagged.Price), i.flagged.Competition)
}

// highScoringItem wraps [models.HighScoringTeam] to implement [list.Item].
type highScoringItem struct {
	team models.HighScoringTeam
}

func (i highScoringItem) FilterValue() string { return i.team.Team }
func (i highScoringItem) Title() string       { return i.team.Team }
func (i highScoringItem) Description() string {
	return fmt.Sprintf("High-scoring form • %s", i.team.Competition)
}
