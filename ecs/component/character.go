package component

import "github.com/milk9111/stealth/focus"

// CharacterStats is the behavior state other systems read from a character.
type CharacterStats struct {
	Facing focus.Facing
	Master focus.MasterState
}

func (c *CharacterStats) FacingLeft() bool {
	return c != nil && c.Facing == focus.FacingLeft
}

func (c *CharacterStats) FacingRight() bool {
	return c != nil && c.Facing == focus.FacingRight
}

var CharacterStatsComponent = NewComponent[CharacterStats]()
