package playerapi

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/riskibarqy/darkscore-api/internal/domain/player"
)

type nationPlayersEnvelope struct {
	Nation  string      `json:"nation"`
	Count   int         `json:"count"`
	Players []playerRow `json:"players"`
}

type playerRow struct {
	Name          string     `json:"name"`
	Nation        string     `json:"nation"`
	BestPosition  string     `json:"best_position"`
	Club          string     `json:"club"`
	OverallRating flexInt    `json:"overall_rating"`
	Potential     flexInt    `json:"potential"`
	Age           flexInt    `json:"age"`
	Value         flexString `json:"value"`

	Acceleration    flexInt `json:"acceleration"`
	SprintSpeed     flexInt `json:"sprint_speed"`
	Dribbling       flexInt `json:"dribbling"`
	Finishing       flexInt `json:"finishing"`
	ShortPassing    flexInt `json:"short_passing"`
	LongPassing     flexInt `json:"long_passing"`
	Reactions       flexInt `json:"reactions"`
	HeadingAccuracy flexInt `json:"heading_accuracy"`

	TotalAttacking   flexInt `json:"total_attacking"`
	TotalSkill       flexInt `json:"total_skill"`
	TotalMovement    flexInt `json:"total_movement"`
	TotalPower       flexInt `json:"total_power"`
	TotalMentality   flexInt `json:"total_mentality"`
	TotalDefending   flexInt `json:"total_defending"`
	TotalGoalkeeping flexInt `json:"total_goalkeeping"`

	Playstyles  flexString `json:"playstyles"`
	Playstyles2 flexString `json:"playstyles2"`
	Playstyles3 flexString `json:"playstyles3"`
}

func (r playerRow) toDomain(number int) player.Player {
	return player.Player{
		Number:    number,
		Name:      strings.TrimSpace(r.Name),
		Position:  strings.TrimSpace(r.BestPosition),
		Nation:    strings.TrimSpace(r.Nation),
		Club:      strings.TrimSpace(r.Club),
		Overall:   int(r.OverallRating),
		Potential: int(r.Potential),
		Age:       int(r.Age),
		Value:     string(r.Value),

		Attributes: r.attributes(),
		Playstyles: player.CompactPlaystyles(string(r.Playstyles), string(r.Playstyles2), string(r.Playstyles3)),
	}
}

func (r playerRow) attributes() *player.Attributes {
	attrs := player.Attributes{
		Acceleration:     int(r.Acceleration),
		SprintSpeed:      int(r.SprintSpeed),
		Dribbling:        int(r.Dribbling),
		Finishing:        int(r.Finishing),
		ShortPassing:     int(r.ShortPassing),
		LongPassing:      int(r.LongPassing),
		Reactions:        int(r.Reactions),
		HeadingAccuracy:  int(r.HeadingAccuracy),
		TotalAttacking:   int(r.TotalAttacking),
		TotalSkill:       int(r.TotalSkill),
		TotalMovement:    int(r.TotalMovement),
		TotalPower:       int(r.TotalPower),
		TotalMentality:   int(r.TotalMentality),
		TotalDefending:   int(r.TotalDefending),
		TotalGoalkeeping: int(r.TotalGoalkeeping),
	}
	if attrs.IsZero() {
		return nil
	}
	return &attrs
}

// flexInt decodes ratings the provider sends either as numbers or strings.
// Unparseable values decode to zero.
type flexInt int

func (v *flexInt) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	if text == "" || text == "null" {
		*v = 0
		return nil
	}
	if n, err := strconv.Atoi(text); err == nil {
		*v = flexInt(n)
		return nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		*v = flexInt(int(f))
		return nil
	}
	*v = 0
	return nil
}

type flexString string

func (v *flexString) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		*v = ""
		return nil
	}
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = unquoted
	}
	*v = flexString(strings.TrimSpace(text))
	return nil
}
