package parser

import (
	"strings"

	"github.com/pable/go-hoops-metrics/internal/model"
)

// ClassifyPlay derives a play-type tag from free-text play descriptions.
func ClassifyPlay(text string) model.PlayType {
	t := strings.ToLower(text)
	three := strings.Contains(t, "three point") || strings.Contains(t, "3pt") || strings.Contains(t, "3-pt")

	switch {
	case strings.Contains(t, "made") || strings.Contains(t, "makes"):
		switch {
		case three:
			return model.PlayMadeThree
		case strings.Contains(t, "free throw"):
			return model.PlayMadeFT
		case strings.Contains(t, "dunk"):
			return model.PlayMadeDunk
		case strings.Contains(t, "layup"):
			return model.PlayMadeLayup
		case strings.Contains(t, "jumper"), strings.Contains(t, "jump shot"):
			return model.PlayMadeJumper
		default:
			return model.PlayMadeFG
		}
	case strings.Contains(t, "missed") || strings.Contains(t, "misses"):
		switch {
		case three:
			return model.PlayMissedThree
		case strings.Contains(t, "free throw"):
			return model.PlayMissedFT
		default:
			return model.PlayMissedFG
		}
	case strings.Contains(t, "rebound"):
		switch {
		case strings.Contains(t, "offensive"):
			return model.PlayOffensiveRebound
		case strings.Contains(t, "defensive"):
			return model.PlayDefensiveRebound
		default:
			return model.PlayRebound
		}
	case strings.Contains(t, "turnover"):
		return model.PlayTurnover
	case strings.Contains(t, "steal"):
		return model.PlaySteal
	case strings.Contains(t, "block"):
		return model.PlayBlock
	case strings.Contains(t, "foul"):
		return model.PlayFoul
	case strings.Contains(t, "assist"):
		return model.PlayAssist
	case strings.Contains(t, "timeout"):
		return model.PlayTimeout
	case strings.Contains(t, "jump ball"):
		return model.PlayJumpBall
	case strings.Contains(t, "end") && (strings.Contains(t, "quarter") || strings.Contains(t, "period") || strings.Contains(t, "game")):
		return model.PlayPeriodEnd
	default:
		return model.PlayOther
	}
}
