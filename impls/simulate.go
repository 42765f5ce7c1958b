// Package impls contains the stock ActiveMessage implementations: the score
// simulation panel, the paginated score list, and the badge browser.
package impls

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/okubot/active"
	"github.com/okubot/active/difficulty"
)

// Custom ids of the simulation panel controls and modal inputs.
const (
	simModsID    = "sim_mods"
	simAccID     = "sim_acc"
	simComboID   = "sim_combo"
	simMissID    = "sim_miss"
	simScoreID   = "sim_score"
	simSpeedID   = "sim_speed"
	simAttrsID   = "sim_attrs"
	simVersionID = "sim_version"

	simLazerValue  = "sim_lazer"
	simStableValue = "sim_stable"

	simClockRateID = "sim_clock_rate"
	simBPMID       = "sim_bpm"
	simARID        = "sim_ar"
	simCSID        = "sim_cs"
	simHPID        = "sim_hp"
	simODID        = "sim_od"
)

// SimulatePanel lets the invoking user tweak score parameters on a map and
// see the resulting attributes recalculated in place. Unset pointer fields
// fall back to the map's own values.
type SimulatePanel struct {
	owner string
	m     *difficulty.Beatmap

	mods      difficulty.Mods
	acc       *float64
	combo     *int
	misses    *int
	score     *int
	clockRate *float64
	bpm       *float64
	ar        *float64
	cs        *float64
	hp        *float64
	od        *float64
	lazer     bool

	deferNext bool
}

// NewSimulatePanel creates a panel owned by the given user. The defer flag
// starts set; the initial render consumes it.
func NewSimulatePanel(owner string, m *difficulty.Beatmap) *SimulatePanel {
	return &SimulatePanel{owner: owner, m: m, deferNext: true}
}

// BuildPage renders the panel with all current overrides applied. Attributes
// are recomputed from the effective map settings on every render, so an
// override is visible immediately. The defer flag requested by the previous
// handler is consumed here: it applies to exactly one render.
func (s *SimulatePanel) BuildPage(context.Context) (active.Render, error) {
	deferred := s.deferNext
	s.deferNext = false

	m := *s.m
	if s.ar != nil {
		m.AR = *s.ar
	}

	if s.cs != nil {
		m.CS = *s.cs
	}

	if s.hp != nil {
		m.HP = *s.hp
	}

	if s.od != nil {
		m.OD = *s.od
	}

	if s.bpm != nil {
		m.BPM = *s.bpm
	}

	mods := s.mods
	if s.clockRate != nil {
		mods = append(difficulty.Mods(nil), mods...)
		applied := false

		for i := range mods {
			switch mods[i].Acronym {
			case "DT", "NC", "HT":
				mods[i].Speed = *s.clockRate
				applied = true
			}
		}

		if !applied {
			mods = append(mods, difficulty.Mod{Acronym: "DT", Speed: *s.clockRate})
		}
	}

	page := active.Page{
		Title: fmt.Sprintf("Simulated score on map %d", s.m.MapID),
		Fields: []active.Field{
			{Name: "Mods", Value: mods.String(), Inline: true},
			{Name: "Accuracy", Value: formatFloat(s.acc, "%.2f%%"), Inline: true},
			{Name: "Combo", Value: formatInt(s.combo), Inline: true},
			{Name: "Misses", Value: formatInt(s.misses), Inline: true},
			{Name: "Score", Value: formatInt(s.score), Inline: true},
			{Name: "Clock rate", Value: fmt.Sprintf("%.2fx", mods.ClockRate()), Inline: true},
			{
				Name: "Map settings",
				Value: fmt.Sprintf("AR %.1f | CS %.1f | HP %.1f | OD %.1f | BPM %.0f",
					m.AR, m.CS, m.HP, m.OD, m.BPM*mods.ClockRate()),
			},
		},
	}

	if err := m.CheckSuspicion(); err != nil {
		page.Fields = append(page.Fields, active.Field{Name: "Attributes", Value: "Map too suspicious"})
	} else {
		attrs := difficulty.Calculate(&m, mods, s.lazer)
		page.Fields = append(page.Fields, active.Field{
			Name:  "Attributes",
			Value: fmt.Sprintf("%.2f★ | %dx max combo", attrs.Stars, attrs.MaxCombo),
		})
	}

	version := "Stable"
	if s.lazer {
		version = "Lazer"
	}

	page.Footer = "Version: " + version

	return active.NewRender(page, deferred), nil
}

// BuildComponents returns the parameter buttons and the version menu.
func (s *SimulatePanel) BuildComponents() []active.Row {
	return []active.Row{
		active.ButtonRow(
			active.Button{CustomID: simModsID, Label: "Mods", Style: active.ButtonPrimary},
			active.Button{CustomID: simAccID, Label: "Accuracy", Style: active.ButtonPrimary},
			active.Button{CustomID: simComboID, Label: "Combo", Style: active.ButtonPrimary},
			active.Button{CustomID: simMissID, Label: "Misses", Style: active.ButtonPrimary},
			active.Button{CustomID: simScoreID, Label: "Score", Style: active.ButtonPrimary},
		),
		active.ButtonRow(
			active.Button{CustomID: simSpeedID, Label: "Speed", Style: active.ButtonSecondary},
			active.Button{CustomID: simAttrsID, Label: "Attributes", Style: active.ButtonSecondary},
			active.Button{CustomID: simLazerValue, Label: "Lazer", Style: active.ButtonSuccess, Disabled: s.lazer},
			active.Button{CustomID: simStableValue, Label: "Stable", Style: active.ButtonSuccess, Disabled: !s.lazer},
		),
		active.MenuRow(active.SelectMenu{
			CustomID: simVersionID,
			Options: []active.SelectOption{
				{Label: "Lazer", Value: simLazerValue, Default: s.lazer},
				{Label: "Stable", Value: simStableValue, Default: !s.lazer},
			},
		}),
	}
}

// HandleComponent opens the parameter modal matching the pressed button, or
// switches the game version. The version buttons respond with an immediate
// update; the menu acknowledges first, then rebuilds.
func (s *SimulatePanel) HandleComponent(ctx context.Context, ev *active.ComponentEvent) active.ComponentResult {
	if ev.UserID != s.owner {
		return active.Ignore()
	}

	switch ev.CustomID {
	case simModsID:
		input := active.NewTextInput(simModsID, "Mods").
			WithPlaceholder("E.g. hdhr or nm").
			WithMaxLength(24)

		return active.CreateModal(active.NewModal(simModsID, "Specify mods").Input(input))
	case simAccID:
		input := active.NewTextInput(simAccID, "Accuracy").WithPlaceholder("Number")

		return active.CreateModal(active.NewModal(simAccID, "Specify an accuracy").Input(input))
	case simComboID:
		input := active.NewTextInput(simComboID, "Combo").WithPlaceholder("Integer")

		return active.CreateModal(active.NewModal(simComboID, "Specify a combo").Input(input))
	case simMissID:
		input := active.NewTextInput(simMissID, "Misses").WithPlaceholder("Integer")

		return active.CreateModal(active.NewModal(simMissID, "Specify a miss count").Input(input))
	case simScoreID:
		input := active.NewTextInput(simScoreID, "Score").WithPlaceholder("Integer")

		return active.CreateModal(active.NewModal(simScoreID, "Specify a score").Input(input))
	case simSpeedID:
		modal := active.NewModal(simSpeedID, "Specify a custom speed").
			Input(active.NewTextInput(simClockRateID, "Clock rate").WithPlaceholder("Number")).
			Input(active.NewTextInput(simBPMID, "BPM").WithPlaceholder("Number"))

		return active.CreateModal(modal)
	case simAttrsID:
		modal := active.NewModal(simAttrsID, "Specify map attributes").
			Input(active.NewTextInput(simARID, "AR").WithPlaceholder("Number")).
			Input(active.NewTextInput(simCSID, "CS").WithPlaceholder("Number")).
			Input(active.NewTextInput(simHPID, "HP").WithPlaceholder("Number")).
			Input(active.NewTextInput(simODID, "OD").WithPlaceholder("Number"))

		return active.CreateModal(modal)
	case simLazerValue:
		s.lazer = true

		return active.BuildPage()
	case simStableValue:
		s.lazer = false

		return active.BuildPage()
	case simVersionID:
		if err := ev.Defer(ctx); err != nil {
			return active.ResultErr(fmt.Errorf("defer version switch: %w", err))
		}

		if len(ev.Values) == 1 {
			s.lazer = ev.Values[0] == simLazerValue
		} else {
			slog.Warn("unexpected version menu values", "values", ev.Values)
		}

		return active.BuildPage()
	default:
		slog.Warn("unknown simulate component", "custom_id", ev.CustomID)

		return active.Ignore()
	}
}

// HandleModal applies a submitted parameter form. Each field is tri-state:
// an absent value clears the override, a valid value sets it, and an invalid
// value is logged and leaves the prior state untouched.
func (s *SimulatePanel) HandleModal(_ context.Context, ev *active.ModalEvent) error {
	if ev.UserID != s.owner {
		return nil
	}

	switch ev.CustomID {
	case simModsID:
		if value, ok := ev.Field(simModsID); !ok {
			s.mods = nil
		} else if mods, err := difficulty.ParseMods(value); err != nil {
			slog.Debug("failed to parse mods", "input", value, "err", err)
		} else {
			s.mods = mods
		}
	case simAccID:
		applyFloat(ev, simAccID, &s.acc)
	case simComboID:
		applyInt(ev, simComboID, &s.combo)
	case simMissID:
		applyInt(ev, simMissID, &s.misses)
	case simScoreID:
		applyInt(ev, simScoreID, &s.score)
	case simSpeedID:
		applyFloat(ev, simClockRateID, &s.clockRate)
		applyFloat(ev, simBPMID, &s.bpm)
	case simAttrsID:
		s.ar = active.LenientFloat(ev, simARID)
		s.cs = active.LenientFloat(ev, simCSID)
		s.hp = active.LenientFloat(ev, simHPID)
		s.od = active.LenientFloat(ev, simODID)
	default:
		slog.Warn("unknown simulate modal", "custom_id", ev.CustomID)
	}

	return nil
}

func applyFloat(ev *active.ModalEvent, customID string, dst **float64) {
	value, outcome := active.ParseFloatField(ev, customID)

	switch outcome {
	case active.ParseAbsent:
		*dst = nil
	case active.ParseValue:
		*dst = &value
	case active.ParseInvalid:
	}
}

func applyInt(ev *active.ModalEvent, customID string, dst **int) {
	value, outcome := active.ParseIntField(ev, customID)

	switch outcome {
	case active.ParseAbsent:
		*dst = nil
	case active.ParseValue:
		*dst = &value
	case active.ParseInvalid:
	}
}

func formatFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}

	return fmt.Sprintf(format, *v)
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}

	return fmt.Sprintf("%d", *v)
}
