package out

import (
	"context"

	chimedto "zazen/internal/modules/chime/dto"
	chimein "zazen/internal/modules/chime/port/in"
	"zazen/internal/modules/session/domain"
	sessionout "zazen/internal/modules/session/port/out"
	settingsin "zazen/internal/modules/settings/port/in"
)

// ChimeNotifier routes engine cues to the chime module, resolving the
// preferred chime from settings at playback time so a settings change
// applies without restarting the session.
type ChimeNotifier struct {
	chimes   chimein.Usecase
	settings settingsin.Usecase
}

func NewChimeNotifier(chimes chimein.Usecase, settings settingsin.Usecase) sessionout.Notifier {
	return &ChimeNotifier{chimes: chimes, settings: settings}
}

func (n *ChimeNotifier) PlayCue(ctx context.Context, cue domain.Cue) error {
	stored, err := n.settings.Get(ctx)
	if err != nil {
		return err
	}
	return n.chimes.Play(ctx, chimedto.PlayInput{Chime: stored.Chime, Cue: string(cue)})
}
