package engine

// Tick advances the in-game clock by one second. Hosts call it once per
// second of unpaused play. Timed modes count down and end at zero; the
// rising tide injects a garbage row whenever its countdown expires.
func (e *Engine) Tick(s State) State {
	if s.frozen() {
		return s
	}
	cfg := e.ModeConfig(s.Mode)

	s.LastCleared = nil
	s.Elapsed++
	if cfg.Timed() {
		s.Remaining--
		if s.Remaining <= 0 {
			s.Remaining = 0
			s.GameOver = true
			return e.commit(s)
		}
	}

	if cfg.TideInterval > 0 {
		s.NextGarbage--
		if s.NextGarbage <= 0 {
			s.NextGarbage = cfg.TideInterval
			return e.AddGarbageLine(s)
		}
	}
	return e.commit(s)
}
