package pet

// Feed gives the pet a meal. It is ignored while the pet is away.
func (e *Engine) Feed() Status {
	s := e.state
	if s.Away {
		return StatusOngoing
	}

	s.Hunger = clamp(s.Hunger + 1)
	s.Energy = clamp(s.Energy - 0.25)
	if s.Hunger == 0 || s.Energy == 0 {
		return e.finish(StatusDied)
	}

	if s.Sick && chance(e.rng, cureChance) {
		s.Sick = false
		e.log.Info("feeling better")
	}

	e.afterAction(StatHunger, "Eating...", "Thank you for feeding me!")
	return StatusOngoing
}

// Play plays with the pet. A sick pet gets no happiness from it.
func (e *Engine) Play() Status {
	s := e.state
	if s.Away {
		return StatusOngoing
	}

	if !s.Sick {
		s.Happiness = clamp(s.Happiness + 1)
	}
	s.Energy = clamp(s.Energy - 0.25)
	if s.Happiness == 0 || s.Energy == 0 {
		return e.finish(StatusDied)
	}

	e.afterAction(StatHappiness, "Zoomies!!!", "Thank you for playing with me!")
	return StatusOngoing
}

// Sleep lets the pet rest.
func (e *Engine) Sleep() Status {
	s := e.state
	if s.Away {
		return StatusOngoing
	}

	s.Energy = clamp(s.Energy + 1)
	s.Hunger = clamp(s.Hunger - 0.25)
	if s.Energy == 0 || s.Hunger == 0 {
		return e.finish(StatusDied)
	}

	e.afterAction(StatEnergy, "Sleeping...", "Thank you for letting me rest!")
	return StatusOngoing
}

// afterAction is the tail shared by every action: friendship, the action
// message, and fulfilment of a matching needs phrase.
func (e *Engine) afterAction(stat, doing, thanks string) {
	s := e.state
	s.Friendship = clamp(s.Friendship + 0.2)
	e.setMessage(doing, actionMessageTicks)

	if s.ActivePhrase == nil || !s.ActivePhrase.Phrase.Targets(stat) {
		return
	}

	mag := s.ActivePhrase.Phrase.Magnitude
	switch stat {
	case StatHunger:
		s.Hunger = clamp(s.Hunger - mag)
	case StatHappiness:
		s.Happiness = clamp(s.Happiness - mag)
	case StatEnergy:
		s.Energy = clamp(s.Energy - mag)
	}
	e.setMessage(thanks, actionMessageTicks)
	e.log.Debug("need met", "stat", stat, "magnitude", mag)
	s.ActivePhrase = nil
}
