package prop

// Proximity is the in-range flag fed by trigger enter/exit events.
// It follows the most recent event and remembers the last actor that entered.
type Proximity struct {
	tag     string
	inRange bool
	actor   Actor
}

// NewProximity creates a flag that only reacts to actors carrying tag.
func NewProximity(tag string) *Proximity {
	return &Proximity{tag: tag}
}

// Enter marks the volume as occupied. A nil actor is allowed for sensors that
// cannot hand out a reference; the flag is set but no position is known.
// Returns false when the event was ignored because of the tag.
func (p *Proximity) Enter(tag string, a Actor) bool {
	if tag != p.tag {
		return false
	}
	p.inRange = true
	p.actor = a
	return true
}

// Exit clears the flag. Returns false when the event was ignored.
func (p *Proximity) Exit(tag string, a Actor) bool {
	if tag != p.tag {
		return false
	}
	p.inRange = false
	if a == nil || a == p.actor {
		p.actor = nil
	}
	return true
}

// InRange reports whether an accepted actor is inside the volume.
func (p *Proximity) InRange() bool {
	return p.inRange
}

// Actor returns the last actor that entered, or nil if none is known.
func (p *Proximity) Actor() Actor {
	return p.actor
}

// Tag returns the accepted actor tag.
func (p *Proximity) Tag() string {
	return p.tag
}
